package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/tunel-admin/internal/api/dto"
	"github.com/cuongbtq/tunel-admin/internal/audit"
	"github.com/cuongbtq/tunel-admin/internal/auth"
	"github.com/gin-gonic/gin"
)

var adminPermissions = []string{"read", "write", "delete", "manage"}

// AuthHandler handles login and session endpoints
type AuthHandler struct {
	base
	auth *auth.Service
	now  func() time.Time
}

func NewAuthHandler(deps *Dependencies) *AuthHandler {
	return &AuthHandler{
		base: newBase(deps, resourceNames{singular: "Admin", kind: "admin"}),
		auth: deps.Auth,
		now:  time.Now,
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		Abort(c, http.StatusBadRequest, "Missing credentials", "Email and password are required")
		return
	}

	session, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Admin login failed",
			slog.String("admin_email", req.Email),
			slog.String("ip", c.ClientIP()),
		)
		h.respondError(c, err, "Internal server error")
		return
	}

	h.logger.Info("Admin login successful", slog.String("admin_email", session.Admin.Email))
	h.record(c, audit.NewEvent(audit.ActionAdminLogin, h.names.kind, session.Admin.ID, session.Admin.Email))

	c.JSON(http.StatusOK, dto.LoginResponse{
		Success:   true,
		Token:     session.Token,
		Admin:     session.Admin,
		ExpiresIn: session.ExpiresIn,
	})
}

// Verify handles GET /api/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	claims, _ := CurrentAdmin(c)
	c.JSON(http.StatusOK, dto.VerifyResponse{
		Success: true,
		Admin:   claims.Identity(),
		Message: "Token is valid",
	})
}

// Logout handles POST /api/auth/logout. The presented token is revoked
// until it would have expired.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, _ := CurrentAdmin(c)
	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		h.respondError(c, err, "Failed to logout")
		return
	}

	h.logger.Info("Admin logout", slog.String("admin_email", claims.Email))
	h.record(c, audit.NewEvent(audit.ActionAdminLogout, h.names.kind, claims.AdminID, claims.Email))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Profile handles GET /api/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	claims, _ := CurrentAdmin(c)

	lastLogin := h.now().UTC()
	if claims.IssuedAt != nil {
		lastLogin = claims.IssuedAt.UTC()
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		Success: true,
		Admin: dto.AdminProfile{
			Identity:    claims.Identity(),
			LastLogin:   lastLogin.Format(time.RFC3339),
			Permissions: adminPermissions,
		},
	})
}
