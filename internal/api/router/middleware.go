package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/tunel-admin/internal/api/handler"
	"github.com/cuongbtq/tunel-admin/internal/auth"
	"github.com/cuongbtq/tunel-admin/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request id in and out of the service
const HeaderRequestID = "X-Request-ID"

// LoggerMiddleware logs HTTP requests with slog
func LoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// Process request
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		attrs := []slog.Attr{
			slog.Int("status", status),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", query),
			slog.String("ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
			slog.Duration("latency", latency),
			slog.Int("body_size", c.Writer.Size()),
			slog.String("request_id", c.GetString(handler.ContextKeyRequestID)),
		}
		if claims, ok := handler.CurrentAdmin(c); ok {
			attrs = append(attrs, slog.String("admin_email", claims.Email))
		}

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		logger.LogAttrs(c.Request.Context(), level, "HTTP Request", attrs...)

		for _, e := range c.Errors {
			logger.Error("Request error",
				slog.String("error", e.Error()),
				slog.Uint64("type", uint64(e.Type)),
			)
		}
	}
}

// RequestIDMiddleware reuses the caller's X-Request-ID or generates one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(handler.ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RecoveryMiddleware turns panics into the JSON error envelope
func RecoveryMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("Panic recovered",
			slog.Any("panic", recovered),
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", c.GetString(handler.ContextKeyRequestID)),
		)
		handler.Abort(c, http.StatusInternalServerError, "Internal server error", "")
	})
}

// CORSMiddleware applies the configured cross-origin policy. An empty origin
// list allows any origin.
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	cc := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = cfg.AllowedOrigins
	}
	if len(cfg.AllowedMethods) > 0 {
		cc.AllowMethods = cfg.AllowedMethods
	}
	if len(cfg.AllowedHeaders) > 0 {
		cc.AllowHeaders = cfg.AllowedHeaders
	}
	if cfg.MaxAge > 0 {
		cc.MaxAge = cfg.MaxAge
	}
	cc.AllowCredentials = cfg.AllowCredentials
	cc.ExposeHeaders = []string{HeaderRequestID}
	return cors.New(cc)
}

// RequireAdmin rejects requests without a valid, unrevoked bearer token
func RequireAdmin(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c, svc)
		if err != nil {
			handler.AbortUnauthorized(c, err)
			return
		}
		c.Set(auth.ContextKeyClaims, claims)
		c.Next()
	}
}

// OptionalAdmin attaches the admin when a valid token is presented and lets
// everyone else through anonymously
func OptionalAdmin(svc *auth.Service, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		claims, err := authenticate(c, svc)
		if err != nil {
			logger.Warn("Ignoring invalid token on public route",
				slog.String("error", err.Error()),
				slog.String("path", c.Request.URL.Path),
			)
			c.Next()
			return
		}
		c.Set(auth.ContextKeyClaims, claims)
		c.Next()
	}
}

func authenticate(c *gin.Context, svc *auth.Service) (auth.Claims, error) {
	token, err := auth.BearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return auth.Claims{}, err
	}
	return svc.Authenticate(c.Request.Context(), token)
}
