package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuongbtq/tunel-admin/internal/api/handler"
	"github.com/cuongbtq/tunel-admin/internal/auth"
	"github.com/cuongbtq/tunel-admin/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAuthService(t *testing.T) (*auth.Service, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	creds, err := auth.NewCredentials("admin@tunel.com", "", string(hash))
	require.NoError(t, err)

	svc := auth.NewService(creds, auth.NewTokenService("test-secret", time.Hour), auth.NewMemoryDenylist(), discardLogger())
	session, err := svc.Login("admin@tunel.com", "secret")
	require.NoError(t, err)
	return svc, session.Token
}

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{name: "generated", incoming: ""},
		{name: "propagated", incoming: "req-123", wantSame: true},
		{name: "oversized is replaced", incoming: string(bytes.Repeat([]byte("a"), 200))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestIDMiddleware())

			var seen string
			r.GET("/", func(c *gin.Context) {
				seen = c.GetString(handler.ContextKeyRequestID)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestID, tt.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(HeaderRequestID)
			assert.NotEmpty(t, got)
			assert.Equal(t, got, seen)
			if tt.wantSame {
				assert.Equal(t, tt.incoming, got)
			} else {
				assert.NotEqual(t, tt.incoming, got)
			}
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), RecoveryMiddleware(discardLogger()))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body handler.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Internal server error", body.Error)
}

func TestCORSMiddleware(t *testing.T) {
	cfg := config.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}

	tests := []struct {
		name       string
		origin     string
		wantAllow  string
		wantStatus int
	}{
		{name: "allowed origin", origin: "http://localhost:3000", wantAllow: "http://localhost:3000", wantStatus: http.StatusNoContent},
		{name: "foreign origin", origin: "http://evil.example", wantAllow: "", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware(cfg))
			r.GET("/api/jobs", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", "GET")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantAllow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	svc, token := testAuthService(t)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing", header: "", wantStatus: http.StatusUnauthorized, wantError: "Access token required"},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantError: "Access token required"},
		{name: "tampered", header: "Bearer " + token + "x", wantStatus: http.StatusUnauthorized, wantError: "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/private", RequireAdmin(svc), func(c *gin.Context) {
				claims, ok := handler.CurrentAdmin(c)
				require.True(t, ok)
				c.String(http.StatusOK, claims.Email)
			})

			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError == "" {
				assert.Equal(t, "admin@tunel.com", w.Body.String())
				return
			}
			var body handler.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
		})
	}
}

func TestOptionalAdmin(t *testing.T) {
	svc, token := testAuthService(t)

	tests := []struct {
		name      string
		header    string
		wantAdmin bool
	}{
		{name: "anonymous", header: ""},
		{name: "valid token", header: "Bearer " + token, wantAdmin: true},
		{name: "invalid token downgrades", header: "Bearer junk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/public", OptionalAdmin(svc, discardLogger()), func(c *gin.Context) {
				_, ok := handler.CurrentAdmin(c)
				c.JSON(http.StatusOK, gin.H{"admin": ok})
			})

			req := httptest.NewRequest(http.MethodGet, "/public", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var body map[string]bool
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantAdmin, body["admin"])
		})
	}
}

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggerMiddleware(logger))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/missing?q=1", nil)
	req.Header.Set(HeaderRequestID, "abc")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "HTTP Request", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.Equal(t, "q=1", entry["query"])
	assert.Equal(t, "abc", entry["request_id"])
}
