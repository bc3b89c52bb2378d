// Package handler implements the HTTP handlers of the admin API
package handler

import (
	"log/slog"
	"time"

	"github.com/cuongbtq/tunel-admin/internal/analytics"
	"github.com/cuongbtq/tunel-admin/internal/api/storage"
	"github.com/cuongbtq/tunel-admin/internal/audit"
	"github.com/cuongbtq/tunel-admin/internal/auth"
	"github.com/cuongbtq/tunel-admin/internal/upload"
	"github.com/gin-gonic/gin"
)

// ContextKeyRequestID is where the request id middleware stores the id
const ContextKeyRequestID = "request_id"

// AuditRecorder accepts audit events without blocking
type AuditRecorder interface {
	Record(e audit.Event)
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger    *slog.Logger
	Jobs      *storage.JobStore
	Companies *storage.CompanyStore
	Content   *storage.ContentStore
	Auth      *auth.Service
	Uploader  *upload.Uploader
	Analytics *analytics.Provider
	Audit     AuditRecorder
	Version   string
	StartedAt time.Time
}

// base carries what every handler needs to log, fail and audit
type base struct {
	logger *slog.Logger
	audit  AuditRecorder
	names  resourceNames
}

type resourceNames struct {
	singular string // "Job"
	kind     string // "job", used as the audit entity type
}

func newBase(deps *Dependencies, names resourceNames) base {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return base{logger: logger, audit: deps.Audit, names: names}
}

// CurrentAdmin returns the claims attached by the auth middleware
func CurrentAdmin(c *gin.Context) (auth.Claims, bool) {
	v, ok := c.Get(auth.ContextKeyClaims)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := v.(auth.Claims)
	return claims, ok
}

func adminEmail(c *gin.Context) string {
	if claims, ok := CurrentAdmin(c); ok {
		return claims.Email
	}
	return ""
}

// record stamps the actor and request id onto e and hands it to the recorder
func (b base) record(c *gin.Context, e audit.Event) {
	if b.audit == nil {
		return
	}
	if e.Actor == "" {
		e.Actor = adminEmail(c)
	}
	e.RequestID = c.GetString(ContextKeyRequestID)
	b.audit.Record(e)
}

func (b base) recordEntity(c *gin.Context, action, id string, details ...string) {
	e := audit.NewEvent(action, b.names.kind, id, "")
	for i := 0; i+1 < len(details); i += 2 {
		e = e.WithDetail(details[i], details[i+1])
	}
	b.record(c, e)
}
