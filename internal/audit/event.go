// Package audit records admin mutations as events on the message bus
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Audit actions emitted by the admin API
const (
	ActionJobCreated       = "job.created"
	ActionJobUpdated       = "job.updated"
	ActionJobDeleted       = "job.deleted"
	ActionJobStatusChanged = "job.status_changed"

	ActionCompanyCreated         = "company.created"
	ActionCompanyUpdated         = "company.updated"
	ActionCompanyDeleted         = "company.deleted"
	ActionCompanyFeaturedChanged = "company.featured_changed"

	ActionHomepageUpdated = "content.homepage_updated"
	ActionImageUploaded   = "content.image_uploaded"
	ActionImageDeleted    = "content.image_deleted"

	ActionAdminLogin  = "admin.login"
	ActionAdminLogout = "admin.logout"
)

// Event is one admin action. It is the message body on the audit queue.
type Event struct {
	EventID    string            `json:"event_id"`
	Action     string            `json:"action"`
	EntityType string            `json:"entity_type,omitempty"`
	EntityID   string            `json:"entity_id,omitempty"`
	Actor      string            `json:"actor"`
	RequestID  string            `json:"request_id,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// NewEvent stamps a fresh id and the current time
func NewEvent(action, entityType, entityID, actor string) Event {
	return Event{
		EventID:    uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	}
}

// WithDetail returns a copy of e carrying one more detail
func (e Event) WithDetail(key, value string) Event {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// Publisher delivers events to their destination
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher drops every event. Used when the bus is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

type bodyPublisher interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
}

// BusPublisher encodes events as JSON onto a RabbitMQ exchange
type BusPublisher struct {
	client bodyPublisher
}

func NewBusPublisher(client bodyPublisher) *BusPublisher {
	return &BusPublisher{client: client}
}

func (p *BusPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.client.PublishWithRetry(ctx, body, "application/json")
}
