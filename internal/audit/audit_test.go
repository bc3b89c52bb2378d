package audit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memoryPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
	block  chan struct{}
}

func (p *memoryPublisher) Publish(ctx context.Context, e Event) error {
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *memoryPublisher) recorded() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

type bodyRecorder struct {
	body        []byte
	contentType string
}

func (b *bodyRecorder) PublishWithRetry(_ context.Context, body []byte, contentType string) error {
	b.body = body
	b.contentType = contentType
	return nil
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(ActionJobCreated, "job", "3", "admin@tunel.com")

	_, err := uuid.Parse(e.EventID)
	assert.NoError(t, err)
	assert.Equal(t, ActionJobCreated, e.Action)
	assert.WithinDuration(t, time.Now(), e.OccurredAt, time.Minute)

	withTitle := e.WithDetail("title", "Go Developer")
	assert.Nil(t, e.Details)
	assert.Equal(t, "Go Developer", withTitle.Details["title"])
}

func TestBusPublisher_EncodesJSON(t *testing.T) {
	rec := &bodyRecorder{}
	p := NewBusPublisher(rec)
	e := NewEvent(ActionCompanyDeleted, "company", "2", "admin@tunel.com")

	require.NoError(t, p.Publish(context.Background(), e))
	assert.Equal(t, "application/json", rec.contentType)

	var decoded Event
	require.NoError(t, json.Unmarshal(rec.body, &decoded))
	assert.Equal(t, e.EventID, decoded.EventID)
	assert.Equal(t, "company", decoded.EntityType)
}

func TestRecorder_PublishesInOrder(t *testing.T) {
	pub := &memoryPublisher{}
	r := NewRecorder(pub, discardLogger(), 8, time.Second)

	for i := range 3 {
		r.Record(NewEvent(ActionJobUpdated, "job", string(rune('1'+i)), "admin"))
	}
	require.NoError(t, r.Close(context.Background()))

	got := pub.recorded()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{got[0].EntityID, got[1].EntityID, got[2].EntityID})
}

func TestRecorder_PublishErrorsAreSwallowed(t *testing.T) {
	pub := &memoryPublisher{err: errors.New("broker down")}
	r := NewRecorder(pub, discardLogger(), 8, time.Second)

	r.Record(NewEvent(ActionAdminLogin, "", "", "admin"))
	assert.NoError(t, r.Close(context.Background()))
	assert.Empty(t, pub.recorded())
}

func TestRecorder_DropsWhenFull(t *testing.T) {
	pub := &memoryPublisher{block: make(chan struct{})}
	r := NewRecorder(pub, discardLogger(), 1, time.Second)

	for range 5 {
		r.Record(NewEvent(ActionJobDeleted, "job", "1", "admin"))
	}
	close(pub.block)
	require.NoError(t, r.Close(context.Background()))

	got := pub.recorded()
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 2)
}

func TestRecorder_RecordAfterClose(t *testing.T) {
	pub := &memoryPublisher{}
	r := NewRecorder(pub, discardLogger(), 1, time.Second)
	require.NoError(t, r.Close(context.Background()))
	require.NoError(t, r.Close(context.Background()))

	r.Record(NewEvent(ActionJobDeleted, "job", "1", "admin"))
	assert.Empty(t, pub.recorded())
}

func TestRecorder_CloseHonoursContext(t *testing.T) {
	pub := &memoryPublisher{block: make(chan struct{})}
	defer close(pub.block)
	r := NewRecorder(pub, discardLogger(), 4, time.Minute)
	r.Record(NewEvent(ActionJobDeleted, "job", "1", "admin"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Close(ctx), context.DeadlineExceeded)
}
