package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Recorder publishes events from a background goroutine so a slow or
// unavailable bus never delays an admin request
type Recorder struct {
	publisher Publisher
	logger    *slog.Logger
	timeout   time.Duration
	events    chan Event
	wg        sync.WaitGroup
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewRecorder starts the publishing goroutine. bufferSize bounds how many
// events may wait; beyond that Record drops and logs.
func NewRecorder(publisher Publisher, logger *slog.Logger, bufferSize int, timeout time.Duration) *Recorder {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	r := &Recorder{
		publisher: publisher,
		logger:    logger,
		timeout:   timeout,
		events:    make(chan Event, bufferSize),
	}

	r.wg.Add(1)
	go r.loop()
	return r
}

// Record queues e without blocking
func (r *Recorder) Record(e Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.logger.Warn("Audit recorder closed, dropping event",
			slog.String("action", e.Action),
			slog.String("event_id", e.EventID),
		)
		return
	}

	select {
	case r.events <- e:
	default:
		r.logger.Warn("Audit buffer full, dropping event",
			slog.String("action", e.Action),
			slog.String("event_id", e.EventID),
		)
	}
}

func (r *Recorder) loop() {
	defer r.wg.Done()

	for e := range r.events {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		err := r.publisher.Publish(ctx, e)
		cancel()

		if err != nil {
			r.logger.Error("Failed to publish audit event",
				slog.String("action", e.Action),
				slog.String("event_id", e.EventID),
				slog.String("error", err.Error()),
			)
			continue
		}
		r.logger.Debug("Audit event published",
			slog.String("action", e.Action),
			slog.String("event_id", e.EventID),
		)
	}
}

// Close stops accepting events and waits for the queued ones to be
// published or for ctx to end
func (r *Recorder) Close(ctx context.Context) error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.events)
		r.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
