package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cuongbtq/tunel-admin/internal/audit"
	"github.com/redis/go-redis/v9"
)

// Sink is where processed audit events end up
type Sink interface {
	Write(ctx context.Context, e audit.Event) error
}

// LogSink writes every event as one structured log line
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(ctx context.Context, e audit.Event) error {
	attrs := []slog.Attr{
		slog.String("event_id", e.EventID),
		slog.String("action", e.Action),
		slog.String("actor", e.Actor),
		slog.Time("occurred_at", e.OccurredAt),
	}
	if e.EntityType != "" {
		attrs = append(attrs, slog.String("entity_type", e.EntityType), slog.String("entity_id", e.EntityID))
	}
	if e.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", e.RequestID))
	}
	if len(e.Details) > 0 {
		attrs = append(attrs, slog.Any("details", e.Details))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "Admin action", attrs...)
	return nil
}

// RedisSink keeps the most recent events in a capped list and a per-action
// counter hash
type RedisSink struct {
	client    *redis.Client
	recentKey string
	countKey  string
	keep      int64
}

// NewRedisSink keeps up to keep events under prefix+"recent"
func NewRedisSink(client *redis.Client, prefix string, keep int) *RedisSink {
	if prefix == "" {
		prefix = "tunel:audit:"
	}
	if keep <= 0 {
		keep = 100
	}
	return &RedisSink{
		client:    client,
		recentKey: prefix + "recent",
		countKey:  prefix + "actions",
		keep:      int64(keep),
	}
}

func (s *RedisSink) Write(ctx context.Context, e audit.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.recentKey, body)
	pipe.LTrim(ctx, s.recentKey, 0, s.keep-1)
	pipe.HIncrBy(ctx, s.countKey, e.Action, 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return NewRetryableError(fmt.Errorf("redis audit write: %w", err))
	}
	return nil
}

// Recent returns up to n events, newest first
func (s *RedisSink) Recent(ctx context.Context, n int) ([]audit.Event, error) {
	raw, err := s.client.LRange(ctx, s.recentKey, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis audit read: %w", err)
	}

	events := make([]audit.Event, 0, len(raw))
	for _, r := range raw {
		var e audit.Event
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			return nil, fmt.Errorf("redis audit decode: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}

// ActionCounts returns how many events of each action were written
func (s *RedisSink) ActionCounts(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, s.countKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis audit counts: %w", err)
	}
	counts := make(map[string]int64, len(raw))
	for action, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("redis audit count %s: %w", action, err)
		}
		counts[action] = n
	}
	return counts, nil
}

// MultiSink writes to every sink and joins their errors
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, e audit.Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
