package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/tunel-admin/internal/audit"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// setupConsumer sets QoS and returns the delivery channel
func (w *Worker) setupConsumer() (<-chan amqp.Delivery, error) {
	if err := w.source.Qos(w.prefetchCount); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	w.logger.Info("RabbitMQ QoS configured",
		slog.Int("prefetch_count", w.prefetchCount),
	)

	deliveries, err := w.source.Consume(w.workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	w.logger.Info("RabbitMQ consumer started",
		slog.String("consumer_tag", w.workerID),
		slog.String("queue", w.queueName),
	)

	return deliveries, nil
}

// decodeEvent parses a delivery body. Malformed bodies and events without a
// UUID event_id or an action are ErrInvalidEvent.
func decodeEvent(body []byte) (audit.Event, error) {
	var e audit.Event
	if err := json.Unmarshal(body, &e); err != nil {
		return audit.Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if _, err := uuid.Parse(e.EventID); err != nil {
		return audit.Event{}, fmt.Errorf("%w: event_id %q is not a UUID", ErrInvalidEvent, e.EventID)
	}
	if e.Action == "" {
		return audit.Event{}, fmt.Errorf("%w: action is required", ErrInvalidEvent)
	}
	return e, nil
}

// startMessageDispatcher decodes deliveries and hands them to the pool
func (w *Worker) startMessageDispatcher(ctx context.Context, deliveries <-chan amqp.Delivery) {
	w.logger.Info("Message dispatcher started",
		slog.String("worker_id", w.workerID),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Message dispatcher stopped - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			event, err := decodeEvent(delivery.Body)
			if err != nil {
				w.logger.Error("Rejecting audit message",
					slog.String("error", err.Error()),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					w.logger.Error("Failed to NACK invalid message",
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			select {
			case w.jobsChan <- &eventMessage{event: event, delivery: delivery}:
				w.logger.Debug("Audit event dispatched to worker pool",
					slog.String("event_id", event.EventID),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
			case <-ctx.Done():
				w.logger.Info("Message dispatcher stopped while dispatching event")
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					w.logger.Error("Failed to NACK message on shutdown",
						slog.String("error", nackErr.Error()),
					)
				}
				return
			}
		}
	}
}
