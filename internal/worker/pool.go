package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// spawnWorkerPool starts one goroutine per unit of concurrency
func (w *Worker) spawnWorkerPool(ctx context.Context) {
	w.logger.Info("Spawning worker pool",
		slog.Int("concurrency", w.concurrency),
		slog.String("worker_id", w.workerID),
	)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}
}

func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Debug("Worker goroutine started",
		slog.String("worker_name", workerName),
	)

	for {
		select {
		case <-w.stopChan:
			w.logger.Debug("Worker goroutine stopping - stopChan closed",
				slog.String("worker_name", workerName),
			)
			return

		case <-ctx.Done():
			w.logger.Debug("Worker goroutine stopping - context canceled",
				slog.String("worker_name", workerName),
			)
			return

		case msg, ok := <-w.jobsChan:
			if !ok {
				w.logger.Debug("Worker goroutine stopping - jobsChan closed",
					slog.String("worker_name", workerName),
				)
				return
			}
			w.settle(ctx, workerName, msg)
		}
	}
}

// settle processes one event and acks or nacks its delivery
func (w *Worker) settle(ctx context.Context, workerName string, msg *eventMessage) {
	err := w.processEvent(ctx, msg)
	if err == nil {
		if ackErr := msg.delivery.Ack(false); ackErr != nil {
			w.logger.Error("Failed to ACK message",
				slog.String("worker_name", workerName),
				slog.String("event_id", msg.event.EventID),
				slog.String("error", ackErr.Error()),
			)
		}
		return
	}

	requeue := shouldRequeue(err)
	w.logger.Error("Audit event processing failed",
		slog.String("worker_name", workerName),
		slog.String("event_id", msg.event.EventID),
		slog.Bool("requeue", requeue),
		slog.String("error", err.Error()),
	)

	if nackErr := msg.delivery.Nack(false, requeue); nackErr != nil {
		w.logger.Error("Failed to NACK message",
			slog.String("worker_name", workerName),
			slog.String("event_id", msg.event.EventID),
			slog.String("error", nackErr.Error()),
		)
	}
}

func (w *Worker) processEvent(ctx context.Context, msg *eventMessage) error {
	ctx, cancel := context.WithTimeout(ctx, w.processTimeout)
	defer cancel()

	if err := w.sink.Write(ctx, msg.event); err != nil {
		return fmt.Errorf("sink write for event %s: %w", msg.event.EventID, err)
	}
	return nil
}

// shouldRequeue requeues only errors marked retryable
func shouldRequeue(err error) bool {
	if errors.Is(err, ErrInvalidEvent) {
		return false
	}

	var retryableErr *RetryableError
	return errors.As(err, &retryableErr)
}
