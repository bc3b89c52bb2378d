// Package worker consumes admin audit events from RabbitMQ and hands them to
// a sink through a bounded goroutine pool
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cuongbtq/tunel-admin/internal/audit"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DeliverySource is the part of the RabbitMQ client the worker consumes from
type DeliverySource interface {
	Qos(prefetchCount int) error
	Consume(consumerTag string) (<-chan amqp.Delivery, error)
}

// Config holds worker configuration
type Config struct {
	Logger         *slog.Logger
	Source         DeliverySource
	Sink           Sink
	WorkerID       string
	QueueName      string
	Concurrency    int
	PrefetchCount  int
	ProcessTimeout time.Duration
}

// eventMessage pairs a decoded event with the delivery to settle
type eventMessage struct {
	event    audit.Event
	delivery amqp.Delivery
}

// Worker is the audit event consumer
type Worker struct {
	logger         *slog.Logger
	source         DeliverySource
	sink           Sink
	workerID       string
	queueName      string
	concurrency    int
	prefetchCount  int
	processTimeout time.Duration
	jobsChan       chan *eventMessage
	wg             sync.WaitGroup
	stopChan       chan struct{}
	stopOnce       sync.Once
}

func NewWorker(cfg *Config) *Worker {
	concurrency := max(cfg.Concurrency, 1)
	prefetch := cfg.PrefetchCount
	if prefetch <= 0 {
		prefetch = concurrency
	}
	timeout := cfg.ProcessTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Worker{
		logger:         cfg.Logger,
		source:         cfg.Source,
		sink:           cfg.Sink,
		workerID:       cfg.WorkerID,
		queueName:      cfg.QueueName,
		concurrency:    concurrency,
		prefetchCount:  prefetch,
		processTimeout: timeout,
		jobsChan:       make(chan *eventMessage),
		stopChan:       make(chan struct{}),
	}
}

// Start consumes until ctx is cancelled or the delivery channel closes,
// then waits for in-flight events to settle
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting audit worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("process_timeout", w.processTimeout),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return err
	}

	w.spawnWorkerPool(ctx)
	w.startMessageDispatcher(ctx, deliveries)

	close(w.jobsChan)
	w.wg.Wait()

	w.logger.Info("Audit worker stopped", slog.String("worker_id", w.workerID))
	return nil
}

// Stop ends the pool goroutines without waiting for the dispatcher
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping audit worker...")
		close(w.stopChan)
	})
	w.wg.Wait()
}
