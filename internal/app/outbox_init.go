package app

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/service/outbox"
)

const outboxShutdownTimeout = 5 * time.Second

// newOutboxWorker собирает воркер outbox поверх Kafka. Без producer воркер не нужен.
func newOutboxWorker(cfg Config, repo domain.OutboxRepository, producer *kafka.Producer, logger *log.Entry) *outbox.Worker {
	if producer == nil || repo == nil {
		return nil
	}
	return outbox.NewWorker(
		repo,
		kafka.NewOutboxPublisher(producer, kafka.TopicOrderEvents),
		outbox.WithDeadLetter(kafka.NewDeadLetterPublisher(producer, kafka.TopicDeadLetterQueue)),
		outbox.WithLogger(logger.WithField("component", "outbox-worker")),
		outbox.WithConfig(outbox.Config{
			PollInterval:   cfg.OutboxPollInterval,
			BatchSize:      cfg.OutboxBatchSize,
			MaxAttempts:    cfg.OutboxMaxAttempts,
			RetryBaseDelay: cfg.OutboxRetryDelay,
		}),
	)
}

// startOutboxWorker запускает воркер в отдельной горутине.
// Возвращает функцию остановки и канал завершения; для nil воркера оба nil.
func startOutboxWorker(ctx context.Context, worker *outbox.Worker) (context.CancelFunc, <-chan struct{}) {
	if worker == nil {
		return nil, nil
	}
	workerCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(workerCtx)
	}()
	return cancel, done
}

// shutdownOutboxWorker останавливает воркер и ждёт его не дольше outboxShutdownTimeout.
func shutdownOutboxWorker(cancel context.CancelFunc, done <-chan struct{}, logger *log.Entry) {
	if cancel == nil {
		return
	}
	cancel()
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-time.After(outboxShutdownTimeout):
		logger.Warn("outbox worker did not stop in time")
	}
}
