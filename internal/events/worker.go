package events

import (
	"context"
	"time"

	"partshop/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultPollInterval  = 10 * time.Second
	defaultBatchSize     = 100
	defaultRetryInterval = 30 * time.Second
)

// Publisher delivers one message to the broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// WorkerConfig tunes the outbox worker. Zero values take the defaults.
type WorkerConfig struct {
	PollInterval  time.Duration
	BatchSize     int
	RetryInterval time.Duration
}

// Worker drains the outbox table into the broker.
type Worker struct {
	outboxRepo    repository.OutboxRepository
	publisher     Publisher
	pollInterval  time.Duration
	batchSize     int
	retryInterval time.Duration
	now           func() time.Time
	logger        zerolog.Logger
}

// NewWorker creates a new outbox worker.
func NewWorker(outboxRepo repository.OutboxRepository, publisher Publisher, cfg WorkerConfig, logger zerolog.Logger) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}

	return &Worker{
		outboxRepo:    outboxRepo,
		publisher:     publisher,
		pollInterval:  cfg.PollInterval,
		batchSize:     cfg.BatchSize,
		retryInterval: cfg.RetryInterval,
		now:           time.Now,
		logger:        logger.With().Str("component", "outbox_worker").Logger(),
	}
}

// Run polls the outbox until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info().
		Dur("poll_interval", w.pollInterval).
		Int("batch_size", w.batchSize).
		Msg("outbox worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("outbox worker shutting down")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch publishes one batch of due messages and returns how many were delivered.
func (w *Worker) ProcessBatch(ctx context.Context) int {
	messages, err := w.outboxRepo.GetPending(ctx, w.batchSize)
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to get pending messages from outbox")
		return 0
	}
	if len(messages) == 0 {
		return 0
	}

	w.logger.Debug().Int("count", len(messages)).Msg("processing outbox messages")

	delivered := 0
	for _, msg := range messages {
		if err := w.publisher.Publish(ctx, msg.RoutingKey, msg.Payload); err != nil {
			retryCount := msg.RetryCount + 1
			nextRetryAt := w.now().Add(w.backoff(retryCount))

			w.logger.Warn().
				Err(err).
				Int64("outbox_id", msg.ID).
				Int("retry_count", retryCount).
				Time("next_retry", nextRetryAt).
				Msg("failed to publish outbox message, will retry")

			if err := w.outboxRepo.UpdateRetry(ctx, msg.ID, retryCount, err.Error(), nextRetryAt); err != nil {
				w.logger.Error().Err(err).Int64("outbox_id", msg.ID).Msg("failed to update retry information")
			}
			continue
		}

		if err := w.outboxRepo.Delete(ctx, msg.ID); err != nil {
			// The message will be published again on the next poll.
			w.logger.Error().Err(err).Int64("outbox_id", msg.ID).Msg("failed to delete published outbox message")
			continue
		}
		delivered++
	}

	return delivered
}

// backoff returns 2^n × the retry interval.
func (w *Worker) backoff(retryCount int) time.Duration {
	return w.retryInterval << retryCount
}
