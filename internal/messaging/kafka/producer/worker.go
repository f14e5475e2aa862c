package producer

import (
	"context"
	"time"

	"go-payroll/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	defaultBatchSize    = 50
	defaultLease        = 30 * time.Second
	defaultPollInterval = 3 * time.Second
)

type Publisher struct {
	repo      kafka.OutboxRepository
	writer    MessageWriter
	logger    *zap.Logger
	batchSize int
	lease     time.Duration
}

func NewPublisher(repo kafka.OutboxRepository, writer MessageWriter, logger ...*zap.Logger) *Publisher {
	l := zap.L().Named("kafka.producer.publisher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.publisher")
	}
	return &Publisher{
		repo:      repo,
		writer:    writer,
		logger:    l,
		batchSize: defaultBatchSize,
		lease:     defaultLease,
	}
}

// Run drains the outbox on every tick until ctx is cancelled.
func (p *Publisher) Run(ctx context.Context, pollInterval time.Duration) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	p.logger.Info("outbox publisher started", zap.Duration("poll_interval", pollInterval))
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("outbox publisher stopped")
			return
		case <-ticker.C:
			p.drain(ctx)
		}
	}
}

// drain keeps claiming while batches come back full.
func (p *Publisher) drain(ctx context.Context) {
	for ctx.Err() == nil {
		claimed, _, err := p.PublishBatch(ctx)
		if err != nil {
			p.logger.Error("publish outbox batch failed", zap.Error(err))
			return
		}
		if claimed < p.batchSize {
			return
		}
	}
}

// PublishBatch claims one batch and publishes it. It returns how many events
// were claimed and how many were marked sent.
func (p *Publisher) PublishBatch(ctx context.Context) (claimed, sent int, err error) {
	events, err := p.repo.ClaimPending(ctx, p.batchSize, p.lease)
	if err != nil {
		return 0, 0, err
	}
	if len(events) == 0 {
		return 0, 0, nil
	}

	p.logger.Debug("publishing outbox events", zap.Int("count", len(events)))

	for _, event := range events {
		if err := p.writer.WriteMessages(ctx, toMessage(event)); err != nil {
			p.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			if markErr := p.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				p.logger.Error("mark outbox event failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := p.repo.MarkSent(ctx, event.ID); err != nil {
			// Once the lease expires the event is claimed and published again.
			p.logger.Error("mark outbox sent failed", zap.String("outbox_id", event.ID), zap.Error(err))
			continue
		}
		sent++

		p.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}
	return len(events), sent, nil
}
