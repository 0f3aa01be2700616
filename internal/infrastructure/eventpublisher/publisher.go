package eventpublisher

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/infrastructure/metrics"
	"github.com/iho/costledger/internal/usecase"
)

// EventPublisher drains the transactional outbox into a Publisher.
type EventPublisher struct {
	outboxRepo usecase.OutboxRepository
	publisher  Publisher
	locker     Locker
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	batchSize  int
	interval   time.Duration
	retention  time.Duration
	now        func() time.Time
}

// Publisher defines the interface for publishing events to external systems.
type Publisher interface {
	Publish(ctx context.Context, event *domain.OutboxEvent) error
}

// Config for EventPublisher.
type Config struct {
	OutboxRepo usecase.OutboxRepository
	Publisher  Publisher
	// Locker makes one replica drain at a time. Nil runs unguarded.
	Locker    Locker
	Metrics   *metrics.Metrics
	Logger    zerolog.Logger
	BatchSize int           // Number of events to fetch per batch
	Interval  time.Duration // Polling interval
	// Retention is how long published events are kept. Zero keeps them.
	Retention time.Duration
}

// lockKey guards the outbox drain across replicas.
const lockKey = "costledger:outbox:drain"

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(cfg Config) *EventPublisher {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Second
	}

	return &EventPublisher{
		outboxRepo: cfg.OutboxRepo,
		publisher:  cfg.Publisher,
		locker:     cfg.Locker,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger.With().Str("component", "outbox").Logger(),
		batchSize:  cfg.BatchSize,
		interval:   cfg.Interval,
		retention:  cfg.Retention,
		now:        time.Now,
	}
}

// Start begins the event publishing worker.
// It runs continuously until the context is cancelled.
func (ep *EventPublisher) Start(ctx context.Context) error {
	ep.logger.Info().
		Int("batch_size", ep.batchSize).
		Dur("interval", ep.interval).
		Msg("event publisher started")

	ticker := time.NewTicker(ep.interval)
	defer ticker.Stop()

	ep.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			ep.logger.Info().Msg("event publisher shutting down")
			return ctx.Err()
		case <-ticker.C:
			ep.tick(ctx)
		}
	}
}

func (ep *EventPublisher) tick(ctx context.Context) {
	release, err := ep.obtain(ctx)
	if errors.Is(err, ErrLockHeld) {
		ep.logger.Debug().Msg("another worker is draining the outbox")
		return
	}
	if err != nil {
		ep.logger.Error().Err(err).Msg("failed to obtain outbox lock")
		return
	}
	defer release()

	if err := ep.processEvents(ctx); err != nil && ctx.Err() == nil {
		ep.logger.Error().Err(err).Msg("error processing events")
	}
	if err := ep.purge(ctx); err != nil && ctx.Err() == nil {
		ep.logger.Error().Err(err).Msg("error purging published events")
	}
}

func (ep *EventPublisher) obtain(ctx context.Context) (func(), error) {
	if ep.locker == nil {
		return func() {}, nil
	}

	// The lock outlives a slow batch by a margin; it is released explicitly.
	unlock, err := ep.locker.Obtain(ctx, lockKey, ep.interval*10)
	if err != nil {
		return nil, err
	}

	return func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			ep.logger.Warn().Err(err).Msg("failed to release outbox lock")
		}
	}, nil
}

// processEvents fetches and publishes a batch of unpublished events. After a
// failure the rest of that aggregate's events wait for the next tick so a
// consumer never sees them out of order.
func (ep *EventPublisher) processEvents(ctx context.Context) error {
	events, err := ep.outboxRepo.GetUnpublished(ctx, ep.batchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	ep.logger.Debug().Int("count", len(events)).Msg("processing events")

	blocked := make(map[string]bool)
	for _, event := range events {
		if blocked[event.AggregateID] {
			continue
		}

		if err := ep.publisher.Publish(ctx, event); err != nil {
			blocked[event.AggregateID] = true
			if ep.metrics != nil {
				ep.metrics.OutboxPublishErrors.Inc()
			}
			ep.logger.Error().
				Err(err).
				Str("event_id", event.ID).
				Str("event_type", event.EventType).
				Msg("failed to publish event")
			continue
		}

		if ep.metrics != nil {
			ep.metrics.OutboxPublished.WithLabelValues(event.EventType).Inc()
		}

		if err := ep.outboxRepo.MarkPublished(ctx, event.ID, ep.now()); err != nil {
			// The event goes out again next tick; consumers dedupe on event id.
			blocked[event.AggregateID] = true
			ep.logger.Error().
				Err(err).
				Str("event_id", event.ID).
				Msg("failed to mark event as published")
		}
	}

	return nil
}

func (ep *EventPublisher) purge(ctx context.Context) error {
	if ep.retention <= 0 {
		return nil
	}
	return ep.outboxRepo.DeletePublished(ctx, ep.now().Add(-ep.retention))
}
