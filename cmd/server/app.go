package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/costledger/internal/adapter/http"
	"github.com/iho/costledger/internal/adapter/http/handler"
	"github.com/iho/costledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/costledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/costledger/internal/adapter/repository/redis"
	"github.com/iho/costledger/internal/infrastructure/config"
	"github.com/iho/costledger/internal/infrastructure/eventpublisher"
	"github.com/iho/costledger/internal/infrastructure/metrics"
	"github.com/iho/costledger/internal/infrastructure/redis"
	"github.com/iho/costledger/internal/usecase"
)

// app is the wired service: the HTTP router plus its background workers.
type app struct {
	router    http.Handler
	publisher *eventpublisher.EventPublisher
	limiter   *middleware.RateLimiter
	closers   []func()
}

// Close releases backends in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*app, error) {
	a := &app{}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.close)

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		logger.Info().Msg("connected to redis")
	}

	m := metrics.NewWithRegisterer(reg)
	idGen := postgresRepo.NewULIDGenerator()

	txOpts := []usecase.TransactionOption{
		usecase.WithMetrics(m),
		usecase.WithLogger(logger),
		usecase.WithRetrier(postgresRepo.NewRetrier(cfg.RetryMaxAttempts, logger)),
	}

	var (
		cache            usecase.Cache
		idempotencyStore usecase.IdempotencyStore
		locker           eventpublisher.Locker
		redisPing        handler.Pinger
	)
	if redisClient != nil {
		cache = redisRepo.NewCache(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		locker = eventpublisher.NewRedisLocker(redisClient)
		redisPing = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		txOpts = append(txOpts, usecase.WithBalanceCache(cache))
	}

	accountUC := usecase.NewAccountUseCase(store.accounts, store.entries, idGen, cache, cfg.BalanceCacheTTL, m, logger)
	partyUC := usecase.NewCounterpartyUseCase(store.counterparties, idGen)
	statementUC := usecase.NewStatementUseCase(store.counterparties, store.transactions)
	productUC := usecase.NewProductUseCase(store.txManager, store.products, store.batches, store.outbox, idGen, m, logger)
	reconcileUC := usecase.NewReconciliationUseCase(store.accounts, store.counterparties, store.ledger, m)
	txUC := usecase.NewTransactionUseCase(
		store.txManager,
		store.accounts,
		store.counterparties,
		store.products,
		store.batches,
		store.transactions,
		store.entries,
		store.outbox,
		idGen,
		txOpts...,
	)

	var publisher eventpublisher.Publisher = eventpublisher.NewLogPublisher(logger)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := eventpublisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		a.closers = append(a.closers, func() {
			if err := kafkaPublisher.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close kafka writer")
			}
		})
		publisher = kafkaPublisher
	}

	a.publisher = eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: store.outbox,
		Publisher:  publisher,
		Locker:     locker,
		Metrics:    m,
		Logger:     logger,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})

	if cfg.RateLimitRPS > 0 {
		a.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	health := handler.NewHealthHandler().
		WithCheck("database", store.ping).
		WithCheck("redis", redisPing)

	a.router = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:      handler.NewAccountHandler(accountUC),
		CounterpartyHandler: handler.NewCounterpartyHandler(partyUC, statementUC),
		ProductHandler:      handler.NewProductHandler(productUC),
		TransactionHandler:  handler.NewTransactionHandler(txUC),
		LedgerHandler:       handler.NewLedgerHandler(reconcileUC),
		HealthHandler:       health,
		IdempotencyStore:    idempotencyStore,
		IdempotencyTTL:      cfg.IdempotencyTTL,
		RateLimiter:         a.limiter,
		MetricsHandler:      promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		Logger:              logger,
	})

	return a, nil
}
