package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/costledger/internal/adapter/http/handler"
	"github.com/iho/costledger/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/costledger/internal/adapter/repository/postgres"
	"github.com/iho/costledger/internal/infrastructure/config"
	"github.com/iho/costledger/internal/infrastructure/postgres"
	"github.com/iho/costledger/internal/usecase"
)

// storage bundles the repositories of one storage driver.
type storage struct {
	txManager      usecase.TransactionManager
	accounts       usecase.AccountRepository
	counterparties usecase.CounterpartyRepository
	products       usecase.ProductRepository
	batches        usecase.BatchRepository
	transactions   usecase.TransactionRepository
	entries        usecase.EntryRepository
	outbox         usecase.OutboxRepository
	ledger         usecase.LedgerRepository

	// ping is nil for the memory driver.
	ping  handler.Pinger
	close func()
}

func openStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn().Msg("using in-memory storage, data is lost on exit")
		return memoryStorage(memory.NewStore()), nil
	case config.StoragePostgres:
		return postgresStorage(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func memoryStorage(store *memory.Store) *storage {
	return &storage{
		txManager:      store,
		accounts:       store.Accounts(),
		counterparties: store.Counterparties(),
		products:       store.Products(),
		batches:        store.Batches(),
		transactions:   store.Transactions(),
		entries:        store.Entries(),
		outbox:         store.Outbox(),
		ledger:         store.Ledger(),
		close:          func() {},
	}
}

func postgresStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*storage, error) {
	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	defer cancel()

	pool, err := postgres.NewPoolWithConfig(connectCtx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
		LockTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	logger.Info().Msg("connected to postgres")

	return &storage{
		txManager:      postgresRepo.NewTxManager(pool),
		accounts:       postgresRepo.NewAccountRepository(pool),
		counterparties: postgresRepo.NewCounterpartyRepository(pool),
		products:       postgresRepo.NewProductRepository(pool),
		batches:        postgresRepo.NewBatchRepository(pool),
		transactions:   postgresRepo.NewTransactionRepository(pool),
		entries:        postgresRepo.NewEntryRepository(pool),
		outbox:         postgresRepo.NewOutboxRepository(pool),
		ledger:         postgresRepo.NewLedgerRepository(pool),
		ping:           pool,
		close:          pool.Close,
	}, nil
}
