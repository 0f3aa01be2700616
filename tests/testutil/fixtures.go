package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	postgresRepo "github.com/iho/costledger/internal/adapter/repository/postgres"
	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/infrastructure/metrics"
	"github.com/iho/costledger/internal/infrastructure/postgres"
	"github.com/iho/costledger/internal/usecase"
)

// TestDB provides a migrated database for integration tests.
type TestDB struct {
	Pool *pgxpool.Pool
	t    *testing.T
}

// NewTestDB connects to DATABASE_URL and applies migrations. The test is
// skipped in short mode or when no database is configured.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	migrationsPath := "internal/infrastructure/postgres/migrations"
	for _, candidate := range []string{migrationsPath, "../../" + migrationsPath, "../../../" + migrationsPath} {
		if _, err := os.Stat(candidate); err == nil {
			migrationsPath = candidate
			break
		}
	}

	if err := postgres.RunMigrations(dbURL, migrationsPath, zerolog.Nop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: dbURL,
		MaxConns:    20,
		LockTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	db := &TestDB{Pool: pool, t: t}
	db.TruncateAll(ctx)
	t.Cleanup(pool.Close)

	return db
}

// TruncateAll removes all data from tables.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `
		TRUNCATE TABLE
			outbox_events,
			balance_entries,
			batch_consumptions,
			transaction_lines,
			batches,
			transactions,
			products,
			counterparties,
			accounts
		CASCADE
	`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// Ledger bundles the use cases over one database.
type Ledger struct {
	Transactions   *usecase.TransactionUseCase
	Accounts       *usecase.AccountUseCase
	Counterparties *usecase.CounterpartyUseCase
	Products       *usecase.ProductUseCase
	Statements     *usecase.StatementUseCase
	Reconciliation *usecase.ReconciliationUseCase
	Outbox         *postgresRepo.OutboxRepository
}

// NewLedger wires every use case to db's postgres repositories.
func (db *TestDB) NewLedger() *Ledger {
	pool := db.Pool
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	logger := zerolog.Nop()
	idGen := postgresRepo.NewULIDGenerator()

	txManager := postgresRepo.NewTxManager(pool)
	accounts := postgresRepo.NewAccountRepository(pool)
	parties := postgresRepo.NewCounterpartyRepository(pool)
	products := postgresRepo.NewProductRepository(pool)
	batches := postgresRepo.NewBatchRepository(pool)
	txs := postgresRepo.NewTransactionRepository(pool)
	entries := postgresRepo.NewEntryRepository(pool)
	outbox := postgresRepo.NewOutboxRepository(pool)

	return &Ledger{
		Transactions: usecase.NewTransactionUseCase(
			txManager, accounts, parties, products, batches, txs, entries, outbox, idGen,
			usecase.WithRetrier(postgresRepo.NewRetrier(10, logger)),
			usecase.WithMetrics(m),
		),
		Accounts:       usecase.NewAccountUseCase(accounts, entries, idGen, nil, 0, m, logger),
		Counterparties: usecase.NewCounterpartyUseCase(parties, idGen),
		Products:       usecase.NewProductUseCase(txManager, products, batches, outbox, idGen, m, logger),
		Statements:     usecase.NewStatementUseCase(parties, txs),
		Reconciliation: usecase.NewReconciliationUseCase(accounts, parties, postgresRepo.NewLedgerRepository(pool), m),
		Outbox:         outbox,
	}
}

// CreateFundedAccount creates a bank account and deposits opening into it.
func (l *Ledger) CreateFundedAccount(t *testing.T, name string, opening decimal.Decimal) *domain.Account {
	t.Helper()
	ctx := context.Background()

	account, err := l.Accounts.CreateAccount(ctx, usecase.CreateAccountInput{Name: name, Type: domain.AccountTypeBank})
	if err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	if opening.IsPositive() {
		if _, err := l.Transactions.CreateTransaction(ctx, usecase.TransactionInput{
			Type:                 domain.TxDeposit,
			DestinationAccountID: &account.ID,
			TotalAmount:          opening,
		}); err != nil {
			t.Fatalf("failed to fund account: %v", err)
		}
	}

	return account
}

// CreateCounterparty creates an active counterparty.
func (l *Ledger) CreateCounterparty(t *testing.T, code string, kind domain.CounterpartyKind) *domain.Counterparty {
	t.Helper()

	party, err := l.Counterparties.CreateCounterparty(context.Background(), usecase.CreateCounterpartyInput{
		Code: code,
		Name: code,
		Kind: kind,
	})
	if err != nil {
		t.Fatalf("failed to create counterparty: %v", err)
	}
	return party
}

// CreateProduct creates a product with no stock.
func (l *Ledger) CreateProduct(t *testing.T, name string) *domain.Product {
	t.Helper()

	product, err := l.Products.CreateProduct(context.Background(), usecase.CreateProductInput{Name: name, Unit: "pcs"})
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

// AssertReconciled fails the test if any balance or batch drifted from the ledger.
func (l *Ledger) AssertReconciled(t *testing.T) {
	t.Helper()

	report, err := l.Reconciliation.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if !report.Consistent {
		t.Fatalf("ledger inconsistent: %d discrepancies, %d inventory issues",
			len(report.Discrepancies), len(report.InventoryIssues))
	}
}
