package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
)

// AccountRepository defines data access for cash, bank and petty accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	// UpdateBalance writes the balance only if the stored version still equals
	// expectedVersion, and bumps it. A stale version yields ErrConcurrencyConflict.
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, expectedVersion int64, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// CounterpartyRepository defines data access for payables and receivables.
type CounterpartyRepository interface {
	Create(ctx context.Context, party *domain.Counterparty) error
	GetByID(ctx context.Context, id string) (*domain.Counterparty, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Counterparty, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, expectedVersion int64, updatedAt time.Time) error
	// List filters by kind unless kind is empty.
	List(ctx context.Context, kind domain.CounterpartyKind, limit, offset int) ([]*domain.Counterparty, error)
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Product, error)
	UpdateStock(ctx context.Context, tx Transaction, id string, quantity, currentPrice decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Product, error)
}

// BatchRepository defines data access for purchase batches.
type BatchRepository interface {
	// Create stores a batch and assigns its insertion sequence.
	Create(ctx context.Context, tx Transaction, batch *domain.Batch) error
	ListByProduct(ctx context.Context, productID string) ([]*domain.Batch, error)
	// ListByProductForUpdate locks the product's batches in FIFO order.
	ListByProductForUpdate(ctx context.Context, tx Transaction, productID string) ([]*domain.Batch, error)
	// ListExpiring returns batches not yet marked expired whose expiry is before asOf.
	ListExpiring(ctx context.Context, asOf time.Time) ([]*domain.Batch, error)
	Update(ctx context.Context, tx Transaction, batch *domain.Batch) error
	Delete(ctx context.Context, tx Transaction, id string) error
	CountConsumptions(ctx context.Context, tx Transaction, batchID string) (int, error)
}

// TransactionFilter narrows transaction listings. Zero values are ignored.
type TransactionFilter struct {
	Type           domain.TransactionType
	AccountID      string
	CounterpartyID string
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
}

// TransactionRepository defines data access for transactions. Transactions
// are always stored and loaded together with their lines and consumptions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, t *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	Delete(ctx context.Context, tx Transaction, id string) error
	ListByReference(ctx context.Context, tx Transaction, referenceID string) ([]*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error)
}

// EntryRepository defines data access for balance entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.BalanceEntry) error
	ListByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.BalanceEntry, error)
	ListByTransaction(ctx context.Context, transactionID string) ([]*domain.BalanceEntry, error)
}

// InventoryTotals aggregates one product's batch and consumption rows.
type InventoryTotals struct {
	ProductID        string
	RecordedQuantity decimal.Decimal
	Original         decimal.Decimal
	Available        decimal.Decimal
	OnHand           decimal.Decimal
	Consumed         decimal.Decimal
}

// LedgerRepository defines data access for ledger-wide checks.
type LedgerRepository interface {
	// EntryTotals sums balance entries per holder id.
	EntryTotals(ctx context.Context) (map[string]decimal.Decimal, error)
	InventoryTotals(ctx context.Context) ([]InventoryTotals, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs a whole unit of work on retryable conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claim so a failed request can be retried.
	Release(ctx context.Context, key string) error
}
