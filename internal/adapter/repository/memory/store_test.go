package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

func seedAccount(t *testing.T, s *Store, id string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, s.Accounts().Create(context.Background(), &domain.Account{
		ID:        id,
		Name:      id,
		Type:      domain.AccountTypeBank,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func TestStore_CommitPublishesChanges(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedAccount(t, s, "acc-1")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)

	err = s.Accounts().UpdateBalance(ctx, tx, "acc-1", decimal.NewFromInt(50), 0, time.Now())
	require.NoError(t, err)

	// Uncommitted writes are invisible to readers.
	a, err := s.Accounts().GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, a.Balance.IsZero())

	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx))

	a, err = s.Accounts().GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, a.Balance.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, int64(1), a.Version)
}

func TestStore_RollbackDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedAccount(t, s, "acc-1")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Accounts().UpdateBalance(ctx, tx, "acc-1", decimal.NewFromInt(50), 0, time.Now()))
	require.NoError(t, s.Entries().Create(ctx, tx, &domain.BalanceEntry{ID: "e-1", HolderID: "acc-1", Amount: decimal.NewFromInt(50)}))
	require.NoError(t, tx.Rollback(ctx))

	a, err := s.Accounts().GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, a.Balance.IsZero())

	totals, err := s.Ledger().EntryTotals(ctx)
	require.NoError(t, err)
	assert.Empty(t, totals)

	assert.ErrorIs(t, tx.Commit(ctx), errTxDone)
}

func TestStore_StaleVersionConflicts(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedAccount(t, s, "acc-1")

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	err = s.Accounts().UpdateBalance(ctx, tx, "acc-1", decimal.NewFromInt(1), 7, time.Now())
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
}

func TestStore_BeginWaitsForWriter(t *testing.T) {
	s := NewStore()

	tx, err := s.Begin(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = s.Begin(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, tx.Rollback(context.Background()))

	tx2, err := s.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx2.Commit(context.Background()))
}

func TestStore_ForeignTransactionRejected(t *testing.T) {
	s := NewStore()
	_, err := s.Accounts().GetByIDsForUpdate(context.Background(), fakeTx{}, []string{"x"})
	assert.ErrorIs(t, err, errForeignTx)
}

type fakeTx struct{}

func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }

var _ usecase.Transaction = fakeTx{}

func TestBatchRepository_SequenceAndFIFO(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)

	batches := []*domain.Batch{
		{ID: "b-late", ProductID: "p-1", PurchaseDate: day.AddDate(0, 0, 1)},
		{ID: "b-first", ProductID: "p-1", PurchaseDate: day},
		{ID: "b-second", ProductID: "p-1", PurchaseDate: day},
		{ID: "b-other", ProductID: "p-2", PurchaseDate: day},
	}
	for _, b := range batches {
		require.NoError(t, s.Batches().Create(ctx, tx, b))
	}
	assert.Equal(t, int64(1), batches[0].Seq)
	assert.Equal(t, int64(4), batches[3].Seq)
	require.NoError(t, tx.Commit(ctx))

	got, err := s.Batches().ListByProduct(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b-first", got[0].ID)
	assert.Equal(t, "b-second", got[1].ID)
	assert.Equal(t, "b-late", got[2].ID)
}

func TestBatchRepository_ListExpiring(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Batches().Create(ctx, tx, &domain.Batch{ID: "old", ProductID: "p", ExpiresAt: &past, Status: domain.BatchStatusActive}))
	require.NoError(t, s.Batches().Create(ctx, tx, &domain.Batch{ID: "fresh", ProductID: "p", ExpiresAt: &future, Status: domain.BatchStatusActive}))
	require.NoError(t, s.Batches().Create(ctx, tx, &domain.Batch{ID: "done", ProductID: "p", ExpiresAt: &past, Status: domain.BatchStatusExpired}))
	require.NoError(t, s.Batches().Create(ctx, tx, &domain.Batch{ID: "forever", ProductID: "p", Status: domain.BatchStatusActive}))
	require.NoError(t, tx.Commit(ctx))

	got, err := s.Batches().ListExpiring(ctx, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "old", got[0].ID)
}

func TestTransactionRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	day := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	bank := "bank"
	vendor := "vendor"

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	for i, typ := range []domain.TransactionType{domain.TxDeposit, domain.TxPurchase, domain.TxPurchase} {
		tr := &domain.Transaction{
			ID:              string(rune('a' + i)),
			Type:            typ,
			SourceAccountID: &bank,
			Date:            day.AddDate(0, 0, i),
		}
		if typ == domain.TxPurchase {
			tr.AccountPayableID = &vendor
		}
		require.NoError(t, s.Transactions().Create(ctx, tx, tr))
	}
	require.NoError(t, tx.Commit(ctx))

	from := day.AddDate(0, 0, 1)
	tests := []struct {
		name   string
		filter usecase.TransactionFilter
		want   []string
	}{
		{"all newest first", usecase.TransactionFilter{}, []string{"c", "b", "a"}},
		{"by type", usecase.TransactionFilter{Type: domain.TxDeposit}, []string{"a"}},
		{"by counterparty", usecase.TransactionFilter{CounterpartyID: vendor}, []string{"c", "b"}},
		{"by account", usecase.TransactionFilter{AccountID: bank, Limit: 1, Offset: 1}, []string{"b"}},
		{"from date", usecase.TransactionFilter{From: &from, To: &from}, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Transactions().List(ctx, tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, tr := range got {
				ids = append(ids, tr.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestOutboxRepository_PublishCycle(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Outbox().Create(ctx, tx, &domain.OutboxEvent{ID: "ev-1", EventType: domain.EventTypeTransactionCreated}))
	require.NoError(t, s.Outbox().Create(ctx, tx, &domain.OutboxEvent{ID: "ev-2", EventType: domain.EventTypeTransactionDeleted}))
	require.NoError(t, tx.Commit(ctx))

	pending, err := s.Outbox().GetUnpublished(ctx, 1)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "ev-1", pending[0].ID)

	publishedAt := time.Now().UTC()
	require.NoError(t, s.Outbox().MarkPublished(ctx, "ev-1", publishedAt))

	pending, err = s.Outbox().GetUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "ev-2", pending[0].ID)

	require.NoError(t, s.Outbox().DeletePublished(ctx, publishedAt.Add(time.Second)))
	st := s.committed
	assert.Len(t, st.outbox, 1)
}
