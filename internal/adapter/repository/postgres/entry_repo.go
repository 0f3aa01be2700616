package postgres

import (
	"context"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/infrastructure/postgres/generated"
	"github.com/iho/costledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db generated.DBTX) *EntryRepository {
	return &EntryRepository{queries: generated.New(db)}
}

// Create appends a balance entry within a transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.BalanceEntry) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	return queries.CreateBalanceEntry(ctx, generated.CreateBalanceEntryParams{
		ID:              entry.ID,
		TransactionID:   entry.TransactionID,
		HolderID:        entry.HolderID,
		HolderKind:      string(entry.HolderKind),
		Amount:          decimalToNumeric(entry.Amount),
		PreviousBalance: decimalToNumeric(entry.PreviousBalance),
		CurrentBalance:  decimalToNumeric(entry.CurrentBalance),
		HolderVersion:   entry.HolderVersion,
		CreatedAt:       timeToPgTimestamptz(entry.CreatedAt),
	})
}

// ListByHolder returns a holder's entries, newest first.
func (r *EntryRepository) ListByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.BalanceEntry, error) {
	l, o := page(limit, offset)

	rows, err := r.queries.ListEntriesByHolder(ctx, generated.ListEntriesByHolderParams{
		HolderID: holderID,
		Limit:    l,
		Offset:   o,
	})
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// ListByTransaction returns the entries a transaction wrote, in write order.
func (r *EntryRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.BalanceEntry, error) {
	rows, err := r.queries.ListEntriesByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

func rowsToEntries(rows []generated.BalanceEntry) []*domain.BalanceEntry {
	entries := make([]*domain.BalanceEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &domain.BalanceEntry{
			ID:              row.ID,
			TransactionID:   row.TransactionID,
			HolderID:        row.HolderID,
			HolderKind:      domain.HolderKind(row.HolderKind),
			Amount:          numericToDecimal(row.Amount),
			PreviousBalance: numericToDecimal(row.PreviousBalance),
			CurrentBalance:  numericToDecimal(row.CurrentBalance),
			HolderVersion:   row.HolderVersion,
			CreatedAt:       row.CreatedAt.Time,
		})
	}
	return entries
}
