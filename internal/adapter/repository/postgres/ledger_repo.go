package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/infrastructure/postgres/generated"
	"github.com/iho/costledger/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// EntryTotals sums balance entries per holder.
func (r *LedgerRepository) EntryTotals(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.queries.SumEntriesByHolder(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.HolderID] = numericToDecimal(row.Total)
	}

	return totals, nil
}

// InventoryTotals aggregates batches and consumptions per product.
func (r *LedgerRepository) InventoryTotals(ctx context.Context) ([]usecase.InventoryTotals, error) {
	rows, err := r.queries.GetInventoryTotals(ctx)
	if err != nil {
		return nil, err
	}

	totals := make([]usecase.InventoryTotals, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, usecase.InventoryTotals{
			ProductID:        row.ProductID,
			RecordedQuantity: numericToDecimal(row.RecordedQuantity),
			Original:         numericToDecimal(row.Original),
			Available:        numericToDecimal(row.Available),
			OnHand:           numericToDecimal(row.OnHand),
			Consumed:         numericToDecimal(row.Consumed),
		})
	}

	return totals, nil
}
