package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// EntryTotals sums balance entries per holder.
func (r *LedgerRepository) EntryTotals(ctx context.Context) (map[string]decimal.Decimal, error) {
	totals := make(map[string]decimal.Decimal)
	err := r.store.read(func(st *state) error {
		for _, e := range st.entries {
			totals[e.HolderID] = totals[e.HolderID].Add(e.Amount)
		}
		return nil
	})
	return totals, err
}

// InventoryTotals aggregates batches and consumptions per product, in
// product id order. Every product is listed, stocked or not.
func (r *LedgerRepository) InventoryTotals(ctx context.Context) ([]usecase.InventoryTotals, error) {
	var out []usecase.InventoryTotals
	err := r.store.read(func(st *state) error {
		byProduct := make(map[string]*usecase.InventoryTotals, len(st.products))
		for id, p := range st.products {
			byProduct[id] = &usecase.InventoryTotals{ProductID: id, RecordedQuantity: p.Quantity}
		}

		batchProduct := make(map[string]string, len(st.batches))
		for _, b := range st.batches {
			batchProduct[b.ID] = b.ProductID
			it, ok := byProduct[b.ProductID]
			if !ok {
				continue
			}
			it.Original = it.Original.Add(b.OriginalQuantity)
			it.Available = it.Available.Add(b.AvailableQuantity)
			if b.Status != domain.BatchStatusExpired {
				it.OnHand = it.OnHand.Add(b.AvailableQuantity)
			}
		}

		for _, t := range st.transactions {
			for _, l := range t.Lines {
				for _, c := range l.Consumptions {
					if it, ok := byProduct[batchProduct[c.BatchID]]; ok {
						it.Consumed = it.Consumed.Add(c.QuantitySold)
					}
				}
			}
		}

		out = make([]usecase.InventoryTotals, 0, len(byProduct))
		for _, it := range byProduct {
			out = append(out, *it)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
		return nil
	})
	return out, err
}
