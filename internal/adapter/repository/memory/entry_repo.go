package memory

import (
	"context"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	store *Store
}

// Create appends a balance entry.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.BalanceEntry) error {
	st, err := workState(tx)
	if err != nil {
		return err
	}
	e := *entry
	st.entries = append(st.entries, &e)
	return nil
}

// ListByHolder returns a holder's entries, newest first.
func (r *EntryRepository) ListByHolder(ctx context.Context, holderID string, limit, offset int) ([]*domain.BalanceEntry, error) {
	var out []*domain.BalanceEntry
	err := r.store.read(func(st *state) error {
		var matched []*domain.BalanceEntry
		for i := len(st.entries) - 1; i >= 0; i-- {
			if st.entries[i].HolderID == holderID {
				matched = append(matched, st.entries[i])
			}
		}

		lo, hi := window(len(matched), limit, offset)
		for _, e := range matched[lo:hi] {
			c := *e
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

// ListByTransaction returns the entries a transaction wrote, in write order.
func (r *EntryRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.BalanceEntry, error) {
	var out []*domain.BalanceEntry
	err := r.store.read(func(st *state) error {
		for _, e := range st.entries {
			if e.TransactionID == transactionID {
				c := *e
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}
