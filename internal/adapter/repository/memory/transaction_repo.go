package memory

import (
	"context"
	"sort"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	store *Store
}

// Create stores a transaction with its lines and consumptions.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	st, err := workState(tx)
	if err != nil {
		return err
	}
	if _, ok := st.transactions[t.ID]; ok {
		return errDuplicateKey
	}
	st.transactions[t.ID] = copyTransaction(t)
	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var t *domain.Transaction
	err := r.store.read(func(st *state) error {
		stored, ok := st.transactions[id]
		if !ok {
			return domain.ErrTransactionNotFound
		}
		t = copyTransaction(stored)
		return nil
	})
	return t, err
}

// GetByIDForUpdate retrieves a transaction inside a unit of work.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	st, err := workState(tx)
	if err != nil {
		return nil, err
	}

	stored, ok := st.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return copyTransaction(stored), nil
}

// Delete removes a transaction and everything stored under it.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	st, err := workState(tx)
	if err != nil {
		return err
	}
	if _, ok := st.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(st.transactions, id)
	return nil
}

// ListByReference returns transactions whose reference is referenceID.
func (r *TransactionRepository) ListByReference(ctx context.Context, tx usecase.Transaction, referenceID string) ([]*domain.Transaction, error) {
	st, err := workState(tx)
	if err != nil {
		return nil, err
	}

	var out []*domain.Transaction
	for _, t := range st.transactions {
		if t.ReferenceID != nil && *t.ReferenceID == referenceID {
			out = append(out, copyTransaction(t))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// List returns transactions matching filter, newest first.
func (r *TransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	err := r.store.read(func(st *state) error {
		var matched []*domain.Transaction
		for _, t := range st.transactions {
			if matches(t, filter) {
				matched = append(matched, t)
			}
		}
		sortNewestFirst(matched)

		lo, hi := window(len(matched), filter.Limit, filter.Offset)
		for _, t := range matched[lo:hi] {
			out = append(out, copyTransaction(t))
		}
		return nil
	})
	return out, err
}

func matches(t *domain.Transaction, f usecase.TransactionFilter) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.AccountID != "" && !named(f.AccountID, t.SourceAccountID, t.DestinationAccountID) {
		return false
	}
	if f.CounterpartyID != "" && !named(f.CounterpartyID, t.AccountPayableID, t.AccountReceivableID) {
		return false
	}
	if f.From != nil && t.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && t.Date.After(*f.To) {
		return false
	}
	return true
}

func named(id string, ptrs ...*string) bool {
	for _, p := range ptrs {
		if p != nil && *p == id {
			return true
		}
	}
	return false
}

func sortNewestFirst(ts []*domain.Transaction) {
	sort.Slice(ts, func(i, j int) bool {
		if !ts[i].Date.Equal(ts[j].Date) {
			return ts[i].Date.After(ts[j].Date)
		}
		return ts[i].ID > ts[j].ID
	})
}
