package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

// CounterpartyRepository implements usecase.CounterpartyRepository.
type CounterpartyRepository struct {
	store *Store
}

// Create stores a new counterparty. Codes are unique per kind.
func (r *CounterpartyRepository) Create(ctx context.Context, party *domain.Counterparty) error {
	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.parties[party.ID]; ok {
			return errDuplicateKey
		}
		for _, p := range st.parties {
			if p.Kind == party.Kind && p.Code == party.Code {
				return domain.Validationf("%s code %q already exists", party.Kind, party.Code)
			}
		}
		st.parties[party.ID] = copyParty(party)
		return nil
	})
}

// GetByID retrieves a counterparty by ID.
func (r *CounterpartyRepository) GetByID(ctx context.Context, id string) (*domain.Counterparty, error) {
	var party *domain.Counterparty
	err := r.store.read(func(st *state) error {
		p, ok := st.parties[id]
		if !ok {
			return domain.ErrCounterpartyNotFound
		}
		party = copyParty(p)
		return nil
	})
	return party, err
}

// GetByIDsForUpdate returns the counterparties that exist, sorted by id.
func (r *CounterpartyRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Counterparty, error) {
	st, err := workState(tx)
	if err != nil {
		return nil, err
	}

	parties := make([]*domain.Counterparty, 0, len(ids))
	for _, id := range sortedIDs(ids) {
		if p, ok := st.parties[id]; ok {
			parties = append(parties, copyParty(p))
		}
	}
	return parties, nil
}

// UpdateBalance writes a new balance if the version still matches.
func (r *CounterpartyRepository) UpdateBalance(
	ctx context.Context,
	tx usecase.Transaction,
	id string,
	balance decimal.Decimal,
	expectedVersion int64,
	updatedAt time.Time,
) error {
	st, err := workState(tx)
	if err != nil {
		return err
	}

	p, ok := st.parties[id]
	if !ok {
		return domain.ErrCounterpartyNotFound
	}
	if p.Version != expectedVersion {
		return domain.ErrConcurrencyConflict
	}

	p.Balance = balance
	p.Version++
	p.UpdatedAt = updatedAt
	return nil
}

// List returns counterparties ordered by code, optionally of one kind.
func (r *CounterpartyRepository) List(ctx context.Context, kind domain.CounterpartyKind, limit, offset int) ([]*domain.Counterparty, error) {
	var parties []*domain.Counterparty
	err := r.store.read(func(st *state) error {
		all := make([]*domain.Counterparty, 0, len(st.parties))
		for _, p := range st.parties {
			if kind == "" || p.Kind == kind {
				all = append(all, p)
			}
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].Code != all[j].Code {
				return all[i].Code < all[j].Code
			}
			return all[i].ID < all[j].ID
		})

		lo, hi := window(len(all), limit, offset)
		for _, p := range all[lo:hi] {
			parties = append(parties, copyParty(p))
		}
		return nil
	})
	return parties, err
}
