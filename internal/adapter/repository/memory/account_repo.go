package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// Create stores a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.accounts[account.ID]; ok {
			return errDuplicateKey
		}
		st.accounts[account.ID] = copyAccount(account)
		return nil
	})
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var account *domain.Account
	err := r.store.read(func(st *state) error {
		a, ok := st.accounts[id]
		if !ok {
			return domain.ErrAccountNotFound
		}
		account = copyAccount(a)
		return nil
	})
	return account, err
}

// GetByIDsForUpdate returns the accounts that exist, sorted by id. The
// writer slot held by tx already excludes other units.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	st, err := workState(tx)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range sortedIDs(ids) {
		if a, ok := st.accounts[id]; ok {
			accounts = append(accounts, copyAccount(a))
		}
	}
	return accounts, nil
}

// UpdateBalance writes a new balance if the version still matches.
func (r *AccountRepository) UpdateBalance(
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

	a, ok := st.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if a.Version != expectedVersion {
		return domain.ErrConcurrencyConflict
	}

	a.Balance = balance
	a.Version++
	a.UpdatedAt = updatedAt
	return nil
}

// List returns accounts ordered by creation time.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	var accounts []*domain.Account
	err := r.store.read(func(st *state) error {
		all := make([]*domain.Account, 0, len(st.accounts))
		for _, a := range st.accounts {
			all = append(all, a)
		}
		sort.Slice(all, func(i, j int) bool {
			if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].CreatedAt.Before(all[j].CreatedAt)
			}
			return all[i].ID < all[j].ID
		})

		lo, hi := window(len(all), limit, offset)
		for _, a := range all[lo:hi] {
			accounts = append(accounts, copyAccount(a))
		}
		return nil
	})
	return accounts, err
}

func sortedIDs(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}

// window clamps a limit/offset page to n items.
func window(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	hi := n
	if limit > 0 && offset+limit < n {
		hi = offset + limit
	}
	return offset, hi
}
