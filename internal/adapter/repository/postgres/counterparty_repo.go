package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/infrastructure/postgres/generated"
	"github.com/iho/costledger/internal/usecase"
)

// CounterpartyRepository implements usecase.CounterpartyRepository.
type CounterpartyRepository struct {
	queries *generated.Queries
}

// NewCounterpartyRepository creates a new CounterpartyRepository.
func NewCounterpartyRepository(db generated.DBTX) *CounterpartyRepository {
	return &CounterpartyRepository{queries: generated.New(db)}
}

// Create creates a counterparty. Codes are unique per kind.
func (r *CounterpartyRepository) Create(ctx context.Context, party *domain.Counterparty) error {
	err := r.queries.CreateCounterparty(ctx, generated.CreateCounterpartyParams{
		ID:        party.ID,
		Code:      party.Code,
		Name:      party.Name,
		Kind:      string(party.Kind),
		Balance:   decimalToNumeric(party.Balance),
		Status:    string(party.Status),
		Version:   party.Version,
		CreatedAt: timeToPgTimestamptz(party.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(party.UpdatedAt),
	})
	if isUniqueViolation(err) {
		return domain.Validationf("%s code %q already exists", party.Kind, party.Code)
	}

	return err
}

// GetByID retrieves a counterparty by ID.
func (r *CounterpartyRepository) GetByID(ctx context.Context, id string) (*domain.Counterparty, error) {
	row, err := r.queries.GetCounterpartyByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCounterpartyNotFound
		}

		return nil, err
	}

	return rowToCounterparty(row), nil
}

// GetByIDsForUpdate locks the counterparties in id order.
func (r *CounterpartyRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Counterparty, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	rows, err := queries.GetCounterpartiesByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	parties := make([]*domain.Counterparty, 0, len(rows))
	for _, row := range rows {
		parties = append(parties, rowToCounterparty(row))
	}

	return parties, nil
}

// UpdateBalance writes a new balance guarded by the expected version.
func (r *CounterpartyRepository) UpdateBalance(
	ctx context.Context,
	tx usecase.Transaction,
	id string,
	balance decimal.Decimal,
	expectedVersion int64,
	updatedAt time.Time,
) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	n, err := queries.UpdateCounterpartyBalance(ctx, generated.UpdateCounterpartyBalanceParams{
		ID:        id,
		Balance:   decimalToNumeric(balance),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
		Version:   expectedVersion,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrConcurrencyConflict
	}

	return nil
}

// List lists counterparties by code, optionally restricted to one kind.
func (r *CounterpartyRepository) List(ctx context.Context, kind domain.CounterpartyKind, limit, offset int) ([]*domain.Counterparty, error) {
	l, o := page(limit, offset)

	rows, err := r.queries.ListCounterparties(ctx, generated.ListCounterpartiesParams{
		Kind:   string(kind),
		Limit:  l,
		Offset: o,
	})
	if err != nil {
		return nil, err
	}

	parties := make([]*domain.Counterparty, 0, len(rows))
	for _, row := range rows {
		parties = append(parties, rowToCounterparty(row))
	}

	return parties, nil
}

func rowToCounterparty(row generated.Counterparty) *domain.Counterparty {
	return &domain.Counterparty{
		ID:        row.ID,
		Code:      row.Code,
		Name:      row.Name,
		Kind:      domain.CounterpartyKind(row.Kind),
		Balance:   numericToDecimal(row.Balance),
		Status:    domain.Status(row.Status),
		Version:   row.Version,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
