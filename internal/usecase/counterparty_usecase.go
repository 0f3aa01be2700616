package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
)

// CounterpartyUseCase handles payables and receivables.
type CounterpartyUseCase struct {
	partyRepo CounterpartyRepository
	idGen     IDGenerator
}

// NewCounterpartyUseCase creates a new CounterpartyUseCase.
func NewCounterpartyUseCase(partyRepo CounterpartyRepository, idGen IDGenerator) *CounterpartyUseCase {
	return &CounterpartyUseCase{
		partyRepo: partyRepo,
		idGen:     idGen,
	}
}

// CreateCounterpartyInput represents input for creating a counterparty.
type CreateCounterpartyInput struct {
	Code   string
	Name   string
	Kind   domain.CounterpartyKind
	Status domain.Status
}

// CreateCounterparty creates a payable or receivable with a zero balance.
func (uc *CounterpartyUseCase) CreateCounterparty(ctx context.Context, input CreateCounterpartyInput) (*domain.Counterparty, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if !input.Kind.IsValid() {
		return nil, domain.Validationf("unknown counterparty kind %q", input.Kind)
	}

	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	party := &domain.Counterparty{
		ID:        uc.idGen.Generate(),
		Code:      strings.TrimSpace(input.Code),
		Name:      input.Name,
		Kind:      input.Kind,
		Balance:   decimal.Zero,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.partyRepo.Create(ctx, party); err != nil {
		return nil, err
	}

	return party, nil
}

// GetCounterparty retrieves a counterparty by ID.
func (uc *CounterpartyUseCase) GetCounterparty(ctx context.Context, id string) (*domain.Counterparty, error) {
	return uc.partyRepo.GetByID(ctx, id)
}

// ListCounterparties lists counterparties, optionally of one kind.
func (uc *CounterpartyUseCase) ListCounterparties(
	ctx context.Context,
	kind domain.CounterpartyKind,
	limit, offset int,
) ([]*domain.Counterparty, error) {
	if kind != "" && !kind.IsValid() {
		return nil, domain.Validationf("unknown counterparty kind %q", kind)
	}

	limit, offset = clampPage(limit, offset)
	return uc.partyRepo.List(ctx, kind, limit, offset)
}
