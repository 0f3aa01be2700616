package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
)

// BalanceLedger applies signed deltas to account and counterparty balances.
// Each delta appends a balance entry and writes the new balance with an
// optimistic version check; callers hold the row locks.
type BalanceLedger struct {
	accountRepo AccountRepository
	partyRepo   CounterpartyRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
}

// NewBalanceLedger creates a new BalanceLedger.
func NewBalanceLedger(
	accountRepo AccountRepository,
	partyRepo CounterpartyRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
) *BalanceLedger {
	return &BalanceLedger{
		accountRepo: accountRepo,
		partyRepo:   partyRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
	}
}

// ApplyDelta adds delta to the account balance. Unless allowNegative is
// set, a debit that would leave the balance below zero fails with
// ErrInsufficientBalance and nothing is written.
func (l *BalanceLedger) ApplyDelta(
	ctx context.Context,
	tx Transaction,
	account *domain.Account,
	transactionID string,
	delta decimal.Decimal,
	allowNegative bool,
	now time.Time,
) error {
	if delta.IsZero() {
		return nil
	}

	if !allowNegative {
		if err := account.ValidateDelta(delta); err != nil {
			return err
		}
	}

	newBalance := account.ApplyDelta(delta)

	entry := &domain.BalanceEntry{
		ID:              l.idGen.Generate(),
		TransactionID:   transactionID,
		HolderID:        account.ID,
		HolderKind:      domain.HolderAccount,
		Amount:          delta,
		PreviousBalance: account.Balance,
		CurrentBalance:  newBalance,
		HolderVersion:   account.Version + 1,
		CreatedAt:       now,
	}

	if err := l.entryRepo.Create(ctx, tx, entry); err != nil {
		return err
	}

	if err := l.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, account.Version, now); err != nil {
		return err
	}

	account.Balance = newBalance
	account.Version++
	account.UpdatedAt = now

	return nil
}

// ApplyCounterpartyDelta adds delta to a payable or receivable balance.
// Counterparty balances have no lower bound.
func (l *BalanceLedger) ApplyCounterpartyDelta(
	ctx context.Context,
	tx Transaction,
	party *domain.Counterparty,
	kind domain.CounterpartyKind,
	transactionID string,
	delta decimal.Decimal,
	now time.Time,
) error {
	if party.Kind != kind {
		return domain.ErrCounterpartyKindMismatch
	}

	if delta.IsZero() {
		return nil
	}

	newBalance := party.ApplyDelta(delta)

	entry := &domain.BalanceEntry{
		ID:              l.idGen.Generate(),
		TransactionID:   transactionID,
		HolderID:        party.ID,
		HolderKind:      domain.HolderKindFor(kind),
		Amount:          delta,
		PreviousBalance: party.Balance,
		CurrentBalance:  newBalance,
		HolderVersion:   party.Version + 1,
		CreatedAt:       now,
	}

	if err := l.entryRepo.Create(ctx, tx, entry); err != nil {
		return err
	}

	if err := l.partyRepo.UpdateBalance(ctx, tx, party.ID, newBalance, party.Version, now); err != nil {
		return err
	}

	party.Balance = newBalance
	party.Version++
	party.UpdatedAt = now

	return nil
}
