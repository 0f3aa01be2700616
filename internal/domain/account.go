package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies a money-holding account.
type AccountType string

const (
	AccountTypePetty AccountType = "petty"
	AccountTypeBank  AccountType = "bank"
	AccountTypeCash  AccountType = "cash"
)

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypePetty, AccountTypeBank, AccountTypeCash:
		return true
	}
	return false
}

// Status is the lifecycle state shared by accounts and counterparties.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Account represents a cash, bank or petty-cash account holding a balance.
type Account struct {
	ID        string
	Name      string
	Type      AccountType
	Balance   decimal.Decimal
	Status    Status
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the account accepts new transactions.
func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

// ValidateDelta checks that applying delta keeps the balance non-negative.
// Credits always pass.
func (a *Account) ValidateDelta(delta decimal.Decimal) error {
	if !delta.IsNegative() {
		return nil
	}
	if a.Balance.Add(delta).IsNegative() {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDelta returns the balance after adding delta.
func (a *Account) ApplyDelta(delta decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(delta)
}
