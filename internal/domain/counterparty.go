package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CounterpartyKind tells which ledger a counterparty balance lives in.
type CounterpartyKind string

const (
	// CounterpartyPayable is a vendor; a positive balance is what we owe.
	CounterpartyPayable CounterpartyKind = "payable"
	// CounterpartyReceivable is a customer; a positive balance is what they owe us.
	CounterpartyReceivable CounterpartyKind = "receivable"
)

// IsValid reports whether k is a known counterparty kind.
func (k CounterpartyKind) IsValid() bool {
	return k == CounterpartyPayable || k == CounterpartyReceivable
}

// Counterparty is an account-payable or account-receivable party.
// Balance may go negative to represent an advance or overpayment.
type Counterparty struct {
	ID        string
	Code      string
	Name      string
	Kind      CounterpartyKind
	Balance   decimal.Decimal
	Status    Status
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the counterparty accepts new transactions.
func (c *Counterparty) IsActive() bool {
	return c.Status == StatusActive
}

// ApplyDelta returns the balance after adding delta.
func (c *Counterparty) ApplyDelta(delta decimal.Decimal) decimal.Decimal {
	return c.Balance.Add(delta)
}
