package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HolderKind identifies what kind of balance an entry moved.
type HolderKind string

const (
	HolderAccount    HolderKind = "account"
	HolderPayable    HolderKind = "payable"
	HolderReceivable HolderKind = "receivable"
)

// HolderKindFor maps a counterparty kind to its entry holder kind.
func HolderKindFor(kind CounterpartyKind) HolderKind {
	if kind == CounterpartyPayable {
		return HolderPayable
	}
	return HolderReceivable
}

// BalanceEntry is one append-only balance movement. Reversals append
// compensating entries instead of removing rows.
type BalanceEntry struct {
	CreatedAt       time.Time
	ID              string
	TransactionID   string
	HolderID        string
	HolderKind      HolderKind
	Amount          decimal.Decimal
	PreviousBalance decimal.Decimal
	CurrentBalance  decimal.Decimal
	HolderVersion   int64
}
