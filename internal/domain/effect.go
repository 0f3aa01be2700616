package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AmountBasis selects which transaction amount a leg moves.
type AmountBasis int

const (
	BasisTotal AmountBasis = iota
	BasisPaid
	BasisRemaining
)

// InventoryEffect describes what a transaction does to stock.
type InventoryEffect string

const (
	InventoryNone InventoryEffect = "none"
	// InventoryRecord creates one batch per line.
	InventoryRecord InventoryEffect = "record_purchase"
	// InventoryAllocate consumes batches in FIFO order.
	InventoryAllocate InventoryEffect = "allocate"
	// InventoryReturnToVendor consumes the line's named batch, or FIFO when none is named.
	InventoryReturnToVendor InventoryEffect = "return_to_vendor"
	// InventoryRestock puts units back into the batches the referenced sale consumed.
	InventoryRestock InventoryEffect = "restock"
)

// AccountLeg moves a cash/bank account by Sign times the Basis amount.
// A zero Sign means the leg is unused.
type AccountLeg struct {
	Sign  int
	Basis AmountBasis
}

// CounterpartyLeg moves a payable or receivable balance.
type CounterpartyLeg struct {
	Kind  CounterpartyKind
	Sign  int
	Basis AmountBasis
}

// Effect is one row of the transaction effect table.
type Effect struct {
	Source       AccountLeg
	Destination  AccountLeg
	Counterparty CounterpartyLeg
	Inventory    InventoryEffect
	LineType     LineType

	// SplitsPayment marks types where paid and remaining are tracked
	// separately. Every other type settles in full.
	SplitsPayment bool
	// LinesRequired rejects payloads without product lines.
	LinesRequired bool
	// MatchLineTotals requires total_amount == Σ line totals.
	MatchLineTotals bool
	// ComputesProfit fills profit_loss from consumptions.
	ComputesProfit bool
	// AllowsNegativeTotal lets the total cross zero; negative totals invert every leg.
	AllowsNegativeTotal bool
	// RequiresReference demands the original transaction id.
	RequiresReference bool
}

// UsesLines reports whether the type accepts product lines at all.
func (e Effect) UsesLines() bool {
	return e.Inventory != InventoryNone
}

var (
	debit  = -1
	credit = 1

	expense = Effect{
		Source:    AccountLeg{Sign: debit, Basis: BasisTotal},
		Inventory: InventoryNone,
	}
)

var effects = map[TransactionType]Effect{
	TxDeposit: {
		Destination: AccountLeg{Sign: credit, Basis: BasisTotal},
		Inventory:   InventoryNone,
	},
	TxTransfer: {
		Source:      AccountLeg{Sign: debit, Basis: BasisTotal},
		Destination: AccountLeg{Sign: credit, Basis: BasisTotal},
		Inventory:   InventoryNone,
	},
	TxPurchase: {
		Source:          AccountLeg{Sign: debit, Basis: BasisPaid},
		Counterparty:    CounterpartyLeg{Kind: CounterpartyPayable, Sign: credit, Basis: BasisRemaining},
		Inventory:       InventoryRecord,
		LineType:        LineTypePurchase,
		SplitsPayment:   true,
		LinesRequired:   true,
		MatchLineTotals: true,
	},
	TxPurchaseReturn: {
		Source:          AccountLeg{Sign: credit, Basis: BasisPaid},
		Counterparty:    CounterpartyLeg{Kind: CounterpartyPayable, Sign: debit, Basis: BasisRemaining},
		Inventory:       InventoryReturnToVendor,
		LineType:        LineTypePurchase,
		SplitsPayment:   true,
		LinesRequired:   true,
		MatchLineTotals: true,
		ComputesProfit:  true,
	},
	TxSale: {
		Destination:     AccountLeg{Sign: credit, Basis: BasisPaid},
		Counterparty:    CounterpartyLeg{Kind: CounterpartyReceivable, Sign: credit, Basis: BasisRemaining},
		Inventory:       InventoryAllocate,
		LineType:        LineTypeSale,
		SplitsPayment:   true,
		LinesRequired:   true,
		MatchLineTotals: true,
		ComputesProfit:  true,
	},
	TxSaleReturn: {
		Destination:       AccountLeg{Sign: debit, Basis: BasisPaid},
		Counterparty:      CounterpartyLeg{Kind: CounterpartyReceivable, Sign: debit, Basis: BasisRemaining},
		Inventory:         InventoryRestock,
		LineType:          LineTypeSale,
		SplitsPayment:     true,
		LinesRequired:     true,
		MatchLineTotals:   true,
		ComputesProfit:    true,
		RequiresReference: true,
	},
	TxAdvancePurchase: {
		Source:       AccountLeg{Sign: debit, Basis: BasisTotal},
		Counterparty: CounterpartyLeg{Kind: CounterpartyPayable, Sign: debit, Basis: BasisTotal},
		Inventory:    InventoryNone,
	},
	TxAdvanceSale: {
		Destination:  AccountLeg{Sign: credit, Basis: BasisTotal},
		Counterparty: CounterpartyLeg{Kind: CounterpartyReceivable, Sign: debit, Basis: BasisTotal},
		Inventory:    InventoryNone,
	},
	TxAdvanceInventory: {
		Destination:     AccountLeg{Sign: credit, Basis: BasisPaid},
		Counterparty:    CounterpartyLeg{Kind: CounterpartyReceivable, Sign: credit, Basis: BasisRemaining},
		Inventory:       InventoryAllocate,
		LineType:        LineTypeSale,
		SplitsPayment:   true,
		LinesRequired:   true,
		MatchLineTotals: true,
	},
	TxAssetPurchase: {
		Source:        AccountLeg{Sign: debit, Basis: BasisPaid},
		Counterparty:  CounterpartyLeg{Kind: CounterpartyPayable, Sign: credit, Basis: BasisRemaining},
		Inventory:     InventoryNone,
		SplitsPayment: true,
	},
	TxLoan: {
		Destination: AccountLeg{Sign: credit, Basis: BasisTotal},
		Inventory:   InventoryNone,
	},
	TxLoanReturn: {
		Source:    AccountLeg{Sign: debit, Basis: BasisTotal},
		Inventory: InventoryNone,
	},
	TxPayAble: {
		Source:       AccountLeg{Sign: debit, Basis: BasisTotal},
		Counterparty: CounterpartyLeg{Kind: CounterpartyPayable, Sign: debit, Basis: BasisTotal},
		Inventory:    InventoryNone,
	},
	TxPayAbleClient: {
		Source:              AccountLeg{Sign: debit, Basis: BasisTotal},
		Counterparty:        CounterpartyLeg{Kind: CounterpartyReceivable, Sign: credit, Basis: BasisTotal},
		Inventory:           InventoryNone,
		AllowsNegativeTotal: true,
	},
	TxReceiveAble: {
		Destination:  AccountLeg{Sign: credit, Basis: BasisTotal},
		Counterparty: CounterpartyLeg{Kind: CounterpartyReceivable, Sign: debit, Basis: BasisTotal},
		Inventory:    InventoryNone,
	},
	TxReceiveAbleVendor: {
		Destination:         AccountLeg{Sign: credit, Basis: BasisTotal},
		Counterparty:        CounterpartyLeg{Kind: CounterpartyPayable, Sign: credit, Basis: BasisTotal},
		Inventory:           InventoryNone,
		AllowsNegativeTotal: true,
	},
	TxPayroll:       expense,
	TxFixedUtility:  expense,
	TxFixedExpense:  expense,
	TxMiscellaneous: expense,
	TxOtherExpense:  expense,
	TxLostAndDamage: {
		Source:         AccountLeg{Sign: debit, Basis: BasisTotal},
		Inventory:      InventoryAllocate,
		LineType:       LineTypeSale,
		ComputesProfit: true,
	},
}

// EffectFor looks up the effect table entry for t.
func EffectFor(t TransactionType) (Effect, bool) {
	e, ok := effects[t]
	return e, ok
}

// TransactionTypes lists every known type in name order.
func TransactionTypes() []TransactionType {
	types := make([]TransactionType, 0, len(effects))
	for t := range effects {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Amount picks the transaction amount a leg basis refers to.
func (t *Transaction) Amount(basis AmountBasis) decimal.Decimal {
	switch basis {
	case BasisPaid:
		return t.PaidAmount
	case BasisRemaining:
		return t.RemainingPayment
	default:
		return t.TotalAmount
	}
}

// Delta is the signed balance change the leg applies for t.
func (l AccountLeg) Delta(t *Transaction) decimal.Decimal {
	if l.Sign == 0 {
		return decimal.Zero
	}
	return t.Amount(l.Basis).Mul(decimal.NewFromInt(int64(l.Sign)))
}

// Delta is the signed balance change the leg applies for t.
func (l CounterpartyLeg) Delta(t *Transaction) decimal.Decimal {
	if l.Sign == 0 {
		return decimal.Zero
	}
	return t.Amount(l.Basis).Mul(decimal.NewFromInt(int64(l.Sign)))
}

// CounterpartyID returns the id field the leg reads for t.
func (l CounterpartyLeg) CounterpartyID(t *Transaction) *string {
	switch l.Kind {
	case CounterpartyPayable:
		return t.AccountPayableID
	case CounterpartyReceivable:
		return t.AccountReceivableID
	}
	return nil
}
