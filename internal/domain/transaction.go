package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of ledger operations.
type TransactionType string

const (
	TxDeposit           TransactionType = "deposit"
	TxTransfer          TransactionType = "transfer"
	TxPurchase          TransactionType = "purchase"
	TxPurchaseReturn    TransactionType = "purchase_return"
	TxSale              TransactionType = "sale"
	TxSaleReturn        TransactionType = "sale_return"
	TxAdvancePurchase   TransactionType = "advance_purchase"
	TxAdvanceSale       TransactionType = "advance_sale"
	TxAdvanceInventory  TransactionType = "advance_inventory"
	TxAssetPurchase     TransactionType = "asset_purchase"
	TxLoan              TransactionType = "loan"
	TxLoanReturn        TransactionType = "loan_return"
	TxPayAble           TransactionType = "pay_able"
	TxPayAbleClient     TransactionType = "pay_able_client"
	TxReceiveAble       TransactionType = "receive_able"
	TxReceiveAbleVendor TransactionType = "receive_able_vendor"
	TxPayroll           TransactionType = "payroll"
	TxFixedUtility      TransactionType = "fixed_utility"
	TxFixedExpense      TransactionType = "fixed_expense"
	TxMiscellaneous     TransactionType = "miscellaneous"
	TxOtherExpense      TransactionType = "other_expense"
	TxLostAndDamage     TransactionType = "lost_and_damage"
)

// LineType tells whether a line brings stock in or takes it out.
type LineType string

const (
	LineTypePurchase LineType = "purchase"
	LineTypeSale     LineType = "sale"
)

// Transaction is the unit of atomicity: all its side effects commit together.
type Transaction struct {
	ID                   string
	Type                 TransactionType
	SourceAccountID      *string
	DestinationAccountID *string
	AccountPayableID     *string
	AccountReceivableID  *string
	ReferenceID          *string
	TotalAmount          decimal.Decimal
	PaidAmount           decimal.Decimal
	RemainingPayment     decimal.Decimal
	ProfitLoss           *decimal.Decimal
	Date                 time.Time
	Note                 string
	Lines                []*TransactionLine
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TransactionLine is one product row of a transaction.
type TransactionLine struct {
	ID              string
	TransactionID   string
	ProductID       string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPerUnit decimal.Decimal
	TotalAmount     decimal.Decimal
	BatchID         *string
	ExpiresAt       *time.Time
	Type            LineType
	Consumptions    []*BatchConsumption
}

// BatchConsumption records how much of one batch a line used and at what cost.
// Restock rows written by sale returns carry a negative QuantitySold.
type BatchConsumption struct {
	ID                string
	TransactionLineID string
	BatchID           string
	QuantitySold      decimal.Decimal
	PurchasePriceUsed decimal.Decimal
	SalePricePerUnit  decimal.Decimal
	COGSAmount        decimal.Decimal
	ProfitAmount      decimal.Decimal
}

// NetUnitPrice is the unit price after discount.
func (l *TransactionLine) NetUnitPrice() decimal.Decimal {
	return l.UnitPrice.Sub(l.DiscountPerUnit)
}

// ExpectedTotal is quantity times the discounted unit price.
func (l *TransactionLine) ExpectedTotal() decimal.Decimal {
	return l.Quantity.Mul(l.NetUnitPrice())
}

// COGS sums the cost of goods of the line's consumptions.
func (l *TransactionLine) COGS() decimal.Decimal {
	total := decimal.Zero
	for _, c := range l.Consumptions {
		total = total.Add(c.COGSAmount)
	}
	return total
}

// Profit sums the profit of the line's consumptions.
func (l *TransactionLine) Profit() decimal.Decimal {
	total := decimal.Zero
	for _, c := range l.Consumptions {
		total = total.Add(c.ProfitAmount)
	}
	return total
}

// Effect returns the effect table entry for the transaction type.
func (t *Transaction) Effect() (Effect, bool) {
	return EffectFor(t.Type)
}

// PaymentStatus derives the settlement status from the amounts.
func (t *Transaction) PaymentStatus() PaymentStatus {
	return DerivePaymentStatus(t.TotalAmount, t.PaidAmount)
}

// Consumptions flattens the consumptions of every line.
func (t *Transaction) Consumptions() []*BatchConsumption {
	var out []*BatchConsumption
	for _, l := range t.Lines {
		out = append(out, l.Consumptions...)
	}
	return out
}

// AccountIDs lists the distinct cash/bank accounts the transaction names.
func (t *Transaction) AccountIDs() []string {
	return distinct(t.SourceAccountID, t.DestinationAccountID)
}

// CounterpartyIDs lists the distinct counterparties the transaction names.
func (t *Transaction) CounterpartyIDs() []string {
	return distinct(t.AccountPayableID, t.AccountReceivableID)
}

// ProductIDs lists the distinct products across lines.
func (t *Transaction) ProductIDs() []string {
	seen := make(map[string]bool, len(t.Lines))
	ids := make([]string, 0, len(t.Lines))
	for _, l := range t.Lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}

func distinct(ptrs ...*string) []string {
	var ids []string
	for _, p := range ptrs {
		if p == nil || *p == "" {
			continue
		}
		dup := false
		for _, id := range ids {
			if id == *p {
				dup = true
				break
			}
		}
		if !dup {
			ids = append(ids, *p)
		}
	}
	return ids
}
