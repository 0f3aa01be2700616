package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidName    = fmt.Errorf("%w: invalid name", ErrValidation)
	ErrAmountTooLarge = fmt.Errorf("%w: amount exceeds maximum allowed", ErrValidation)
)

const (
	MaxNameLength        = 255
	MaxNoteLength        = 2000
	MaxTransactionAmount = "1000000000000"
	MaxLinesPerTx        = 500

	// MaxInputScale is the number of decimal places kept for entered
	// quantities and prices. Derived amounts are stored at twice this.
	MaxInputScale = 4
)

var maxAmount = decimal.RequireFromString(MaxTransactionAmount)

func checkScale(field string, v decimal.Decimal) error {
	if !v.Equal(v.Truncate(MaxInputScale)) {
		return Validationf("%s %s has more than %d decimal places", field, v, MaxInputScale)
	}
	return nil
}

// ValidateName checks display names of accounts, counterparties and products.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// Normalize fills derived amounts before validation: line totals left at
// zero, the transaction total for line-priced types, paid for types that
// always settle in full, and remaining.
func (t *Transaction) Normalize() {
	effect, ok := t.Effect()
	if !ok {
		return
	}

	sum := decimal.Zero
	for _, l := range t.Lines {
		l.TransactionID = t.ID
		if l.Type == "" {
			l.Type = effect.LineType
		}
		if l.TotalAmount.IsZero() {
			l.TotalAmount = l.ExpectedTotal()
		}
		sum = sum.Add(l.TotalAmount)
	}

	if t.TotalAmount.IsZero() && effect.MatchLineTotals {
		t.TotalAmount = sum
	}
	if !effect.SplitsPayment {
		t.PaidAmount = t.TotalAmount
	}
	t.RemainingPayment = t.TotalAmount.Sub(t.PaidAmount)
}

// Validate checks the shape of the transaction against its effect table
// entry. It never looks at stored state.
func (t *Transaction) Validate() error {
	effect, ok := t.Effect()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTransactionType, t.Type)
	}

	if err := validateAmounts(effect, t); err != nil {
		return err
	}

	if err := validateParties(effect, t); err != nil {
		return err
	}

	if effect.RequiresReference && (t.ReferenceID == nil || *t.ReferenceID == "") {
		return Validationf("reference_id is required for %s", t.Type)
	}

	if utf8.RuneCountInString(t.Note) > MaxNoteLength {
		return Validationf("note exceeds %d characters", MaxNoteLength)
	}

	return validateLines(effect, t)
}

func validateAmounts(effect Effect, t *Transaction) error {
	if effect.AllowsNegativeTotal {
		if t.TotalAmount.IsZero() {
			return fmt.Errorf("%w: total_amount must be non-zero for %s", ErrValidation, t.Type)
		}
	} else if !t.TotalAmount.IsPositive() {
		return ErrInvalidAmount
	}

	if t.TotalAmount.Abs().GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxTransactionAmount)
	}

	if !effect.MatchLineTotals {
		if err := checkScale("total_amount", t.TotalAmount); err != nil {
			return err
		}
	}
	if err := checkScale("paid_amount", t.PaidAmount); err != nil {
		return err
	}

	if effect.SplitsPayment && t.PaidAmount.IsNegative() {
		return Validationf("paid_amount must not be negative")
	}

	if !effect.SplitsPayment && !t.PaidAmount.Equal(t.TotalAmount) {
		return Validationf("paid_amount must equal total_amount for %s", t.Type)
	}

	if !t.RemainingPayment.Equal(t.TotalAmount.Sub(t.PaidAmount)) {
		return Validationf("remaining_payment must equal total_amount - paid_amount")
	}

	return nil
}

func validateParties(effect Effect, t *Transaction) error {
	checks := []struct {
		field string
		id    *string
		used  bool
		moves bool
	}{
		{"source_account_id", t.SourceAccountID, effect.Source.Sign != 0, !effect.Source.Delta(t).IsZero()},
		{"destination_account_id", t.DestinationAccountID, effect.Destination.Sign != 0, !effect.Destination.Delta(t).IsZero()},
		{
			"account_payable_id", t.AccountPayableID,
			effect.Counterparty.Kind == CounterpartyPayable,
			effect.Counterparty.Kind == CounterpartyPayable && !effect.Counterparty.Delta(t).IsZero(),
		},
		{
			"account_receivable_id", t.AccountReceivableID,
			effect.Counterparty.Kind == CounterpartyReceivable,
			effect.Counterparty.Kind == CounterpartyReceivable && !effect.Counterparty.Delta(t).IsZero(),
		},
	}

	for _, c := range checks {
		present := c.id != nil && *c.id != ""
		if present && !c.used {
			return Validationf("%s is not used by %s", c.field, t.Type)
		}
		if !present && c.moves {
			return Validationf("%s is required for %s", c.field, t.Type)
		}
	}

	if t.SourceAccountID != nil && t.DestinationAccountID != nil &&
		*t.SourceAccountID != "" && *t.SourceAccountID == *t.DestinationAccountID {
		return ErrSameAccount
	}

	return nil
}

func validateLines(effect Effect, t *Transaction) error {
	if len(t.Lines) == 0 {
		if effect.LinesRequired {
			return Validationf("at least one line is required for %s", t.Type)
		}
		return nil
	}

	if !effect.UsesLines() {
		return Validationf("%s does not take product lines", t.Type)
	}

	if len(t.Lines) > MaxLinesPerTx {
		return Validationf("at most %d lines per transaction", MaxLinesPerTx)
	}

	sum := decimal.Zero
	for i, l := range t.Lines {
		if l.ProductID == "" {
			return Validationf("line %d: product_id is required", i)
		}
		if !l.Quantity.IsPositive() {
			return fmt.Errorf("line %d: %w", i, ErrInvalidQuantity)
		}
		for _, f := range []struct {
			name string
			v    decimal.Decimal
		}{{"quantity", l.Quantity}, {"unit_price", l.UnitPrice}, {"discount_per_unit", l.DiscountPerUnit}} {
			if err := checkScale(fmt.Sprintf("line %d: %s", i, f.name), f.v); err != nil {
				return err
			}
		}
		if l.UnitPrice.IsNegative() {
			return Validationf("line %d: unit_price must not be negative", i)
		}
		if l.DiscountPerUnit.IsNegative() || l.DiscountPerUnit.GreaterThan(l.UnitPrice) {
			return Validationf("line %d: discount_per_unit must be between 0 and unit_price", i)
		}
		if !l.TotalAmount.Equal(l.ExpectedTotal()) {
			return Validationf("line %d: total_amount %s does not equal quantity x net price %s",
				i, l.TotalAmount, l.ExpectedTotal())
		}
		if l.BatchID != nil && effect.Inventory != InventoryReturnToVendor {
			return Validationf("line %d: batch_id is only accepted on %s", i, TxPurchaseReturn)
		}
		if l.ExpiresAt != nil && effect.Inventory != InventoryRecord {
			return Validationf("line %d: expires_at is only accepted on %s", i, TxPurchase)
		}
		sum = sum.Add(l.TotalAmount)
	}

	if effect.MatchLineTotals && !sum.Equal(t.TotalAmount) {
		return Validationf("line totals %s do not match total_amount %s", sum, t.TotalAmount)
	}

	return nil
}
