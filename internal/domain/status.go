package domain

import "github.com/shopspring/decimal"

// PaymentStatus is the settlement state of a transaction.
type PaymentStatus string

const (
	PaymentPending        PaymentStatus = "pending"
	PaymentPartialPending PaymentStatus = "partial_pending"
	PaymentPaid           PaymentStatus = "paid"
)

// DerivePaymentStatus computes status from total and paid amounts. Totals
// below zero are judged on absolute values; paying more than the total
// counts as paid.
func DerivePaymentStatus(total, paid decimal.Decimal) PaymentStatus {
	if total.IsNegative() {
		total = total.Neg()
		paid = paid.Neg()
	}

	remaining := total.Sub(paid)
	switch {
	case remaining.IsZero():
		return PaymentPaid
	case paid.IsZero():
		return PaymentPending
	case paid.IsPositive() && paid.LessThan(total):
		return PaymentPartialPending
	case paid.GreaterThan(total):
		return PaymentPaid
	default:
		return PaymentPending
	}
}

// Remaining is total minus paid.
func Remaining(total, paid decimal.Decimal) decimal.Decimal {
	return total.Sub(paid)
}
