package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus is the lifecycle state of a purchase batch.
type BatchStatus string

const (
	BatchStatusActive    BatchStatus = "active"
	BatchStatusExhausted BatchStatus = "exhausted"
	BatchStatusExpired   BatchStatus = "expired"
)

// Batch is one purchase lot of a product at a fixed unit cost.
type Batch struct {
	ID                string
	ProductID         string
	TransactionID     string
	Seq               int64
	OriginalQuantity  decimal.Decimal
	AvailableQuantity decimal.Decimal
	PurchasePrice     decimal.Decimal
	PurchaseDate      time.Time
	ExpiresAt         *time.Time
	Status            BatchStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsAllocatable reports whether the batch can feed a consumption dated at.
func (b *Batch) IsAllocatable(at time.Time) bool {
	if b.Status != BatchStatusActive || !b.AvailableQuantity.IsPositive() {
		return false
	}
	return b.ExpiresAt == nil || !b.ExpiresAt.Before(at)
}

// IsUntouched reports whether nothing has been taken from the batch.
func (b *Batch) IsUntouched() bool {
	return b.AvailableQuantity.Equal(b.OriginalQuantity)
}

// Consume takes quantity out of the batch. A batch that reaches zero
// becomes exhausted.
func (b *Batch) Consume(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	if quantity.GreaterThan(b.AvailableQuantity) {
		return ErrInsufficientInventory
	}
	b.AvailableQuantity = b.AvailableQuantity.Sub(quantity)
	if b.AvailableQuantity.IsZero() && b.Status == BatchStatusActive {
		b.Status = BatchStatusExhausted
	}
	return nil
}

// Restore puts quantity back. Exhausted batches become active again;
// expired batches stay expired.
func (b *Batch) Restore(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	restored := b.AvailableQuantity.Add(quantity)
	if restored.GreaterThan(b.OriginalQuantity) {
		return ErrBatchOverflow
	}
	b.AvailableQuantity = restored
	if b.Status == BatchStatusExhausted {
		b.Status = BatchStatusActive
	}
	return nil
}

// SortFIFO orders batches by purchase date, oldest first, breaking ties by
// insertion order.
func SortFIFO(batches []*Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		if !a.PurchaseDate.Equal(b.PurchaseDate) {
			return a.PurchaseDate.Before(b.PurchaseDate)
		}
		return a.Seq < b.Seq
	})
}

// Allocation is the planned take from a single batch.
type Allocation struct {
	Batch    *Batch
	Quantity decimal.Decimal
}

// PlanFIFO plans a greedy FIFO take of quantity from batches without
// mutating them. It fails with ErrInsufficientInventory when the allocatable
// total is short, so callers never apply a partial plan.
func PlanFIFO(batches []*Batch, quantity decimal.Decimal, at time.Time) ([]Allocation, error) {
	if !quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	ordered := make([]*Batch, 0, len(batches))
	for _, b := range batches {
		if b.IsAllocatable(at) {
			ordered = append(ordered, b)
		}
	}
	SortFIFO(ordered)

	available := decimal.Zero
	for _, b := range ordered {
		available = available.Add(b.AvailableQuantity)
	}
	if available.LessThan(quantity) {
		return nil, ErrInsufficientInventory
	}

	remaining := quantity
	plan := make([]Allocation, 0, 2)
	for _, b := range ordered {
		if remaining.IsZero() {
			break
		}
		take := decimal.Min(remaining, b.AvailableQuantity)
		plan = append(plan, Allocation{Batch: b, Quantity: take})
		remaining = remaining.Sub(take)
	}

	return plan, nil
}

// OnHand sums the available quantity of batches that still count as stock.
func OnHand(batches []*Batch) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		if b.Status == BatchStatusExpired {
			continue
		}
		total = total.Add(b.AvailableQuantity)
	}
	return total
}
