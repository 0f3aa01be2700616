package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stock item. Quantity is derived from its batches and
// CurrentPrice only records the last purchase price; costing always uses
// batch prices.
type Product struct {
	ID           string
	Name         string
	Unit         string
	Quantity     decimal.Decimal
	CurrentPrice decimal.Decimal
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
