package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
)

// InventoryStore owns purchase batches. Every method runs inside the
// caller's unit of work and expects the product row to be locked already;
// batches are then locked in FIFO order. Product on-hand quantity is
// rewritten after each mutation.
type InventoryStore struct {
	batchRepo   BatchRepository
	productRepo ProductRepository
	idGen       IDGenerator
}

// NewInventoryStore creates a new InventoryStore.
func NewInventoryStore(batchRepo BatchRepository, productRepo ProductRepository, idGen IDGenerator) *InventoryStore {
	return &InventoryStore{
		batchRepo:   batchRepo,
		productRepo: productRepo,
		idGen:       idGen,
	}
}

// RestockSource is what a sale took from one batch and has not had returned yet.
type RestockSource struct {
	BatchID       string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
}

// RecordPurchase creates a new batch for the line with available equal to
// original quantity, priced at the line's net unit price.
func (s *InventoryStore) RecordPurchase(
	ctx context.Context,
	tx Transaction,
	product *domain.Product,
	transactionID string,
	line *domain.TransactionLine,
	date time.Time,
	expiresAt *time.Time,
) (*domain.Batch, error) {
	now := time.Now().UTC()
	batch := &domain.Batch{
		ID:                s.idGen.Generate(),
		ProductID:         product.ID,
		TransactionID:     transactionID,
		OriginalQuantity:  line.Quantity,
		AvailableQuantity: line.Quantity,
		PurchasePrice:     line.NetUnitPrice(),
		PurchaseDate:      date,
		ExpiresAt:         expiresAt,
		Status:            domain.BatchStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.batchRepo.Create(ctx, tx, batch); err != nil {
		return nil, err
	}

	line.BatchID = &batch.ID
	product.CurrentPrice = batch.PurchasePrice

	return batch, s.sync(ctx, tx, product, now)
}

// Allocate consumes quantity from the product's batches in FIFO order and
// returns one consumption row per batch touched. Nothing is written when the
// allocatable total falls short.
func (s *InventoryStore) Allocate(
	ctx context.Context,
	tx Transaction,
	product *domain.Product,
	line *domain.TransactionLine,
	at time.Time,
) ([]*domain.BatchConsumption, error) {
	batches, err := s.batchRepo.ListByProductForUpdate(ctx, tx, product.ID)
	if err != nil {
		return nil, err
	}

	plan, err := domain.PlanFIFO(batches, line.Quantity, at)
	if err != nil {
		return nil, err
	}

	consumptions := make([]*domain.BatchConsumption, 0, len(plan))
	for _, a := range plan {
		c, err := s.consume(ctx, tx, a.Batch, a.Quantity, line)
		if err != nil {
			return nil, err
		}
		consumptions = append(consumptions, c)
	}

	if len(plan) > 0 {
		line.BatchID = &plan[0].Batch.ID
	}

	return consumptions, s.sync(ctx, tx, product, time.Now().UTC())
}

// ConsumeBatch takes the line quantity out of one named batch. Used when a
// purchase return names the lot going back to the vendor.
func (s *InventoryStore) ConsumeBatch(
	ctx context.Context,
	tx Transaction,
	product *domain.Product,
	batchID string,
	line *domain.TransactionLine,
) ([]*domain.BatchConsumption, error) {
	batches, err := s.batchRepo.ListByProductForUpdate(ctx, tx, product.ID)
	if err != nil {
		return nil, err
	}

	batch := findBatch(batches, batchID)
	if batch == nil {
		return nil, domain.ErrBatchNotFound
	}

	if batch.Status == domain.BatchStatusExpired {
		return nil, domain.Validationf("batch %s is expired", batchID)
	}

	c, err := s.consume(ctx, tx, batch, line.Quantity, line)
	if err != nil {
		return nil, err
	}

	return []*domain.BatchConsumption{c}, s.sync(ctx, tx, product, time.Now().UTC())
}

// Restock puts returned units back into the batches a sale drew from,
// latest batch first. The rows it returns carry negative quantities so
// that per-product conservation keeps holding.
func (s *InventoryStore) Restock(
	ctx context.Context,
	tx Transaction,
	product *domain.Product,
	line *domain.TransactionLine,
	sources []RestockSource,
) ([]*domain.BatchConsumption, error) {
	returnable := decimal.Zero
	for _, src := range sources {
		returnable = returnable.Add(src.Quantity)
	}
	if line.Quantity.GreaterThan(returnable) {
		return nil, domain.Validationf("return of %s exceeds %s still returnable for product %s",
			line.Quantity, returnable, product.ID)
	}

	batches, err := s.batchRepo.ListByProductForUpdate(ctx, tx, product.ID)
	if err != nil {
		return nil, err
	}

	remaining := line.Quantity
	net := line.NetUnitPrice()
	var rows []*domain.BatchConsumption

	for i := len(sources) - 1; i >= 0 && remaining.IsPositive(); i-- {
		src := sources[i]
		if !src.Quantity.IsPositive() {
			continue
		}

		batch := findBatch(batches, src.BatchID)
		if batch == nil {
			return nil, domain.ErrBatchNotFound
		}

		take := decimal.Min(remaining, src.Quantity)
		if err := batch.Restore(take); err != nil {
			return nil, err
		}
		batch.UpdatedAt = time.Now().UTC()
		if err := s.batchRepo.Update(ctx, tx, batch); err != nil {
			return nil, err
		}

		cogs := take.Mul(src.PurchasePrice).Neg()
		rows = append(rows, &domain.BatchConsumption{
			ID:                s.idGen.Generate(),
			TransactionLineID: line.ID,
			BatchID:           batch.ID,
			QuantitySold:      take.Neg(),
			PurchasePriceUsed: src.PurchasePrice,
			SalePricePerUnit:  net,
			COGSAmount:        cogs,
			ProfitAmount:      take.Mul(net).Neg().Sub(cogs),
		})
		remaining = remaining.Sub(take)
	}

	if len(rows) > 0 {
		line.BatchID = &rows[0].BatchID
	}

	return rows, s.sync(ctx, tx, product, time.Now().UTC())
}

// Release undoes consumption rows. Positive rows go back into their
// batches; negative restock rows are taken out again, which fails with
// ErrCannotReverseConsumedBatch once later sales have used those units.
func (s *InventoryStore) Release(
	ctx context.Context,
	tx Transaction,
	product *domain.Product,
	consumptions []*domain.BatchConsumption,
) error {
	if len(consumptions) == 0 {
		return nil
	}

	batches, err := s.batchRepo.ListByProductForUpdate(ctx, tx, product.ID)
	if err != nil {
		return err
	}

	for _, c := range consumptions {
		batch := findBatch(batches, c.BatchID)
		if batch == nil {
			return domain.ErrBatchNotFound
		}

		switch {
		case c.QuantitySold.IsPositive():
			err = batch.Restore(c.QuantitySold)
		case c.QuantitySold.IsNegative():
			err = batch.Consume(c.QuantitySold.Neg())
			if errors.Is(err, domain.ErrInsufficientInventory) {
				err = domain.ErrCannotReverseConsumedBatch
			}
		default:
			continue
		}
		if err != nil {
			return err
		}
		batch.UpdatedAt = time.Now().UTC()

		if err := s.batchRepo.Update(ctx, tx, batch); err != nil {
			return err
		}
	}

	return s.sync(ctx, tx, product, time.Now().UTC())
}

// RemovePurchase deletes the batches a purchase created. A batch that lost
// any quantity, or that any consumption row still points at, blocks the
// removal with ErrCannotReverseConsumedBatch.
func (s *InventoryStore) RemovePurchase(
	ctx context.Context,
	tx Transaction,
	product *domain.Product,
	transactionID string,
) error {
	batches, err := s.batchRepo.ListByProductForUpdate(ctx, tx, product.ID)
	if err != nil {
		return err
	}

	removed := false
	for _, b := range batches {
		if b.TransactionID != transactionID {
			continue
		}

		if !b.IsUntouched() {
			return domain.ErrCannotReverseConsumedBatch
		}

		n, err := s.batchRepo.CountConsumptions(ctx, tx, b.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrCannotReverseConsumedBatch
		}

		if err := s.batchRepo.Delete(ctx, tx, b.ID); err != nil {
			return err
		}
		removed = true
	}

	if removed {
		product.CurrentPrice = latestPrice(batches, transactionID)
	}

	return s.sync(ctx, tx, product, time.Now().UTC())
}

// latestPrice is the purchase price of the most recently recorded batch not
// created by skipTransactionID, or zero when none is left.
func latestPrice(batches []*domain.Batch, skipTransactionID string) decimal.Decimal {
	var latest *domain.Batch
	for _, b := range batches {
		if b.TransactionID == skipTransactionID {
			continue
		}
		if latest == nil || b.Seq > latest.Seq {
			latest = b
		}
	}
	if latest == nil {
		return decimal.Zero
	}
	return latest.PurchasePrice
}

// Expire marks the product's batches that expired before asOf and returns
// how many changed.
func (s *InventoryStore) Expire(ctx context.Context, tx Transaction, product *domain.Product, asOf time.Time) (int, error) {
	batches, err := s.batchRepo.ListByProductForUpdate(ctx, tx, product.ID)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, b := range batches {
		if b.Status == domain.BatchStatusExpired || b.ExpiresAt == nil || !b.ExpiresAt.Before(asOf) {
			continue
		}

		b.Status = domain.BatchStatusExpired
		b.UpdatedAt = time.Now().UTC()
		if err := s.batchRepo.Update(ctx, tx, b); err != nil {
			return 0, err
		}
		expired++
	}

	if expired == 0 {
		return 0, nil
	}

	return expired, s.sync(ctx, tx, product, time.Now().UTC())
}

func (s *InventoryStore) consume(
	ctx context.Context,
	tx Transaction,
	batch *domain.Batch,
	quantity decimal.Decimal,
	line *domain.TransactionLine,
) (*domain.BatchConsumption, error) {
	if err := batch.Consume(quantity); err != nil {
		return nil, err
	}
	batch.UpdatedAt = time.Now().UTC()

	if err := s.batchRepo.Update(ctx, tx, batch); err != nil {
		return nil, err
	}

	net := line.NetUnitPrice()
	cogs := quantity.Mul(batch.PurchasePrice)

	return &domain.BatchConsumption{
		ID:                s.idGen.Generate(),
		TransactionLineID: line.ID,
		BatchID:           batch.ID,
		QuantitySold:      quantity,
		PurchasePriceUsed: batch.PurchasePrice,
		SalePricePerUnit:  net,
		COGSAmount:        cogs,
		ProfitAmount:      quantity.Mul(net).Sub(cogs),
	}, nil
}

// sync rewrites the product's on-hand quantity from its batches.
func (s *InventoryStore) sync(ctx context.Context, tx Transaction, product *domain.Product, now time.Time) error {
	batches, err := s.batchRepo.ListByProductForUpdate(ctx, tx, product.ID)
	if err != nil {
		return err
	}

	product.Quantity = domain.OnHand(batches)
	product.UpdatedAt = now

	return s.productRepo.UpdateStock(ctx, tx, product.ID, product.Quantity, product.CurrentPrice, now)
}

func findBatch(batches []*domain.Batch, id string) *domain.Batch {
	for _, b := range batches {
		if b.ID == id {
			return b
		}
	}
	return nil
}
