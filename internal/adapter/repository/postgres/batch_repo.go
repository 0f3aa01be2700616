package postgres

import (
	"context"
	"time"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/infrastructure/postgres/generated"
	"github.com/iho/costledger/internal/usecase"
)

// BatchRepository implements usecase.BatchRepository.
type BatchRepository struct {
	queries *generated.Queries
}

// NewBatchRepository creates a new BatchRepository.
func NewBatchRepository(db generated.DBTX) *BatchRepository {
	return &BatchRepository{queries: generated.New(db)}
}

// Create inserts a batch and stores the sequence the database assigned.
func (r *BatchRepository) Create(ctx context.Context, tx usecase.Transaction, batch *domain.Batch) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	seq, err := queries.CreateBatch(ctx, generated.CreateBatchParams{
		ID:                batch.ID,
		ProductID:         batch.ProductID,
		TransactionID:     batch.TransactionID,
		OriginalQuantity:  decimalToNumeric(batch.OriginalQuantity),
		AvailableQuantity: decimalToNumeric(batch.AvailableQuantity),
		PurchasePrice:     decimalToNumeric(batch.PurchasePrice),
		PurchaseDate:      timeToPgTimestamptz(batch.PurchaseDate),
		ExpiresAt:         timePtrToPgTimestamptz(batch.ExpiresAt),
		Status:            string(batch.Status),
		CreatedAt:         timeToPgTimestamptz(batch.CreatedAt),
		UpdatedAt:         timeToPgTimestamptz(batch.UpdatedAt),
	})
	if err != nil {
		return err
	}

	batch.Seq = seq
	return nil
}

// ListByProduct returns the product's batches in FIFO order.
func (r *BatchRepository) ListByProduct(ctx context.Context, productID string) ([]*domain.Batch, error) {
	rows, err := r.queries.ListBatchesByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return rowsToBatches(rows), nil
}

// ListByProductForUpdate locks the product's batches in FIFO order.
func (r *BatchRepository) ListByProductForUpdate(ctx context.Context, tx usecase.Transaction, productID string) ([]*domain.Batch, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	rows, err := queries.ListBatchesByProductForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}

	return rowsToBatches(rows), nil
}

// ListExpiring returns unexpired batches whose expiry is before asOf.
func (r *BatchRepository) ListExpiring(ctx context.Context, asOf time.Time) ([]*domain.Batch, error) {
	rows, err := r.queries.ListExpiringBatches(ctx, timeToPgTimestamptz(asOf))
	if err != nil {
		return nil, err
	}

	return rowsToBatches(rows), nil
}

// Update writes a batch's mutable fields.
func (r *BatchRepository) Update(ctx context.Context, tx usecase.Transaction, batch *domain.Batch) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	n, err := queries.UpdateBatch(ctx, generated.UpdateBatchParams{
		ID:                batch.ID,
		AvailableQuantity: decimalToNumeric(batch.AvailableQuantity),
		Status:            string(batch.Status),
		UpdatedAt:         timeToPgTimestamptz(batch.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrBatchNotFound
	}

	return nil
}

// Delete removes a batch.
func (r *BatchRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	n, err := queries.DeleteBatch(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrBatchNotFound
	}

	return nil
}

// CountConsumptions counts consumption rows that reference the batch.
func (r *BatchRepository) CountConsumptions(ctx context.Context, tx usecase.Transaction, batchID string) (int, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	n, err := queries.CountBatchConsumptions(ctx, batchID)
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

func rowsToBatches(rows []generated.Batch) []*domain.Batch {
	batches := make([]*domain.Batch, 0, len(rows))
	for _, row := range rows {
		batches = append(batches, rowToBatch(row))
	}
	return batches
}

func rowToBatch(row generated.Batch) *domain.Batch {
	return &domain.Batch{
		ID:                row.ID,
		ProductID:         row.ProductID,
		TransactionID:     row.TransactionID,
		Seq:               row.Seq,
		OriginalQuantity:  numericToDecimal(row.OriginalQuantity),
		AvailableQuantity: numericToDecimal(row.AvailableQuantity),
		PurchasePrice:     numericToDecimal(row.PurchasePrice),
		PurchaseDate:      row.PurchaseDate.Time,
		ExpiresAt:         pgTimestamptzToTimePtr(row.ExpiresAt),
		Status:            domain.BatchStatus(row.Status),
		CreatedAt:         row.CreatedAt.Time,
		UpdatedAt:         row.UpdatedAt.Time,
	}
}
