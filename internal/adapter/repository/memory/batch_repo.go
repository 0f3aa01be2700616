package memory

import (
	"context"
	"time"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

// BatchRepository implements usecase.BatchRepository.
type BatchRepository struct {
	store *Store
}

// Create stores a batch and assigns the next insertion sequence.
func (r *BatchRepository) Create(ctx context.Context, tx usecase.Transaction, batch *domain.Batch) error {
	st, err := workState(tx)
	if err != nil {
		return err
	}
	if _, ok := st.batches[batch.ID]; ok {
		return errDuplicateKey
	}

	st.batchSeq++
	batch.Seq = st.batchSeq
	st.batches[batch.ID] = copyBatch(batch)
	return nil
}

// ListByProduct returns the product's batches in FIFO order.
func (r *BatchRepository) ListByProduct(ctx context.Context, productID string) ([]*domain.Batch, error) {
	var batches []*domain.Batch
	err := r.store.read(func(st *state) error {
		batches = productBatches(st, productID)
		return nil
	})
	return batches, err
}

// ListByProductForUpdate returns the product's batches in FIFO order.
func (r *BatchRepository) ListByProductForUpdate(ctx context.Context, tx usecase.Transaction, productID string) ([]*domain.Batch, error) {
	st, err := workState(tx)
	if err != nil {
		return nil, err
	}
	return productBatches(st, productID), nil
}

// ListExpiring returns unexpired batches whose expiry is before asOf.
func (r *BatchRepository) ListExpiring(ctx context.Context, asOf time.Time) ([]*domain.Batch, error) {
	var batches []*domain.Batch
	err := r.store.read(func(st *state) error {
		for _, b := range st.batches {
			if b.Status != domain.BatchStatusExpired && b.ExpiresAt != nil && b.ExpiresAt.Before(asOf) {
				batches = append(batches, copyBatch(b))
			}
		}
		domain.SortFIFO(batches)
		return nil
	})
	return batches, err
}

// Update overwrites a batch's mutable fields.
func (r *BatchRepository) Update(ctx context.Context, tx usecase.Transaction, batch *domain.Batch) error {
	st, err := workState(tx)
	if err != nil {
		return err
	}

	b, ok := st.batches[batch.ID]
	if !ok {
		return domain.ErrBatchNotFound
	}

	b.AvailableQuantity = batch.AvailableQuantity
	b.Status = batch.Status
	b.UpdatedAt = batch.UpdatedAt
	return nil
}

// Delete removes a batch.
func (r *BatchRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	st, err := workState(tx)
	if err != nil {
		return err
	}
	if _, ok := st.batches[id]; !ok {
		return domain.ErrBatchNotFound
	}
	delete(st.batches, id)
	return nil
}

// CountConsumptions counts consumption rows that reference the batch.
func (r *BatchRepository) CountConsumptions(ctx context.Context, tx usecase.Transaction, batchID string) (int, error) {
	st, err := workState(tx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, t := range st.transactions {
		for _, l := range t.Lines {
			for _, c := range l.Consumptions {
				if c.BatchID == batchID {
					n++
				}
			}
		}
	}
	return n, nil
}

func productBatches(st *state, productID string) []*domain.Batch {
	var batches []*domain.Batch
	for _, b := range st.batches {
		if b.ProductID == productID {
			batches = append(batches, copyBatch(b))
		}
	}
	domain.SortFIFO(batches)
	return batches
}
