package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/infrastructure/metrics"
)

// ProductUseCase handles products and read access to their batches.
type ProductUseCase struct {
	txManager   TransactionManager
	productRepo ProductRepository
	batchRepo   BatchRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	inventory   *InventoryStore
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(
	txManager TransactionManager,
	productRepo ProductRepository,
	batchRepo BatchRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		txManager:   txManager,
		productRepo: productRepo,
		batchRepo:   batchRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		inventory:   NewInventoryStore(batchRepo, productRepo, idGen),
		metrics:     m,
		logger:      logger,
	}
}

// CreateProductInput represents input for creating a product.
type CreateProductInput struct {
	Name string
	Unit string
}

// CreateProduct creates a product with no stock. Stock only arrives
// through purchases.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:           uc.idGen.Generate(),
		Name:         input.Name,
		Unit:         strings.TrimSpace(input.Unit),
		Quantity:     decimal.Zero,
		CurrentPrice: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// ListProducts lists products with pagination.
func (uc *ProductUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	limit, offset = clampPage(limit, offset)
	return uc.productRepo.List(ctx, limit, offset)
}

// GetBatchesForProduct returns every batch of a product in FIFO order,
// including exhausted and expired ones.
func (uc *ProductUseCase) GetBatchesForProduct(ctx context.Context, productID string) ([]*domain.Batch, error) {
	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	batches, err := uc.batchRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	domain.SortFIFO(batches)

	return batches, nil
}

// ExpireBatches marks batches whose expiry is before asOf as expired so
// they stop feeding allocations, and returns how many changed.
func (uc *ProductUseCase) ExpireBatches(ctx context.Context, asOf time.Time) (int, error) {
	candidates, err := uc.batchRepo.ListExpiring(ctx, asOf)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	seen := make(map[string]bool)
	var productIDs []string
	for _, b := range candidates {
		if !seen[b.ProductID] {
			seen[b.ProductID] = true
			productIDs = append(productIDs, b.ProductID)
		}
	}
	sort.Strings(productIDs)

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	products, err := uc.productRepo.GetByIDsForUpdate(txCtx, tx, productIDs)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	total := 0
	for _, p := range products {
		n, err := uc.inventory.Expire(txCtx, tx, p, asOf)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			continue
		}
		total += n

		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   p.ID,
			AggregateType: domain.AggregateTypeProduct,
			EventType:     domain.EventTypeBatchesExpired,
			Payload: map[string]any{
				"product_id": p.ID,
				"expired":    n,
				"on_hand":    p.Quantity.String(),
				"as_of":      asOf.UTC().Format(time.RFC3339),
			},
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return 0, err
	}

	if uc.metrics != nil {
		uc.metrics.BatchesExpired.Add(float64(total))
	}
	uc.logger.Info().Int("expired", total).Time("as_of", asOf).Msg("batches expired")

	return total, nil
}
