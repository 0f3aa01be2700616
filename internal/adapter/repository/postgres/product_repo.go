package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/infrastructure/postgres/generated"
	"github.com/iho/costledger/internal/usecase"
)

// ProductRepository implements usecase.ProductRepository.
type ProductRepository struct {
	queries *generated.Queries
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db generated.DBTX) *ProductRepository {
	return &ProductRepository{queries: generated.New(db)}
}

// Create creates a product.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.queries.CreateProduct(ctx, generated.CreateProductParams{
		ID:           product.ID,
		Name:         product.Name,
		Unit:         product.Unit,
		Quantity:     decimalToNumeric(product.Quantity),
		CurrentPrice: decimalToNumeric(product.CurrentPrice),
		Version:      product.Version,
		CreatedAt:    timeToPgTimestamptz(product.CreatedAt),
		UpdatedAt:    timeToPgTimestamptz(product.UpdatedAt),
	})
}

// GetByID retrieves a product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row, err := r.queries.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}

		return nil, err
	}

	return rowToProduct(row), nil
}

// GetByIDsForUpdate locks the products in id order.
func (r *ProductRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Product, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	rows, err := queries.GetProductsByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, rowToProduct(row))
	}

	return products, nil
}

// UpdateStock writes the derived quantity and last purchase price.
func (r *ProductRepository) UpdateStock(
	ctx context.Context,
	tx usecase.Transaction,
	id string,
	quantity, currentPrice decimal.Decimal,
	updatedAt time.Time,
) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	n, err := queries.UpdateProductStock(ctx, generated.UpdateProductStockParams{
		ID:           id,
		Quantity:     decimalToNumeric(quantity),
		CurrentPrice: decimalToNumeric(currentPrice),
		UpdatedAt:    timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

// List lists products by name.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	l, o := page(limit, offset)

	rows, err := r.queries.ListProducts(ctx, generated.ListProductsParams{Limit: l, Offset: o})
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, rowToProduct(row))
	}

	return products, nil
}

func rowToProduct(row generated.Product) *domain.Product {
	return &domain.Product{
		ID:           row.ID,
		Name:         row.Name,
		Unit:         row.Unit,
		Quantity:     numericToDecimal(row.Quantity),
		CurrentPrice: numericToDecimal(row.CurrentPrice),
		Version:      row.Version,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}
