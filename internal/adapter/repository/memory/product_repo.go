package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

// ProductRepository implements usecase.ProductRepository.
type ProductRepository struct {
	store *Store
}

// Create stores a new product.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.products[product.ID]; ok {
			return errDuplicateKey
		}
		st.products[product.ID] = copyProduct(product)
		return nil
	})
}

// GetByID retrieves a product by ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var product *domain.Product
	err := r.store.read(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrProductNotFound
		}
		product = copyProduct(p)
		return nil
	})
	return product, err
}

// GetByIDsForUpdate returns the products that exist, sorted by id.
func (r *ProductRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Product, error) {
	st, err := workState(tx)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(ids))
	for _, id := range sortedIDs(ids) {
		if p, ok := st.products[id]; ok {
			products = append(products, copyProduct(p))
		}
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
	st, err := workState(tx)
	if err != nil {
		return err
	}

	p, ok := st.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}

	p.Quantity = quantity
	p.CurrentPrice = currentPrice
	p.Version++
	p.UpdatedAt = updatedAt
	return nil
}

// List returns products ordered by name.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.store.read(func(st *state) error {
		all := make([]*domain.Product, 0, len(st.products))
		for _, p := range st.products {
			all = append(all, p)
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].Name != all[j].Name {
				return all[i].Name < all[j].Name
			}
			return all[i].ID < all[j].ID
		})

		lo, hi := window(len(all), limit, offset)
		for _, p := range all[lo:hi] {
			products = append(products, copyProduct(p))
		}
		return nil
	})
	return products, err
}
