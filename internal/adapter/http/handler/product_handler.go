package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/costledger/internal/adapter/http/dto"
	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

// ProductService defines the behavior needed by ProductHandler.
type ProductService interface {
	CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, limit, offset int) ([]*domain.Product, error)
	GetBatchesForProduct(ctx context.Context, productID string) ([]*domain.Batch, error)
	ExpireBatches(ctx context.Context, asOf time.Time) (int, error)
}

// ProductHandler handles product and batch requests.
type ProductHandler struct {
	productUC ProductService
	now       func() time.Time
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productUC ProductService) *ProductHandler {
	return &ProductHandler{productUC: productUC, now: time.Now}
}

// Create creates a new product with zero stock.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	product, err := h.productUC.CreateProduct(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create product", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ProductFromDomain(product))
}

// Get retrieves a product by ID.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productUC.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get product", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductFromDomain(product))
}

// List lists products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", usecase.DefaultPageSize)
	offset := parseIntQuery(r, "offset", 0)

	products, err := h.productUC.ListProducts(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, "failed to list products", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListProductsResponse{
		Products: dto.ProductsFromDomain(products),
		Total:    int64(len(products)),
	})
}

// Batches lists a product's batches in FIFO order.
func (h *ProductHandler) Batches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.productUC.GetBatchesForProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to list batches", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListBatchesResponse{
		Batches: dto.BatchesFromDomain(batches),
		Total:   int64(len(batches)),
	})
}

// ExpireBatches marks active batches past their expiry as expired.
func (h *ProductHandler) ExpireBatches(w http.ResponseWriter, r *http.Request) {
	var req dto.ExpireBatchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asOf := h.now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	n, err := h.productUC.ExpireBatches(r.Context(), asOf)
	if err != nil {
		writeDomainError(w, "failed to expire batches", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpireBatchesResponse{Expired: n})
}
