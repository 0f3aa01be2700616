package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/costledger/internal/adapter/http/dto"
	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CreateTransaction(ctx context.Context, input usecase.TransactionInput) (*usecase.TransactionResult, error)
	UpdateTransaction(ctx context.Context, id string, input usecase.TransactionInput) (*usecase.TransactionResult, error)
	DeleteTransaction(ctx context.Context, id string) error
	GetTransaction(ctx context.Context, id string) (*usecase.TransactionResult, error)
	ListTransactions(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error)
}

// TransactionHandler handles transaction requests.
type TransactionHandler struct {
	txUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txUC TransactionService) *TransactionHandler {
	return &TransactionHandler{txUC: txUC}
}

// Create records a transaction and applies all of its effects.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.txUC.CreateTransaction(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionResultToResponse(result))
}

// Update reverses a transaction and reapplies it with new values.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.txUC.UpdateTransaction(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to update transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionResultToResponse(result))
}

// Delete reverses a transaction and removes it.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.txUC.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete transaction", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a transaction with its lines and consumptions.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.txUC.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionResultToResponse(result))
}

// List lists transactions, newest first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := parseTimeQuery(r, "from")
	if err != nil {
		writeDomainError(w, "invalid filter", err)
		return
	}
	to, err := parseTimeQuery(r, "to")
	if err != nil {
		writeDomainError(w, "invalid filter", err)
		return
	}

	filter := usecase.TransactionFilter{
		Type:           domain.TransactionType(q.Get("type")),
		AccountID:      q.Get("account_id"),
		CounterpartyID: q.Get("counterparty_id"),
		From:           from,
		To:             to,
		Limit:          parseIntQuery(r, "limit", usecase.DefaultPageSize),
		Offset:         parseIntQuery(r, "offset", 0),
	}

	txs, err := h.txUC.ListTransactions(r.Context(), filter)
	if err != nil {
		writeDomainError(w, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txs),
		Total:        int64(len(txs)),
	})
}
