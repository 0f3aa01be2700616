package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/costledger/internal/adapter/http/dto"
	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

// CounterpartyService defines the behavior needed by CounterpartyHandler.
type CounterpartyService interface {
	CreateCounterparty(ctx context.Context, input usecase.CreateCounterpartyInput) (*domain.Counterparty, error)
	GetCounterparty(ctx context.Context, id string) (*domain.Counterparty, error)
	ListCounterparties(ctx context.Context, kind domain.CounterpartyKind, limit, offset int) ([]*domain.Counterparty, error)
}

// StatementService builds counterparty statements.
type StatementService interface {
	GetStatement(ctx context.Context, counterpartyID string, limit, offset int) (*usecase.Statement, error)
}

// CounterpartyHandler handles payable and receivable requests.
type CounterpartyHandler struct {
	partyUC     CounterpartyService
	statementUC StatementService
}

// NewCounterpartyHandler creates a new CounterpartyHandler.
func NewCounterpartyHandler(partyUC CounterpartyService, statementUC StatementService) *CounterpartyHandler {
	return &CounterpartyHandler{partyUC: partyUC, statementUC: statementUC}
}

// Create creates a new counterparty.
func (h *CounterpartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCounterpartyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	party, err := h.partyUC.CreateCounterparty(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create counterparty", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CounterpartyFromDomain(party))
}

// Get retrieves a counterparty by ID.
func (h *CounterpartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	party, err := h.partyUC.GetCounterparty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get counterparty", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CounterpartyFromDomain(party))
}

// List lists counterparties, optionally filtered by ?kind=.
func (h *CounterpartyHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := domain.CounterpartyKind(r.URL.Query().Get("kind"))
	limit := parseIntQuery(r, "limit", usecase.DefaultPageSize)
	offset := parseIntQuery(r, "offset", 0)

	parties, err := h.partyUC.ListCounterparties(r.Context(), kind, limit, offset)
	if err != nil {
		writeDomainError(w, "failed to list counterparties", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListCounterpartiesResponse{
		Counterparties: dto.CounterpartiesFromDomain(parties),
		Total:          int64(len(parties)),
	})
}

// Statement returns the counterparty's transactions with payment statuses.
func (h *CounterpartyHandler) Statement(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", usecase.DefaultPageSize)
	offset := parseIntQuery(r, "offset", 0)

	st, err := h.statementUC.GetStatement(r.Context(), chi.URLParam(r, "id"), limit, offset)
	if err != nil {
		writeDomainError(w, "failed to build statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromUseCase(st))
}
