package handler

import (
	"context"
	"net/http"

	"github.com/iho/costledger/internal/adapter/http/dto"
	"github.com/iho/costledger/internal/usecase"
)

// Reconciler runs the ledger and inventory consistency checks.
type Reconciler interface {
	Reconcile(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// LedgerHandler exposes ledger-wide checks.
type LedgerHandler struct {
	reconciler Reconciler
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(reconciler Reconciler) *LedgerHandler {
	return &LedgerHandler{reconciler: reconciler}
}

// Reconcile replays balance entries and batch consumptions against stored
// balances and stock. An inconsistent ledger still answers 200; the report
// carries the details.
func (h *LedgerHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciler.Reconcile(r.Context())
	if err != nil {
		writeDomainError(w, "failed to reconcile", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(report))
}
