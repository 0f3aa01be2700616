package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/infrastructure/metrics"
)

// reconcilePageSize is how many holders are fetched per page while reconciling.
const reconcilePageSize = 500

// ReconciliationUseCase checks recorded balances against the entry log and
// batch quantities against consumption rows.
type ReconciliationUseCase struct {
	accountRepo AccountRepository
	partyRepo   CounterpartyRepository
	ledgerRepo  LedgerRepository
	metrics     *metrics.Metrics
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	accountRepo AccountRepository,
	partyRepo CounterpartyRepository,
	ledgerRepo LedgerRepository,
	m *metrics.Metrics,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		partyRepo:   partyRepo,
		ledgerRepo:  ledgerRepo,
		metrics:     m,
	}
}

// ReconciliationResult compares one holder's balance with its entries.
type ReconciliationResult struct {
	HolderID          string
	HolderKind        domain.HolderKind
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
}

// InventoryResult checks one product's stock.
//
// Conservation: available + consumed == original, where consumed already nets
// out restock rows. The product's recorded quantity must equal on-hand stock.
type InventoryResult struct {
	ProductID        string
	Original         decimal.Decimal
	Available        decimal.Decimal
	Consumed         decimal.Decimal
	OnHand           decimal.Decimal
	RecordedQuantity decimal.Decimal
	Conserved        bool
	QuantityInSync   bool
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalHolders      int
	ReconciledHolders int
	Discrepancies     []*ReconciliationResult
	Products          []*InventoryResult
	InventoryIssues   []*InventoryResult
	Consistent        bool
	CheckedAt         time.Time
}

// Reconcile runs every balance and inventory check.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context) (*ReconciliationReport, error) {
	totals, err := uc.ledgerRepo.EntryTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries: %w", err)
	}

	holders, err := uc.balances(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		Discrepancies:   make([]*ReconciliationResult, 0),
		InventoryIssues: make([]*InventoryResult, 0),
		CheckedAt:       time.Now().UTC(),
	}

	for _, h := range holders {
		calculated, ok := totals[h.HolderID]
		if !ok {
			calculated = decimal.Zero
		}
		h.CalculatedBalance = calculated
		h.Difference = h.RecordedBalance.Sub(calculated)
		h.IsReconciled = h.Difference.IsZero()

		report.TotalHolders++
		if h.IsReconciled {
			report.ReconciledHolders++
		} else {
			report.Discrepancies = append(report.Discrepancies, h)
		}
	}

	inventory, err := uc.ledgerRepo.InventoryTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum inventory: %w", err)
	}

	for _, it := range inventory {
		r := &InventoryResult{
			ProductID:        it.ProductID,
			Original:         it.Original,
			Available:        it.Available,
			Consumed:         it.Consumed,
			OnHand:           it.OnHand,
			RecordedQuantity: it.RecordedQuantity,
			Conserved:        it.Available.Add(it.Consumed).Equal(it.Original),
			QuantityInSync:   it.RecordedQuantity.Equal(it.OnHand),
		}
		report.Products = append(report.Products, r)
		if !r.Conserved || !r.QuantityInSync {
			report.InventoryIssues = append(report.InventoryIssues, r)
		}
	}

	report.Consistent = len(report.Discrepancies) == 0 && len(report.InventoryIssues) == 0

	if uc.metrics != nil {
		outcome := "consistent"
		if !report.Consistent {
			outcome = "inconsistent"
		}
		uc.metrics.ReconciliationRuns.WithLabelValues(outcome).Inc()
	}

	return report, nil
}

func (uc *ReconciliationUseCase) balances(ctx context.Context) ([]*ReconciliationResult, error) {
	var out []*ReconciliationResult

	for offset := 0; ; offset += reconcilePageSize {
		accounts, err := uc.accountRepo.List(ctx, reconcilePageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		for _, a := range accounts {
			out = append(out, &ReconciliationResult{
				HolderID:        a.ID,
				HolderKind:      domain.HolderAccount,
				RecordedBalance: a.Balance,
			})
		}
		if len(accounts) < reconcilePageSize {
			break
		}
	}

	for offset := 0; ; offset += reconcilePageSize {
		parties, err := uc.partyRepo.List(ctx, "", reconcilePageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to list counterparties: %w", err)
		}
		for _, p := range parties {
			out = append(out, &ReconciliationResult{
				HolderID:        p.ID,
				HolderKind:      domain.HolderKindFor(p.Kind),
				RecordedBalance: p.Balance,
			})
		}
		if len(parties) < reconcilePageSize {
			break
		}
	}

	return out, nil
}
