package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
)

// StatementUseCase builds payable/receivable statements. Statuses are
// derived from amounts on every read.
type StatementUseCase struct {
	partyRepo CounterpartyRepository
	txRepo    TransactionRepository
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(partyRepo CounterpartyRepository, txRepo TransactionRepository) *StatementUseCase {
	return &StatementUseCase{
		partyRepo: partyRepo,
		txRepo:    txRepo,
	}
}

// StatementLine is one transaction on a counterparty statement.
type StatementLine struct {
	TransactionID string
	Type          domain.TransactionType
	Date          time.Time
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	Remaining     decimal.Decimal
	Status        domain.PaymentStatus
}

// Statement summarizes a counterparty's transactions. Lines hold one page;
// the totals and TransactionCount cover every transaction.
type Statement struct {
	Counterparty     *domain.Counterparty
	Lines            []StatementLine
	TransactionCount int
	TotalAmount      decimal.Decimal
	TotalPaid        decimal.Decimal
	// Outstanding sums the remaining amount of pending and partially paid transactions.
	Outstanding decimal.Decimal
}

// GetStatement lists one page of the counterparty's transactions with
// derived statuses.
func (uc *StatementUseCase) GetStatement(ctx context.Context, counterpartyID string, limit, offset int) (*Statement, error) {
	party, err := uc.partyRepo.GetByID(ctx, counterpartyID)
	if err != nil {
		return nil, err
	}

	txs, err := uc.listAll(ctx, counterpartyID)
	if err != nil {
		return nil, err
	}

	st := &Statement{
		Counterparty:     party,
		TransactionCount: len(txs),
		TotalAmount:      decimal.Zero,
		TotalPaid:        decimal.Zero,
		Outstanding:      decimal.Zero,
	}

	for _, t := range txs {
		st.TotalAmount = st.TotalAmount.Add(t.TotalAmount)
		st.TotalPaid = st.TotalPaid.Add(t.PaidAmount)
		if t.PaymentStatus() != domain.PaymentPaid {
			st.Outstanding = st.Outstanding.Add(t.RemainingPayment)
		}
	}

	limit, offset = clampPage(limit, offset)
	page := txs[min(offset, len(txs)):min(offset+limit, len(txs))]

	st.Lines = make([]StatementLine, 0, len(page))
	for _, t := range page {
		st.Lines = append(st.Lines, StatementLine{
			TransactionID: t.ID,
			Type:          t.Type,
			Date:          t.Date,
			TotalAmount:   t.TotalAmount,
			PaidAmount:    t.PaidAmount,
			Remaining:     t.RemainingPayment,
			Status:        t.PaymentStatus(),
		})
	}

	return st, nil
}

func (uc *StatementUseCase) listAll(ctx context.Context, counterpartyID string) ([]*domain.Transaction, error) {
	var all []*domain.Transaction
	for {
		txs, err := uc.txRepo.List(ctx, TransactionFilter{
			CounterpartyID: counterpartyID,
			Limit:          MaxPageSize,
			Offset:         len(all),
		})
		if err != nil {
			return nil, err
		}
		all = append(all, txs...)
		if len(txs) < MaxPageSize {
			return all, nil
		}
	}
}
