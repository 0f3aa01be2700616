package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/infrastructure/postgres/generated"
	"github.com/iho/costledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository. Lines and
// consumptions are written and loaded together with their transaction.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// Create inserts the transaction, then its lines and consumptions in order.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	err := queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:                   t.ID,
		Type:                 string(t.Type),
		SourceAccountID:      stringPtrToText(t.SourceAccountID),
		DestinationAccountID: stringPtrToText(t.DestinationAccountID),
		AccountPayableID:     stringPtrToText(t.AccountPayableID),
		AccountReceivableID:  stringPtrToText(t.AccountReceivableID),
		ReferenceID:          stringPtrToText(t.ReferenceID),
		TotalAmount:          decimalToNumeric(t.TotalAmount),
		PaidAmount:           decimalToNumeric(t.PaidAmount),
		RemainingPayment:     decimalToNumeric(t.RemainingPayment),
		ProfitLoss:           decimalPtrToNumeric(t.ProfitLoss),
		Date:                 timeToPgTimestamptz(t.Date),
		Note:                 t.Note,
		CreatedAt:            timeToPgTimestamptz(t.CreatedAt),
		UpdatedAt:            timeToPgTimestamptz(t.UpdatedAt),
	})
	if err != nil {
		return err
	}

	for i, l := range t.Lines {
		err := queries.CreateTransactionLine(ctx, generated.CreateTransactionLineParams{
			ID:              l.ID,
			TransactionID:   t.ID,
			Position:        int32(i),
			ProductID:       l.ProductID,
			Quantity:        decimalToNumeric(l.Quantity),
			UnitPrice:       decimalToNumeric(l.UnitPrice),
			DiscountPerUnit: decimalToNumeric(l.DiscountPerUnit),
			TotalAmount:     decimalToNumeric(l.TotalAmount),
			BatchID:         stringPtrToText(l.BatchID),
			ExpiresAt:       timePtrToPgTimestamptz(l.ExpiresAt),
			LineType:        string(l.Type),
		})
		if err != nil {
			return err
		}

		for j, c := range l.Consumptions {
			err := queries.CreateBatchConsumption(ctx, generated.CreateBatchConsumptionParams{
				ID:                c.ID,
				TransactionLineID: l.ID,
				Position:          int32(j),
				BatchID:           c.BatchID,
				QuantitySold:      decimalToNumeric(c.QuantitySold),
				PurchasePriceUsed: decimalToNumeric(c.PurchasePriceUsed),
				SalePricePerUnit:  decimalToNumeric(c.SalePricePerUnit),
				CogsAmount:        decimalToNumeric(c.COGSAmount),
				ProfitAmount:      decimalToNumeric(c.ProfitAmount),
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// GetByID retrieves a transaction with its lines.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return r.hydrateOne(ctx, r.queries, row)
}

// GetByIDForUpdate locks and retrieves a transaction with its lines.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	row, err := queries.GetTransactionByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return r.hydrateOne(ctx, queries, row)
}

// Delete removes a transaction. Lines and consumptions cascade.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	n, err := queries.DeleteTransaction(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// ListByReference returns transactions whose reference is referenceID.
func (r *TransactionRepository) ListByReference(ctx context.Context, tx usecase.Transaction, referenceID string) ([]*domain.Transaction, error) {
	queries := generated.New(tx.(*Tx).PgxTx())

	rows, err := queries.ListTransactionsByReference(ctx, stringToText(referenceID))
	if err != nil {
		return nil, err
	}

	return r.hydrate(ctx, queries, rows)
}

// List returns transactions matching filter, newest first.
func (r *TransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, error) {
	l, o := page(filter.Limit, filter.Offset)

	rows, err := r.queries.ListTransactions(ctx, generated.ListTransactionsParams{
		Type:           stringToText(string(filter.Type)),
		AccountID:      stringToText(filter.AccountID),
		CounterpartyID: stringToText(filter.CounterpartyID),
		DateFrom:       timePtrToPgTimestamptz(filter.From),
		DateTo:         timePtrToPgTimestamptz(filter.To),
		Limit:          l,
		Offset:         o,
	})
	if err != nil {
		return nil, err
	}

	return r.hydrate(ctx, r.queries, rows)
}

func (r *TransactionRepository) hydrateOne(ctx context.Context, queries *generated.Queries, row generated.Transaction) (*domain.Transaction, error) {
	ts, err := r.hydrate(ctx, queries, []generated.Transaction{row})
	if err != nil {
		return nil, err
	}
	return ts[0], nil
}

// hydrate loads lines and consumptions for rows with two queries total.
func (r *TransactionRepository) hydrate(ctx context.Context, queries *generated.Queries, rows []generated.Transaction) ([]*domain.Transaction, error) {
	out := make([]*domain.Transaction, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	byID := make(map[string]*domain.Transaction, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		t := rowToTransaction(row)
		out = append(out, t)
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	lineRows, err := queries.ListTransactionLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(lineRows) == 0 {
		return out, nil
	}

	lines := make(map[string]*domain.TransactionLine, len(lineRows))
	lineIDs := make([]string, 0, len(lineRows))
	for _, lr := range lineRows {
		l := rowToLine(lr)
		lines[l.ID] = l
		lineIDs = append(lineIDs, l.ID)
		if t, ok := byID[lr.TransactionID]; ok {
			t.Lines = append(t.Lines, l)
		}
	}

	consumptionRows, err := queries.ListBatchConsumptions(ctx, lineIDs)
	if err != nil {
		return nil, err
	}
	for _, cr := range consumptionRows {
		if l, ok := lines[cr.TransactionLineID]; ok {
			l.Consumptions = append(l.Consumptions, rowToConsumption(cr))
		}
	}

	return out, nil
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:                   row.ID,
		Type:                 domain.TransactionType(row.Type),
		SourceAccountID:      textToStringPtr(row.SourceAccountID),
		DestinationAccountID: textToStringPtr(row.DestinationAccountID),
		AccountPayableID:     textToStringPtr(row.AccountPayableID),
		AccountReceivableID:  textToStringPtr(row.AccountReceivableID),
		ReferenceID:          textToStringPtr(row.ReferenceID),
		TotalAmount:          numericToDecimal(row.TotalAmount),
		PaidAmount:           numericToDecimal(row.PaidAmount),
		RemainingPayment:     numericToDecimal(row.RemainingPayment),
		ProfitLoss:           numericToDecimalPtr(row.ProfitLoss),
		Date:                 row.Date.Time,
		Note:                 row.Note,
		CreatedAt:            row.CreatedAt.Time,
		UpdatedAt:            row.UpdatedAt.Time,
	}
}

func rowToLine(row generated.TransactionLine) *domain.TransactionLine {
	return &domain.TransactionLine{
		ID:              row.ID,
		TransactionID:   row.TransactionID,
		ProductID:       row.ProductID,
		Quantity:        numericToDecimal(row.Quantity),
		UnitPrice:       numericToDecimal(row.UnitPrice),
		DiscountPerUnit: numericToDecimal(row.DiscountPerUnit),
		TotalAmount:     numericToDecimal(row.TotalAmount),
		BatchID:         textToStringPtr(row.BatchID),
		ExpiresAt:       pgTimestamptzToTimePtr(row.ExpiresAt),
		Type:            domain.LineType(row.LineType),
	}
}

func rowToConsumption(row generated.BatchConsumption) *domain.BatchConsumption {
	return &domain.BatchConsumption{
		ID:                row.ID,
		TransactionLineID: row.TransactionLineID,
		BatchID:           row.BatchID,
		QuantitySold:      numericToDecimal(row.QuantitySold),
		PurchasePriceUsed: numericToDecimal(row.PurchasePriceUsed),
		SalePricePerUnit:  numericToDecimal(row.SalePricePerUnit),
		COGSAmount:        numericToDecimal(row.CogsAmount),
		ProfitAmount:      numericToDecimal(row.ProfitAmount),
	}
}

