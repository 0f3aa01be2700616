package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Balance   string    `json:"balance"`
	Status    string    `json:"status"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		Balance:   a.Balance.String(),
		Status:    string(a.Status),
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// BalanceResponse carries a single holder balance.
type BalanceResponse struct {
	ID      string `json:"id"`
	Balance string `json:"balance"`
}

// CounterpartyResponse represents a payable or receivable.
type CounterpartyResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Balance   string    `json:"balance"`
	Status    string    `json:"status"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CounterpartyFromDomain converts a domain counterparty to response.
func CounterpartyFromDomain(c *domain.Counterparty) *CounterpartyResponse {
	return &CounterpartyResponse{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		Kind:      string(c.Kind),
		Balance:   c.Balance.String(),
		Status:    string(c.Status),
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CounterpartiesFromDomain converts domain counterparties to responses.
func CounterpartiesFromDomain(parties []*domain.Counterparty) []*CounterpartyResponse {
	result := make([]*CounterpartyResponse, len(parties))
	for i, c := range parties {
		result[i] = CounterpartyFromDomain(c)
	}
	return result
}

// ProductResponse represents a product and its stock.
type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit,omitempty"`
	Quantity     string    `json:"quantity"`
	CurrentPrice string    `json:"current_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductFromDomain converts a domain product to response.
func ProductFromDomain(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Unit:         p.Unit,
		Quantity:     p.Quantity.String(),
		CurrentPrice: p.CurrentPrice.String(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ProductsFromDomain converts domain products to responses.
func ProductsFromDomain(products []*domain.Product) []*ProductResponse {
	result := make([]*ProductResponse, len(products))
	for i, p := range products {
		result[i] = ProductFromDomain(p)
	}
	return result
}

// BatchResponse represents one purchase lot.
type BatchResponse struct {
	ID                string     `json:"id"`
	ProductID         string     `json:"product_id"`
	TransactionID     string     `json:"transaction_id"`
	OriginalQuantity  string     `json:"original_quantity"`
	AvailableQuantity string     `json:"available_quantity"`
	PurchasePrice     string     `json:"purchase_price"`
	PurchaseDate      time.Time  `json:"purchase_date"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	Status            string     `json:"status"`
}

// BatchesFromDomain converts domain batches to responses.
func BatchesFromDomain(batches []*domain.Batch) []*BatchResponse {
	result := make([]*BatchResponse, len(batches))
	for i, b := range batches {
		result[i] = &BatchResponse{
			ID:                b.ID,
			ProductID:         b.ProductID,
			TransactionID:     b.TransactionID,
			OriginalQuantity:  b.OriginalQuantity.String(),
			AvailableQuantity: b.AvailableQuantity.String(),
			PurchasePrice:     b.PurchasePrice.String(),
			PurchaseDate:      b.PurchaseDate,
			ExpiresAt:         b.ExpiresAt,
			Status:            string(b.Status),
		}
	}
	return result
}

// ExpireBatchesResponse reports how many batches were expired.
type ExpireBatchesResponse struct {
	Expired int `json:"expired"`
}

// ConsumptionResponse is one batch draw of a line.
type ConsumptionResponse struct {
	BatchID           string `json:"batch_id"`
	QuantitySold      string `json:"quantity_sold"`
	PurchasePriceUsed string `json:"purchase_price_used"`
	SalePricePerUnit  string `json:"sale_price_per_unit"`
	COGSAmount        string `json:"cogs_amount"`
	ProfitAmount      string `json:"profit_amount"`
}

// LineResponse is one product row of a transaction.
type LineResponse struct {
	ID              string                 `json:"id"`
	ProductID       string                 `json:"product_id"`
	Type            string                 `json:"type"`
	Quantity        string                 `json:"quantity"`
	UnitPrice       string                 `json:"unit_price"`
	DiscountPerUnit string                 `json:"discount_per_unit"`
	TotalAmount     string                 `json:"total_amount"`
	BatchID         *string                `json:"batch_id,omitempty"`
	ExpiresAt       *time.Time             `json:"expires_at,omitempty"`
	Consumptions    []*ConsumptionResponse `json:"consumptions,omitempty"`
}

// TransactionResponse represents a transaction with its lines.
type TransactionResponse struct {
	ID                   string          `json:"id"`
	Type                 string          `json:"type"`
	SourceAccountID      *string         `json:"source_account_id,omitempty"`
	DestinationAccountID *string         `json:"destination_account_id,omitempty"`
	AccountPayableID     *string         `json:"account_payable_id,omitempty"`
	AccountReceivableID  *string         `json:"account_receivable_id,omitempty"`
	ReferenceID          *string         `json:"reference_id,omitempty"`
	TotalAmount          string          `json:"total_amount"`
	PaidAmount           string          `json:"paid_amount"`
	RemainingPayment     string          `json:"remaining_payment"`
	PaymentStatus        string          `json:"payment_status"`
	ProfitLoss           *string         `json:"profit_loss,omitempty"`
	Date                 time.Time       `json:"date"`
	Note                 string          `json:"note,omitempty"`
	Lines                []*LineResponse `json:"lines,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:                   t.ID,
		Type:                 string(t.Type),
		SourceAccountID:      t.SourceAccountID,
		DestinationAccountID: t.DestinationAccountID,
		AccountPayableID:     t.AccountPayableID,
		AccountReceivableID:  t.AccountReceivableID,
		ReferenceID:          t.ReferenceID,
		TotalAmount:          t.TotalAmount.String(),
		PaidAmount:           t.PaidAmount.String(),
		RemainingPayment:     t.RemainingPayment.String(),
		PaymentStatus:        string(t.PaymentStatus()),
		ProfitLoss:           decimalPtrString(t.ProfitLoss),
		Date:                 t.Date,
		Note:                 t.Note,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}

	resp.Lines = make([]*LineResponse, len(t.Lines))
	for i, l := range t.Lines {
		line := &LineResponse{
			ID:              l.ID,
			ProductID:       l.ProductID,
			Type:            string(l.Type),
			Quantity:        l.Quantity.String(),
			UnitPrice:       l.UnitPrice.String(),
			DiscountPerUnit: l.DiscountPerUnit.String(),
			TotalAmount:     l.TotalAmount.String(),
			BatchID:         l.BatchID,
			ExpiresAt:       l.ExpiresAt,
		}
		for _, c := range l.Consumptions {
			line.Consumptions = append(line.Consumptions, &ConsumptionResponse{
				BatchID:           c.BatchID,
				QuantitySold:      c.QuantitySold.String(),
				PurchasePriceUsed: c.PurchasePriceUsed.String(),
				SalePricePerUnit:  c.SalePricePerUnit.String(),
				COGSAmount:        c.COGSAmount.String(),
				ProfitAmount:      c.ProfitAmount.String(),
			})
		}
		resp.Lines[i] = line
	}

	return resp
}

// TransactionResultToResponse converts a use case result to response.
func TransactionResultToResponse(r *usecase.TransactionResult) *TransactionResponse {
	return TransactionFromDomain(r.Transaction)
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// EntryResponse represents a balance entry in API responses.
type EntryResponse struct {
	ID              string    `json:"id"`
	TransactionID   string    `json:"transaction_id"`
	HolderID        string    `json:"holder_id"`
	HolderKind      string    `json:"holder_kind"`
	Amount          string    `json:"amount"`
	PreviousBalance string    `json:"previous_balance"`
	CurrentBalance  string    `json:"current_balance"`
	HolderVersion   int64     `json:"holder_version"`
	CreatedAt       time.Time `json:"created_at"`
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.BalanceEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = &EntryResponse{
			ID:              e.ID,
			TransactionID:   e.TransactionID,
			HolderID:        e.HolderID,
			HolderKind:      string(e.HolderKind),
			Amount:          e.Amount.String(),
			PreviousBalance: e.PreviousBalance.String(),
			CurrentBalance:  e.CurrentBalance.String(),
			HolderVersion:   e.HolderVersion,
			CreatedAt:       e.CreatedAt,
		}
	}
	return result
}

// StatementLineResponse is one row of a counterparty statement.
type StatementLineResponse struct {
	TransactionID string    `json:"transaction_id"`
	Type          string    `json:"type"`
	Date          time.Time `json:"date"`
	TotalAmount   string    `json:"total_amount"`
	PaidAmount    string    `json:"paid_amount"`
	Remaining     string    `json:"remaining"`
	Status        string    `json:"status"`
}

// StatementResponse summarizes a counterparty's transactions.
type StatementResponse struct {
	Counterparty *CounterpartyResponse    `json:"counterparty"`
	Lines            []*StatementLineResponse `json:"lines"`
	TransactionCount int                      `json:"transaction_count"`
	TotalAmount      string                   `json:"total_amount"`
	TotalPaid        string                   `json:"total_paid"`
	Outstanding      string                   `json:"outstanding"`
}

// StatementFromUseCase converts a statement to response.
func StatementFromUseCase(s *usecase.Statement) *StatementResponse {
	lines := make([]*StatementLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = &StatementLineResponse{
			TransactionID: l.TransactionID,
			Type:          string(l.Type),
			Date:          l.Date,
			TotalAmount:   l.TotalAmount.String(),
			PaidAmount:    l.PaidAmount.String(),
			Remaining:     l.Remaining.String(),
			Status:        string(l.Status),
		}
	}

	return &StatementResponse{
		Counterparty:     CounterpartyFromDomain(s.Counterparty),
		Lines:            lines,
		TransactionCount: s.TransactionCount,
		TotalAmount:      s.TotalAmount.String(),
		TotalPaid:        s.TotalPaid.String(),
		Outstanding:      s.Outstanding.String(),
	}
}

// DiscrepancyResponse is a holder whose balance disagrees with its entries.
type DiscrepancyResponse struct {
	HolderID          string `json:"holder_id"`
	HolderKind        string `json:"holder_kind"`
	RecordedBalance   string `json:"recorded_balance"`
	CalculatedBalance string `json:"calculated_balance"`
	Difference        string `json:"difference"`
}

// InventoryCheckResponse is the stock check for one product.
type InventoryCheckResponse struct {
	ProductID        string `json:"product_id"`
	Original         string `json:"original"`
	Available        string `json:"available"`
	Consumed         string `json:"consumed"`
	OnHand           string `json:"on_hand"`
	RecordedQuantity string `json:"recorded_quantity"`
	Conserved        bool   `json:"conserved"`
	QuantityInSync   bool   `json:"quantity_in_sync"`
}

// ReconciliationResponse is the full report.
type ReconciliationResponse struct {
	Consistent        bool                      `json:"consistent"`
	TotalHolders      int                       `json:"total_holders"`
	ReconciledHolders int                       `json:"reconciled_holders"`
	Discrepancies     []*DiscrepancyResponse    `json:"discrepancies"`
	InventoryIssues   []*InventoryCheckResponse `json:"inventory_issues"`
	ProductsChecked   int                       `json:"products_checked"`
	CheckedAt         time.Time                 `json:"checked_at"`
}

// ReconciliationFromUseCase converts a report to response.
func ReconciliationFromUseCase(r *usecase.ReconciliationReport) *ReconciliationResponse {
	resp := &ReconciliationResponse{
		Consistent:        r.Consistent,
		TotalHolders:      r.TotalHolders,
		ReconciledHolders: r.ReconciledHolders,
		Discrepancies:     make([]*DiscrepancyResponse, len(r.Discrepancies)),
		InventoryIssues:   make([]*InventoryCheckResponse, len(r.InventoryIssues)),
		ProductsChecked:   len(r.Products),
		CheckedAt:         r.CheckedAt,
	}

	for i, d := range r.Discrepancies {
		resp.Discrepancies[i] = &DiscrepancyResponse{
			HolderID:          d.HolderID,
			HolderKind:        string(d.HolderKind),
			RecordedBalance:   d.RecordedBalance.String(),
			CalculatedBalance: d.CalculatedBalance.String(),
			Difference:        d.Difference.String(),
		}
	}
	for i, p := range r.InventoryIssues {
		resp.InventoryIssues[i] = &InventoryCheckResponse{
			ProductID:        p.ProductID,
			Original:         p.Original.String(),
			Available:        p.Available.String(),
			Consumed:         p.Consumed.String(),
			OnHand:           p.OnHand.String(),
			RecordedQuantity: p.RecordedQuantity.String(),
			Conserved:        p.Conserved,
			QuantityInSync:   p.QuantityInSync,
		}
	}

	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func decimalPtrString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ListCounterpartiesResponse represents a page of counterparties.
type ListCounterpartiesResponse struct {
	Counterparties []*CounterpartyResponse `json:"counterparties"`
	Total          int64                   `json:"total"`
}

// ListProductsResponse represents a page of products.
type ListProductsResponse struct {
	Products []*ProductResponse `json:"products"`
	Total    int64              `json:"total"`
}

// ListBatchesResponse lists a product's batches in FIFO order.
type ListBatchesResponse struct {
	Batches []*BatchResponse `json:"batches"`
	Total   int64            `json:"total"`
}

// ListTransactionsResponse represents a page of transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ListEntriesResponse represents a page of balance entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}
