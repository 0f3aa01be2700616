package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name   string `json:"name" validate:"required,max=200"`
	Type   string `json:"type" validate:"required,oneof=petty bank cash"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:   r.Name,
		Type:   domain.AccountType(r.Type),
		Status: domain.Status(r.Status),
	}
}

// CreateCounterpartyRequest represents a request to create a payable or receivable.
type CreateCounterpartyRequest struct {
	Code   string `json:"code" validate:"required,max=64"`
	Name   string `json:"name" validate:"required,max=200"`
	Kind   string `json:"kind" validate:"required,oneof=payable receivable"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCounterpartyRequest) ToUseCaseInput() usecase.CreateCounterpartyInput {
	return usecase.CreateCounterpartyInput{
		Code:   r.Code,
		Name:   r.Name,
		Kind:   domain.CounterpartyKind(r.Kind),
		Status: domain.Status(r.Status),
	}
}

// CreateProductRequest represents a request to create a product.
type CreateProductRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Unit string `json:"unit,omitempty" validate:"max=32"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateProductRequest) ToUseCaseInput() usecase.CreateProductInput {
	return usecase.CreateProductInput{Name: r.Name, Unit: r.Unit}
}

// TransactionLineRequest is one product row of a transaction request.
type TransactionLineRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPerUnit decimal.Decimal `json:"discount_per_unit"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	BatchID         *string         `json:"batch_id,omitempty"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
}

// TransactionRequest is the body of both create and update.
type TransactionRequest struct {
	Type                 string                   `json:"type" validate:"required"`
	SourceAccountID      *string                  `json:"source_account_id,omitempty"`
	DestinationAccountID *string                  `json:"destination_account_id,omitempty"`
	AccountPayableID     *string                  `json:"account_payable_id,omitempty"`
	AccountReceivableID  *string                  `json:"account_receivable_id,omitempty"`
	ReferenceID          *string                  `json:"reference_id,omitempty"`
	TotalAmount          decimal.Decimal          `json:"total_amount"`
	PaidAmount           decimal.Decimal          `json:"paid_amount"`
	Date                 *time.Time               `json:"date,omitempty"`
	Note                 string                   `json:"note,omitempty" validate:"max=2000"`
	Lines                []TransactionLineRequest `json:"lines,omitempty" validate:"dive"`
}

// ToUseCaseInput converts to use case input.
func (r *TransactionRequest) ToUseCaseInput() usecase.TransactionInput {
	lines := make([]usecase.TransactionLineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = usecase.TransactionLineInput{
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			DiscountPerUnit: l.DiscountPerUnit,
			TotalAmount:     l.TotalAmount,
			BatchID:         l.BatchID,
			ExpiresAt:       l.ExpiresAt,
		}
	}

	return usecase.TransactionInput{
		Type:                 domain.TransactionType(r.Type),
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		AccountPayableID:     r.AccountPayableID,
		AccountReceivableID:  r.AccountReceivableID,
		ReferenceID:          r.ReferenceID,
		TotalAmount:          r.TotalAmount,
		PaidAmount:           r.PaidAmount,
		Date:                 r.Date,
		Note:                 r.Note,
		Lines:                lines,
	}
}

// ExpireBatchesRequest marks batches expired as of a point in time. An
// empty body means now.
type ExpireBatchesRequest struct {
	AsOf *time.Time `json:"as_of,omitempty"`
}
