package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
	"github.com/iho/costledger/internal/usecase/mocks"
)

func TestStatementUseCase_GetStatement(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	bank := h.account(t, "bank", "1000")
	vendor := h.party(t, "V1", domain.CounterpartyPayable)
	other := h.party(t, "V2", domain.CounterpartyPayable)
	product := h.product(t, "nails")

	purchase := func(vendorID, paid string, date int) {
		t.Helper()
		_, err := h.tx.CreateTransaction(ctx, usecase.TransactionInput{
			Type:             domain.TxPurchase,
			SourceAccountID:  &bank,
			AccountPayableID: &vendorID,
			PaidAmount:       d(paid),
			Date:             day(date),
			Lines: []usecase.TransactionLineInput{
				{ProductID: product, Quantity: d("10"), UnitPrice: d("10")},
			},
		})
		require.NoError(t, err)
	}

	purchase(vendor, "40", 2)
	purchase(vendor, "100", 3)
	purchase(other, "0", 4)

	_, err := h.tx.CreateTransaction(ctx, usecase.TransactionInput{
		Type:             domain.TxPurchase,
		AccountPayableID: &vendor,
		Date:             day(5),
		Lines: []usecase.TransactionLineInput{
			{ProductID: product, Quantity: d("1"), UnitPrice: d("5")},
		},
	})
	require.NoError(t, err)

	st, err := h.statements.GetStatement(ctx, vendor, 0, 0)
	require.NoError(t, err)

	require.Len(t, st.Lines, 3)
	assert.Equal(t, domain.PaymentPending, st.Lines[0].Status)
	assert.Equal(t, domain.PaymentPaid, st.Lines[1].Status)
	assert.Equal(t, domain.PaymentPartialPending, st.Lines[2].Status)
	assertDecimal(t, "60", st.Lines[2].Remaining)

	assertDecimal(t, "205", st.TotalAmount)
	assertDecimal(t, "140", st.TotalPaid)
	assertDecimal(t, "65", st.Outstanding)
	assertDecimal(t, "65", st.Counterparty.Balance)

	_, err = h.statements.GetStatement(ctx, "missing", 0, 0)
	assert.ErrorIs(t, err, domain.ErrCounterpartyNotFound)
}

func TestStatementUseCase_TotalsSpanAllPages(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	bank := h.account(t, "bank", "1000")
	vendor := h.party(t, "V1", domain.CounterpartyPayable)
	product := h.product(t, "nails")

	for i, paid := range []string{"40", "100", "0"} {
		_, err := h.tx.CreateTransaction(ctx, usecase.TransactionInput{
			Type:             domain.TxPurchase,
			SourceAccountID:  &bank,
			AccountPayableID: &vendor,
			PaidAmount:       d(paid),
			Date:             day(i + 2),
			Lines: []usecase.TransactionLineInput{
				{ProductID: product, Quantity: d("10"), UnitPrice: d("10")},
			},
		})
		require.NoError(t, err)
	}

	st, err := h.statements.GetStatement(ctx, vendor, 1, 1)
	require.NoError(t, err)

	require.Len(t, st.Lines, 1)
	assert.Equal(t, domain.PaymentPaid, st.Lines[0].Status)
	assert.Equal(t, 3, st.TransactionCount)
	assertDecimal(t, "300", st.TotalAmount)
	assertDecimal(t, "140", st.TotalPaid)
	assertDecimal(t, "160", st.Outstanding)

	st, err = h.statements.GetStatement(ctx, vendor, 10, 50)
	require.NoError(t, err)
	assert.Empty(t, st.Lines)
	assertDecimal(t, "160", st.Outstanding)
}

func TestStatementUseCase_ReadsEveryRepositoryPage(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	partyRepo := mocks.NewMockCounterpartyRepository(ctrl)
	txRepo := mocks.NewMockTransactionRepository(ctrl)

	full := make([]*domain.Transaction, usecase.MaxPageSize)
	for i := range full {
		full[i] = &domain.Transaction{
			ID:               fmt.Sprintf("t-%03d", i),
			TotalAmount:      decimal.NewFromInt(2),
			PaidAmount:       decimal.NewFromInt(1),
			RemainingPayment: decimal.NewFromInt(1),
		}
	}
	tail := []*domain.Transaction{{
		ID:               "t-last",
		TotalAmount:      decimal.NewFromInt(5),
		PaidAmount:       decimal.NewFromInt(5),
		RemainingPayment: decimal.Zero,
	}}

	partyRepo.EXPECT().GetByID(ctx, "v-1").Return(&domain.Counterparty{ID: "v-1"}, nil)
	gomock.InOrder(
		txRepo.EXPECT().List(ctx, usecase.TransactionFilter{CounterpartyID: "v-1", Limit: usecase.MaxPageSize}).
			Return(full, nil),
		txRepo.EXPECT().List(ctx, usecase.TransactionFilter{
			CounterpartyID: "v-1", Limit: usecase.MaxPageSize, Offset: usecase.MaxPageSize,
		}).Return(tail, nil),
	)

	st, err := usecase.NewStatementUseCase(partyRepo, txRepo).GetStatement(ctx, "v-1", 0, 0)
	require.NoError(t, err)

	assert.Len(t, st.Lines, usecase.DefaultPageSize)
	assert.Equal(t, usecase.MaxPageSize+1, st.TransactionCount)
	assertDecimal(t, fmt.Sprint(2*usecase.MaxPageSize+5), st.TotalAmount)
	assertDecimal(t, fmt.Sprint(usecase.MaxPageSize), st.Outstanding)
}

func TestCounterpartyUseCase_CreateAndList(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.party(t, "V1", domain.CounterpartyPayable)
	h.party(t, "C1", domain.CounterpartyReceivable)
	h.party(t, "C2", domain.CounterpartyReceivable)

	_, err := h.parties.CreateCounterparty(ctx, usecase.CreateCounterpartyInput{Code: "X", Name: "x", Kind: "lender"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = h.parties.CreateCounterparty(ctx, usecase.CreateCounterpartyInput{Code: "C1", Name: "dup", Kind: domain.CounterpartyReceivable})
	require.ErrorIs(t, err, domain.ErrValidation)

	customers, err := h.parties.ListCounterparties(ctx, domain.CounterpartyReceivable, 0, 0)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "C1", customers[0].Code)

	all, err := h.parties.ListCounterparties(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProductUseCase_CreateAndBatches(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.products.CreateProduct(ctx, usecase.CreateProductInput{Name: ""})
	require.ErrorIs(t, err, domain.ErrInvalidName)

	vendor := h.party(t, "V1", domain.CounterpartyPayable)
	product := h.product(t, "cement")
	h.purchase(t, vendor, product, "2", "7.5", day(3))
	h.purchase(t, vendor, product, "3", "8", day(1))

	batches := h.batches(t, product)
	require.Len(t, batches, 2)
	assertDecimal(t, "8", batches[0].PurchasePrice)
	assertDecimal(t, "7.5", batches[1].PurchasePrice)

	p, err := h.products.GetProduct(ctx, product)
	require.NoError(t, err)
	assertDecimal(t, "5", p.Quantity)
	// Last recorded purchase wins, whatever its date.
	assertDecimal(t, "8", p.CurrentPrice)

	_, err = h.products.GetBatchesForProduct(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
