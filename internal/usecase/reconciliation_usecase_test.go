package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/infrastructure/metrics"
	"github.com/iho/costledger/internal/usecase"
	"github.com/iho/costledger/internal/usecase/mocks"
)

func TestReconcile_FindsDiscrepancies(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	accountRepo := mocks.NewMockAccountRepository(ctrl)
	partyRepo := mocks.NewMockCounterpartyRepository(ctrl)
	ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())

	ledgerRepo.EXPECT().EntryTotals(ctx).Return(map[string]decimal.Decimal{
		"acc-1": decimal.NewFromInt(100),
		"acc-2": decimal.NewFromInt(50),
		"ven-1": decimal.NewFromInt(-20),
	}, nil)
	accountRepo.EXPECT().List(ctx, gomock.Any(), 0).Return([]*domain.Account{
		{ID: "acc-1", Balance: decimal.NewFromInt(100)},
		{ID: "acc-2", Balance: decimal.NewFromInt(55)},
		{ID: "acc-3", Balance: decimal.Zero},
	}, nil)
	partyRepo.EXPECT().List(ctx, domain.CounterpartyKind(""), gomock.Any(), 0).Return([]*domain.Counterparty{
		{ID: "ven-1", Kind: domain.CounterpartyPayable, Balance: decimal.NewFromInt(-20)},
	}, nil)
	ledgerRepo.EXPECT().InventoryTotals(ctx).Return([]usecase.InventoryTotals{
		{
			ProductID:        "p-ok",
			RecordedQuantity: decimal.NewFromInt(3),
			Original:         decimal.NewFromInt(10),
			Available:        decimal.NewFromInt(3),
			OnHand:           decimal.NewFromInt(3),
			Consumed:         decimal.NewFromInt(7),
		},
		{
			ProductID:        "p-drift",
			RecordedQuantity: decimal.NewFromInt(4),
			Original:         decimal.NewFromInt(10),
			Available:        decimal.NewFromInt(3),
			OnHand:           decimal.NewFromInt(3),
			Consumed:         decimal.NewFromInt(6),
		},
	}, nil)

	uc := usecase.NewReconciliationUseCase(accountRepo, partyRepo, ledgerRepo, m)
	report, err := uc.Reconcile(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalHolders)
	assert.Equal(t, 3, report.ReconciledHolders)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, "acc-2", report.Discrepancies[0].HolderID)
	assert.True(t, report.Discrepancies[0].Difference.Equal(decimal.NewFromInt(5)))

	require.Len(t, report.Products, 2)
	require.Len(t, report.InventoryIssues, 1)
	issue := report.InventoryIssues[0]
	assert.Equal(t, "p-drift", issue.ProductID)
	assert.False(t, issue.Conserved)
	assert.False(t, issue.QuantityInSync)

	assert.False(t, report.Consistent)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReconciliationRuns.WithLabelValues("inconsistent")))
}

func TestReconcile_PropagatesError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	ledgerRepo := mocks.NewMockLedgerRepository(ctrl)
	ledgerRepo.EXPECT().EntryTotals(ctx).Return(nil, errors.New("db down"))

	uc := usecase.NewReconciliationUseCase(
		mocks.NewMockAccountRepository(ctrl),
		mocks.NewMockCounterpartyRepository(ctrl),
		ledgerRepo,
		nil,
	)
	_, err := uc.Reconcile(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestReconcile_AfterMixedWorkload(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	bank := h.account(t, "bank", "1000")
	vendor := h.party(t, "V1", domain.CounterpartyPayable)
	customer := h.party(t, "C1", domain.CounterpartyReceivable)
	p1 := h.product(t, "steel")
	p2 := h.product(t, "timber")

	_, err := h.tx.CreateTransaction(ctx, usecase.TransactionInput{
		Type:             domain.TxPurchase,
		SourceAccountID:  &bank,
		AccountPayableID: &vendor,
		PaidAmount:       d("100"),
		Date:             day(2),
		Lines: []usecase.TransactionLineInput{
			{ProductID: p1, Quantity: d("10"), UnitPrice: d("12"), DiscountPerUnit: d("2")},
			{ProductID: p2, Quantity: d("4"), UnitPrice: d("25")},
		},
	})
	require.NoError(t, err)

	sale, err := h.tx.CreateTransaction(ctx, usecase.TransactionInput{
		Type:                 domain.TxSale,
		DestinationAccountID: &bank,
		AccountReceivableID:  &customer,
		PaidAmount:           d("50"),
		Date:                 day(3),
		Lines: []usecase.TransactionLineInput{
			{ProductID: p1, Quantity: d("3"), UnitPrice: d("20")},
			{ProductID: p1, Quantity: d("2"), UnitPrice: d("18")},
			{ProductID: p2, Quantity: d("1"), UnitPrice: d("40")},
		},
	})
	require.NoError(t, err)
	assertDecimal(t, "136", sale.Transaction.TotalAmount)

	_, err = h.tx.CreateTransaction(ctx, usecase.TransactionInput{
		Type:                domain.TxSaleReturn,
		AccountReceivableID: &customer,
		ReferenceID:         &sale.Transaction.ID,
		Date:                day(4),
		Lines: []usecase.TransactionLineInput{
			{ProductID: p1, Quantity: d("4"), UnitPrice: d("19")},
		},
	})
	require.NoError(t, err)

	_, err = h.tx.CreateTransaction(ctx, usecase.TransactionInput{
		Type:             domain.TxPayAble,
		SourceAccountID:  &bank,
		AccountPayableID: &vendor,
		TotalAmount:      d("50"),
	})
	require.NoError(t, err)

	assertDecimal(t, "9", h.stock(t, p1))
	assertDecimal(t, "3", h.stock(t, p2))
	assertDecimal(t, "900", h.balance(t, bank))
	assertDecimal(t, "50", h.partyBalance(t, vendor))
	assertDecimal(t, "10", h.partyBalance(t, customer))

	h.requireConsistent(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ReconciliationRuns.WithLabelValues("consistent")))
}
