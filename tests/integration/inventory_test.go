package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
	"github.com/iho/costledger/tests/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(d int) *time.Time {
	t := time.Date(2026, 2, d, 9, 0, 0, 0, time.UTC)
	return &t
}

func TestPurchaseSaleFIFO(t *testing.T) {
	ctx := context.Background()
	ledger := testutil.NewTestDB(t).NewLedger()

	bank := ledger.CreateFundedAccount(t, "bank", dec("1000"))
	vendor := ledger.CreateCounterparty(t, "V1", domain.CounterpartyPayable)
	customer := ledger.CreateCounterparty(t, "C1", domain.CounterpartyReceivable)
	product := ledger.CreateProduct(t, "cement")

	for _, p := range []struct {
		qty, price string
		day        int
	}{
		{"10", "10", 2},
		{"10", "12", 3},
	} {
		_, err := ledger.Transactions.CreateTransaction(ctx, usecase.TransactionInput{
			Type:             domain.TxPurchase,
			SourceAccountID:  &bank.ID,
			AccountPayableID: &vendor.ID,
			PaidAmount:       dec("50"),
			Date:             date(p.day),
			Lines: []usecase.TransactionLineInput{
				{ProductID: product.ID, Quantity: dec(p.qty), UnitPrice: dec(p.price)},
			},
		})
		require.NoError(t, err)
	}

	sale, err := ledger.Transactions.CreateTransaction(ctx, usecase.TransactionInput{
		Type:                 domain.TxSale,
		DestinationAccountID: &bank.ID,
		AccountReceivableID:  &customer.ID,
		PaidAmount:           dec("100"),
		Date:                 date(4),
		Lines: []usecase.TransactionLineInput{
			{ProductID: product.ID, Quantity: dec("15"), UnitPrice: dec("20")},
		},
	})
	require.NoError(t, err)

	// Oldest batch drains first: 10@10 then 5@12.
	require.Len(t, sale.Consumptions, 2)
	assert.True(t, sale.Consumptions[0].QuantitySold.Equal(dec("10")))
	assert.True(t, sale.Consumptions[1].QuantitySold.Equal(dec("5")))
	require.NotNil(t, sale.Transaction.ProfitLoss)
	assert.True(t, sale.Transaction.ProfitLoss.Equal(dec("140")), "profit %s", sale.Transaction.ProfitLoss)
	assert.Equal(t, domain.PaymentPartialPending, sale.PaymentStatus)

	balance, err := ledger.Accounts.GetAccountBalance(ctx, bank.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("1000")), "balance %s", balance)

	p, err := ledger.Products.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, p.Quantity.Equal(dec("5")))

	_, err = ledger.Transactions.CreateTransaction(ctx, usecase.TransactionInput{
		Type:                domain.TxSale,
		AccountReceivableID: &customer.ID,
		Lines: []usecase.TransactionLineInput{
			{ProductID: product.ID, Quantity: dec("6"), UnitPrice: dec("20")},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientInventory)

	st, err := ledger.Statements.GetStatement(ctx, customer.ID, 0, 0)
	require.NoError(t, err)
	assert.True(t, st.Outstanding.Equal(dec("200")))

	ledger.AssertReconciled(t)
}

func TestDeleteRestoresBatches(t *testing.T) {
	ctx := context.Background()
	ledger := testutil.NewTestDB(t).NewLedger()

	vendor := ledger.CreateCounterparty(t, "V1", domain.CounterpartyPayable)
	customer := ledger.CreateCounterparty(t, "C1", domain.CounterpartyReceivable)
	product := ledger.CreateProduct(t, "nails")

	purchase, err := ledger.Transactions.CreateTransaction(ctx, usecase.TransactionInput{
		Type:             domain.TxPurchase,
		AccountPayableID: &vendor.ID,
		Date:             date(1),
		Lines: []usecase.TransactionLineInput{
			{ProductID: product.ID, Quantity: dec("8"), UnitPrice: dec("3")},
		},
	})
	require.NoError(t, err)

	sale, err := ledger.Transactions.CreateTransaction(ctx, usecase.TransactionInput{
		Type:                domain.TxSale,
		AccountReceivableID: &customer.ID,
		Date:                date(2),
		Lines: []usecase.TransactionLineInput{
			{ProductID: product.ID, Quantity: dec("5"), UnitPrice: dec("4")},
		},
	})
	require.NoError(t, err)

	err = ledger.Transactions.DeleteTransaction(ctx, purchase.Transaction.ID)
	require.Error(t, err)

	require.NoError(t, ledger.Transactions.DeleteTransaction(ctx, sale.Transaction.ID))

	batches, err := ledger.Products.GetBatchesForProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.True(t, batches[0].AvailableQuantity.Equal(dec("8")))

	require.NoError(t, ledger.Transactions.DeleteTransaction(ctx, purchase.Transaction.ID))

	p, err := ledger.Products.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, p.Quantity.IsZero())

	_, err = ledger.Transactions.GetTransaction(ctx, sale.Transaction.ID)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	ledger.AssertReconciled(t)
}

func TestUpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	ledger := testutil.NewTestDB(t).NewLedger()

	bank := ledger.CreateFundedAccount(t, "bank", dec("100"))
	cash := ledger.CreateFundedAccount(t, "cash", decimal.Zero)

	transfer, err := ledger.Transactions.CreateTransaction(ctx, usecase.TransactionInput{
		Type:                 domain.TxTransfer,
		SourceAccountID:      &bank.ID,
		DestinationAccountID: &cash.ID,
		TotalAmount:          dec("30"),
	})
	require.NoError(t, err)

	updated, err := ledger.Transactions.UpdateTransaction(ctx, transfer.Transaction.ID, usecase.TransactionInput{
		Type:                 domain.TxTransfer,
		SourceAccountID:      &bank.ID,
		DestinationAccountID: &cash.ID,
		TotalAmount:          dec("45"),
	})
	require.NoError(t, err)
	assert.Equal(t, transfer.Transaction.ID, updated.Transaction.ID)

	balance, err := ledger.Accounts.GetAccountBalance(ctx, bank.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("55")))

	_, err = ledger.Transactions.UpdateTransaction(ctx, transfer.Transaction.ID, usecase.TransactionInput{
		Type:                 domain.TxTransfer,
		SourceAccountID:      &bank.ID,
		DestinationAccountID: &cash.ID,
		TotalAmount:          dec("500"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	balance, err = ledger.Accounts.GetAccountBalance(ctx, bank.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("55")), "failed update must leave balances untouched")

	ledger.AssertReconciled(t)
}
