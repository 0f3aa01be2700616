package usecase_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/costledger/internal/adapter/repository/memory"
	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/infrastructure/metrics"
	"github.com/iho/costledger/internal/usecase"
)

// seqGenerator hands out increasing ids so that id order equals creation order.
type seqGenerator struct {
	n atomic.Int64
}

func (g *seqGenerator) Generate() string {
	return fmt.Sprintf("id-%08d", g.n.Add(1))
}

type harness struct {
	store      *memory.Store
	metrics    *metrics.Metrics
	tx         *usecase.TransactionUseCase
	accounts   *usecase.AccountUseCase
	parties    *usecase.CounterpartyUseCase
	products   *usecase.ProductUseCase
	statements *usecase.StatementUseCase
	recon      *usecase.ReconciliationUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := memory.NewStore()
	idGen := &seqGenerator{}
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	logger := zerolog.Nop()

	return &harness{
		store:   store,
		metrics: m,
		tx: usecase.NewTransactionUseCase(
			store,
			store.Accounts(),
			store.Counterparties(),
			store.Products(),
			store.Batches(),
			store.Transactions(),
			store.Entries(),
			store.Outbox(),
			idGen,
			usecase.WithMetrics(m),
			usecase.WithLogger(logger),
		),
		accounts:   usecase.NewAccountUseCase(store.Accounts(), store.Entries(), idGen, nil, 0, m, logger),
		parties:    usecase.NewCounterpartyUseCase(store.Counterparties(), idGen),
		products:   usecase.NewProductUseCase(store, store.Products(), store.Batches(), store.Outbox(), idGen, m, logger),
		statements: usecase.NewStatementUseCase(store.Counterparties(), store.Transactions()),
		recon:      usecase.NewReconciliationUseCase(store.Accounts(), store.Counterparties(), store.Ledger(), m),
	}
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

func day(n int) *time.Time {
	return ptr(time.Date(2024, 1, n, 12, 0, 0, 0, time.UTC))
}

// account creates an active bank account and funds it with a deposit.
func (h *harness) account(t *testing.T, name, opening string) string {
	t.Helper()
	ctx := context.Background()

	a, err := h.accounts.CreateAccount(ctx, usecase.CreateAccountInput{Name: name, Type: domain.AccountTypeBank})
	require.NoError(t, err)

	if opening != "" && opening != "0" {
		_, err = h.tx.CreateTransaction(ctx, usecase.TransactionInput{
			Type:                 domain.TxDeposit,
			DestinationAccountID: &a.ID,
			TotalAmount:          d(opening),
			Date:                 day(1),
		})
		require.NoError(t, err)
	}

	return a.ID
}

func (h *harness) party(t *testing.T, code string, kind domain.CounterpartyKind) string {
	t.Helper()
	p, err := h.parties.CreateCounterparty(context.Background(), usecase.CreateCounterpartyInput{
		Code: code,
		Name: code,
		Kind: kind,
	})
	require.NoError(t, err)
	return p.ID
}

func (h *harness) product(t *testing.T, name string) string {
	t.Helper()
	p, err := h.products.CreateProduct(context.Background(), usecase.CreateProductInput{Name: name, Unit: "pcs"})
	require.NoError(t, err)
	return p.ID
}

func (h *harness) purchase(t *testing.T, vendorID, productID, qty, price string, date *time.Time) *usecase.TransactionResult {
	t.Helper()
	res, err := h.tx.CreateTransaction(context.Background(), usecase.TransactionInput{
		Type:             domain.TxPurchase,
		AccountPayableID: &vendorID,
		Date:             date,
		Lines: []usecase.TransactionLineInput{
			{ProductID: productID, Quantity: d(qty), UnitPrice: d(price)},
		},
	})
	require.NoError(t, err)
	return res
}

func saleInput(customerID, productID, qty, price string, date *time.Time) usecase.TransactionInput {
	return usecase.TransactionInput{
		Type:                domain.TxSale,
		AccountReceivableID: &customerID,
		Date:                date,
		Lines: []usecase.TransactionLineInput{
			{ProductID: productID, Quantity: d(qty), UnitPrice: d(price)},
		},
	}
}

func (h *harness) balance(t *testing.T, accountID string) decimal.Decimal {
	t.Helper()
	a, err := h.accounts.GetAccount(context.Background(), accountID)
	require.NoError(t, err)
	return a.Balance
}

func (h *harness) partyBalance(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	p, err := h.parties.GetCounterparty(context.Background(), id)
	require.NoError(t, err)
	return p.Balance
}

func (h *harness) stock(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	p, err := h.products.GetProduct(context.Background(), productID)
	require.NoError(t, err)
	return p.Quantity
}

func (h *harness) batches(t *testing.T, productID string) []*domain.Batch {
	t.Helper()
	b, err := h.products.GetBatchesForProduct(context.Background(), productID)
	require.NoError(t, err)
	return b
}

func (h *harness) requireConsistent(t *testing.T) {
	t.Helper()
	report, err := h.recon.Reconcile(context.Background())
	require.NoError(t, err)
	require.Empty(t, report.Discrepancies)
	require.Empty(t, report.InventoryIssues)
	require.True(t, report.Consistent)
}

// assertDecimal compares decimals by value; testify's Equal compares the
// internal representation.
func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.Truef(t, d(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}
