package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
	"github.com/iho/costledger/tests/testutil"
)

func TestTransactionEventsAreQueued(t *testing.T) {
	ctx := context.Background()
	ledger := testutil.NewTestDB(t).NewLedger()

	bank := ledger.CreateFundedAccount(t, "bank", dec("100"))

	res, err := ledger.Transactions.CreateTransaction(ctx, usecase.TransactionInput{
		Type:            domain.TxFixedUtility,
		SourceAccountID: &bank.ID,
		TotalAmount:     dec("10"),
	})
	require.NoError(t, err)
	require.NoError(t, ledger.Transactions.DeleteTransaction(ctx, res.Transaction.ID))

	events, err := ledger.Outbox.GetUnpublished(ctx, 10)
	require.NoError(t, err)

	var types []string
	for _, e := range events {
		if e.AggregateID == res.Transaction.ID {
			types = append(types, e.EventType)
		}
	}
	assert.Equal(t, []string{domain.EventTypeTransactionCreated, domain.EventTypeTransactionDeleted}, types)

	for _, e := range events {
		require.NoError(t, ledger.Outbox.MarkPublished(ctx, e.ID, time.Now().Add(-time.Hour)))
	}
	require.NoError(t, ledger.Outbox.DeletePublished(ctx, time.Now()))

	remaining, err := ledger.Outbox.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
