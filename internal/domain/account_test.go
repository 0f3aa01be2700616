package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateDelta(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		delta       decimal.Decimal
		expectError bool
	}{
		{
			name:        "debit more than balance",
			balance:     decimal.NewFromInt(100),
			delta:       decimal.NewFromInt(-150),
			expectError: true,
		},
		{
			name:        "debit exact balance",
			balance:     decimal.NewFromInt(100),
			delta:       decimal.NewFromInt(-100),
			expectError: false,
		},
		{
			name:        "debit less than balance",
			balance:     decimal.NewFromInt(100),
			delta:       decimal.NewFromInt(-50),
			expectError: false,
		},
		{
			name:        "credit on empty account",
			balance:     decimal.Zero,
			delta:       decimal.NewFromInt(10),
			expectError: false,
		},
		{
			name:        "credit on already negative account",
			balance:     decimal.NewFromInt(-5),
			delta:       decimal.NewFromInt(1),
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: tt.balance}

			err := acc.ValidateDelta(tt.delta)

			if tt.expectError && !errors.Is(err, ErrInsufficientBalance) {
				t.Errorf("expected ErrInsufficientBalance, got %v", err)
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestAccount_ApplyDelta(t *testing.T) {
	acc := &Account{Balance: decimal.NewFromInt(100)}

	if got := acc.ApplyDelta(decimal.NewFromInt(-30)); !got.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected 70, got %s", got)
	}

	if !acc.Balance.Equal(decimal.NewFromInt(100)) {
		t.Error("ApplyDelta must not mutate the account")
	}
}

func TestAccountType_IsValid(t *testing.T) {
	for _, typ := range []AccountType{AccountTypePetty, AccountTypeBank, AccountTypeCash} {
		if !typ.IsValid() {
			t.Errorf("expected %s to be valid", typ)
		}
	}

	if AccountType("savings").IsValid() {
		t.Error("expected savings to be invalid")
	}
}

func TestCounterpartyKind_IsValid(t *testing.T) {
	if !CounterpartyPayable.IsValid() || !CounterpartyReceivable.IsValid() {
		t.Error("expected payable and receivable to be valid")
	}

	if CounterpartyKind("both").IsValid() {
		t.Error("expected unknown kind to be invalid")
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{ErrInvalidAmount, "validation"},
		{Validationf("line %d: bad", 1), "validation"},
		{ErrInsufficientBalance, "insufficient_balance"},
		{ErrInsufficientInventory, "insufficient_inventory"},
		{ErrConcurrencyConflict, "concurrency_conflict"},
		{ErrCannotReverseConsumedBatch, "cannot_reverse_consumed_batch"},
		{ErrTransactionHasDependents, "has_dependents"},
		{ErrProductNotFound, "not_found"},
		{errors.New("boom"), "internal"},
	}

	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Errorf("ErrorKind(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
