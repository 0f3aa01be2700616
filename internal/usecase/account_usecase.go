package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/infrastructure/metrics"
)

// BalanceCacheKey is the cache key of an account's balance.
func BalanceCacheKey(accountID string) string {
	return "balance:account:" + accountID
}

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
	cache       Cache
	cacheTTL    time.Duration
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase. cache may be nil.
func NewAccountUseCase(
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	cache Cache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *AccountUseCase {
	if cacheTTL <= 0 {
		cacheTTL = BalanceCacheTTL
	}

	return &AccountUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     m,
		logger:      logger,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name   string
	Type   domain.AccountType
	Status domain.Status
}

// CreateAccount creates a new account with a zero balance. Opening
// balances are recorded with a deposit.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if !input.Type.IsValid() {
		return nil, domain.Validationf("unknown account type %q", input.Type)
	}

	status, err := resolveStatus(input.Status)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Type:      input.Type,
		Balance:   decimal.Zero,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountBalance returns the committed balance, served from cache when
// possible. Transactions invalidate the key after commit.
func (uc *AccountUseCase) GetAccountBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	key := BalanceCacheKey(id)

	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, key); err == nil && raw != nil {
			if balance, err := decimal.NewFromString(string(raw)); err == nil {
				if uc.metrics != nil {
					uc.metrics.BalanceCacheHits.Inc()
				}
				return balance, nil
			}
		}
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	if uc.metrics != nil {
		uc.metrics.BalanceCacheMisses.Inc()
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, []byte(account.Balance.String()), uc.cacheTTL); err != nil {
			uc.logger.Warn().Err(err).Str("account_id", id).Msg("failed to cache balance")
		}
	}

	return account.Balance, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := clampPage(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// ListEntries lists the balance entries of an account or counterparty,
// newest first.
func (uc *AccountUseCase) ListEntries(ctx context.Context, holderID string, limit, offset int) ([]*domain.BalanceEntry, error) {
	limit, offset = clampPage(limit, offset)
	return uc.entryRepo.ListByHolder(ctx, holderID, limit, offset)
}

func resolveStatus(s domain.Status) (domain.Status, error) {
	switch s {
	case "":
		return domain.StatusActive, nil
	case domain.StatusActive, domain.StatusInactive:
		return s, nil
	}
	return "", domain.Validationf("unknown status %q", s)
}
