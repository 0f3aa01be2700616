package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds one unit of work including lock waits.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// BalanceCacheTTL is how long a read-through account balance stays cached.
	BalanceCacheTTL = 30 * time.Second

	// DefaultPageSize and MaxPageSize bound list endpoints.
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
