package cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceCache fronts the balance calculator's ledger aggregation. Cached values
// are an optimization only: a miss or failure always falls through to the ledger,
// and every write touching a party invalidates its entry.
type BalanceCache interface {
	Get(ctx context.Context, key string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, key string, value decimal.Decimal, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// NoopBalanceCache disables caching; every lookup goes to the ledger.
type NoopBalanceCache struct{}

func (NoopBalanceCache) Get(_ context.Context, _ string) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}

func (NoopBalanceCache) Set(_ context.Context, _ string, _ decimal.Decimal, _ time.Duration) error {
	return nil
}

func (NoopBalanceCache) Delete(_ context.Context, _ string) error {
	return nil
}
