package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	"github.com/shoplite/shop_management_app/internal/cache"
	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/middleware"
)

const balanceCacheTTL = 5 * time.Minute

type balanceService struct {
	balanceRepo portsrepo.BalanceReader
	shopSvc     portssvc.ShopAuthorizerSvc
	cache       cache.BalanceCache
}

// NewBalanceService creates the balance calculator. The cache is an optimization
// only; pass cache.NoopBalanceCache to disable it.
func NewBalanceService(balanceRepo portsrepo.BalanceReader, shopSvc portssvc.ShopAuthorizerSvc, balanceCache cache.BalanceCache) portssvc.BalanceSvcFacade {
	return &balanceService{
		balanceRepo: balanceRepo,
		shopSvc:     shopSvc,
		cache:       balanceCache,
	}
}

func balanceCacheKey(shopID string, role domain.PartyRole, partyID string) string {
	return fmt.Sprintf("balance:%s:%s:%s", shopID, role, partyID)
}

// GetPartyBalance returns the party's outstanding balance derived from the ledger.
// The call is idempotent and side-effect free; cache failures fall through to SQL.
func (s *balanceService) GetPartyBalance(ctx context.Context, shopID, partyID string, role domain.PartyRole, requestingUserID string) (decimal.Decimal, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return decimal.Zero, err
	}
	if !role.Valid() {
		return decimal.Zero, fmt.Errorf("%w: unknown party role %q", apperrors.ErrValidation, role)
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	key := balanceCacheKey(shopID, role, partyID)

	cached, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Debug("balance cache lookup failed", "key", key, "error", err)
	} else if hit {
		return cached, nil
	}

	balance, err := s.balanceRepo.AggregatePartyBalance(ctx, shopID, partyID, role)
	if err != nil {
		return decimal.Zero, err
	}

	if err := s.cache.Set(ctx, key, balance, balanceCacheTTL); err != nil {
		logger.Debug("balance cache store failed", "key", key, "error", err)
	}
	return balance, nil
}

// InvalidatePartyBalance drops the cached balance for a party. Failures are
// logged only; the cached entry expires by TTL regardless.
func (s *balanceService) InvalidatePartyBalance(ctx context.Context, shopID, partyID string, role domain.PartyRole) {
	key := balanceCacheKey(shopID, role, partyID)
	if err := s.cache.Delete(ctx, key); err != nil {
		middleware.GetLoggerFromCtx(ctx).Debug("balance cache invalidation failed", "key", key, "error", err)
	}
}
