package repositories

import (
	"context"
	"time"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// ReportingRepository defines read-only aggregation over the ledger.
type ReportingRepository interface {
	// GetShopSummary aggregates ledger totals for a shop between from and to inclusive.
	GetShopSummary(ctx context.Context, shopID string, from, to time.Time) (*domain.ShopSummary, error)
}
