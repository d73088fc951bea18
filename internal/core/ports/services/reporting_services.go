package services

import (
	"context"
	"time"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// ReportingSvcFacade defines read-only aggregation over the ledger for dashboards.
type ReportingSvcFacade interface {
	GetShopSummary(ctx context.Context, shopID string, from, to time.Time, requestingUserID string) (*domain.ShopSummary, error)
}
