package dto

import (
	"time"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// ShopSummaryParams bounds the reporting period.
type ShopSummaryParams struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// ShopSummaryResponse is the dashboard aggregation payload.
type ShopSummaryResponse struct {
	From    time.Time          `json:"from"`
	To      time.Time          `json:"to"`
	Summary domain.ShopSummary `json:"summary"`
}
