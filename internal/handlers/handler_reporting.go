package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/dto"
	"github.com/shoplite/shop_management_app/internal/middleware"
)

// reportingHandler handles dashboard aggregation endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// getShopSummary godoc
// @Summary Get aggregated ledger totals for a period
// @Description Defaults to the last 30 days when no period is given
// @Tags reports
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   from query string false "Period start (YYYY-MM-DD)"
// @Param   to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.ShopSummaryResponse "Summary"
// @Router /shops/{shopID}/reports/summary [get]
func (h *reportingHandler) getShopSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	params := dto.ShopSummaryParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getShopSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	now := time.Now()
	if params.To.IsZero() {
		params.To = now
	}
	if params.From.IsZero() {
		params.From = params.To.AddDate(0, 0, -30)
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.reportingService.GetShopSummary(c.Request.Context(), shopID, params.From, params.To, userID)
	if err != nil {
		respondError(c, logger, err, "get shop summary")
		return
	}

	c.JSON(http.StatusOK, dto.ShopSummaryResponse{
		From:    params.From,
		To:      params.To,
		Summary: *summary,
	})
}

func registerReportingRoutes(shop *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)
	shop.GET("/reports/summary", h.getShopSummary)
}
