package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoplite/shop_management_app/internal/core/domain"
	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/dto"
	"github.com/shoplite/shop_management_app/internal/middleware"
)

// shopHandler handles shop and membership management.
type shopHandler struct {
	shopService portssvc.ShopSvcFacade
}

func newShopHandler(shopService portssvc.ShopSvcFacade) *shopHandler {
	return &shopHandler{shopService: shopService}
}

// addMemberRequest grants a user a role in the shop.
type addMemberRequest struct {
	UserID string              `json:"userID" binding:"required"`
	Role   domain.UserShopRole `json:"role" binding:"required,oneof=OWNER MEMBER READONLY REMOVED"`
}

// createShop godoc
// @Summary Create a shop
// @Description Creates a shop with the requesting user as owner
// @Tags shops
// @Accept  json
// @Produce  json
// @Param   shop body dto.CreateShopRequest true "Shop details"
// @Success 201 {object} dto.ShopResponse "Created shop"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /shops [post]
func (h *shopHandler) createShop(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.CreateShopRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createShop", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "create shop")
		return
	}

	logger.Info("Shop created", slog.String("shop_id", shop.ShopID))
	c.JSON(http.StatusCreated, dto.ToShopResponse(shop))
}

// listShops godoc
// @Summary List the shops the user belongs to
// @Tags shops
// @Produce  json
// @Success 200 {array} dto.ShopResponse "Shops"
// @Router /shops [get]
func (h *shopHandler) listShops(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	shops, err := h.shopService.ListUserShops(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "list shops")
		return
	}
	c.JSON(http.StatusOK, dto.ToShopResponses(shops))
}

// getShop godoc
// @Summary Get a shop
// @Tags shops
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Success 200 {object} dto.ShopResponse "Shop"
// @Failure 404 {object} map[string]string "Shop not found"
// @Router /shops/{shopID} [get]
func (h *shopHandler) getShop(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	shop, err := h.shopService.GetShopByID(c.Request.Context(), shopID, userID)
	if err != nil {
		respondError(c, logger, err, "get shop")
		return
	}
	c.JSON(http.StatusOK, dto.ToShopResponse(shop))
}

// addMember godoc
// @Summary Add or update a shop member
// @Description Grants a user a role in the shop; requires OWNER
// @Tags shops
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   member body addMemberRequest true "Membership details"
// @Success 204 "Membership updated"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Router /shops/{shopID}/members [post]
func (h *shopHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	req := addMemberRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.shopService.AddMember(c.Request.Context(), shopID, req.UserID, req.Role, userID); err != nil {
		respondError(c, logger, err, "add member")
		return
	}

	logger.Info("Membership updated", slog.String("shop_id", shopID), slog.String("member_user_id", req.UserID))
	c.Status(http.StatusNoContent)
}

func registerShopRoutes(v1 *gin.RouterGroup, shopService portssvc.ShopSvcFacade) {
	h := newShopHandler(shopService)
	v1.POST("/shops", h.createShop)
	v1.GET("/shops", h.listShops)
	v1.GET("/shops/:shopID", h.getShop)
	v1.POST("/shops/:shopID/members", h.addMember)
}
