package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/dto"
	"github.com/shoplite/shop_management_app/internal/middleware"
)

// productHandler handles product catalogue endpoints. Stock quantity is read-only
// here; it changes only through recorded transactions.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(productService portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{productService: productService}
}

// createProduct godoc
// @Summary Create a product
// @Tags products
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse "Created product"
// @Router /shops/{shopID}/products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	req := dto.CreateProductRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), shopID, req, userID)
	if err != nil {
		respondError(c, logger, err, "create product")
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// getProduct godoc
// @Summary Get a product
// @Tags products
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse "Product"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /shops/{shopID}/products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	productID := c.Param("productID")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), shopID, productID, userID)
	if err != nil {
		respondError(c, logger, err, "get product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List a shop's active products
// @Tags products
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.ProductResponse "Products"
// @Router /shops/{shopID}/products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	limit, offset := pagingParams(c)

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), shopID, userID, limit, offset)
	if err != nil {
		respondError(c, logger, err, "list products")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// listLowStockProducts godoc
// @Summary List products at or below their minimum stock level
// @Tags products
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Success 200 {array} dto.ProductResponse "Low stock products"
// @Router /shops/{shopID}/products/low-stock [get]
func (h *productHandler) listLowStockProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	products, err := h.productService.GetLowStockProducts(c.Request.Context(), shopID, userID)
	if err != nil {
		respondError(c, logger, err, "list low stock products")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// updateProduct godoc
// @Summary Update a product's catalogue fields
// @Description Stock quantity cannot be set here; it moves only through transactions
// @Tags products
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   productID path string true "Product ID"
// @Param   product body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.ProductResponse "Updated product"
// @Router /shops/{shopID}/products/{productID} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	productID := c.Param("productID")

	req := dto.UpdateProductRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), shopID, productID, req, userID)
	if err != nil {
		respondError(c, logger, err, "update product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// deactivateProduct godoc
// @Summary Deactivate a product
// @Description Soft delete; historical transactions keep referencing the product
// @Tags products
// @Param   shopID path string true "Shop ID"
// @Param   productID path string true "Product ID"
// @Success 204 "Product deactivated"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /shops/{shopID}/products/{productID} [delete]
func (h *productHandler) deactivateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	productID := c.Param("productID")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.productService.DeactivateProduct(c.Request.Context(), shopID, productID, userID); err != nil {
		respondError(c, logger, err, "deactivate product")
		return
	}

	logger.Info("Product deactivated", slog.String("product_id", productID))
	c.Status(http.StatusNoContent)
}

func registerProductRoutes(shop *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)
	shop.POST("/products", h.createProduct)
	shop.GET("/products", h.listProducts)
	shop.GET("/products/low-stock", h.listLowStockProducts)
	shop.GET("/products/:productID", h.getProduct)
	shop.PUT("/products/:productID", h.updateProduct)
	shop.DELETE("/products/:productID", h.deactivateProduct)
}
