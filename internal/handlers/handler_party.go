package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoplite/shop_management_app/internal/core/domain"
	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/dto"
	"github.com/shoplite/shop_management_app/internal/middleware"
)

// partyHandler handles customer and vendor profiles, plus the derived balance and
// ledger history views hanging off them.
type partyHandler struct {
	partyService       portssvc.PartySvcFacade
	balanceService     portssvc.BalanceSvcFacade
	transactionService portssvc.TransactionSvcFacade
}

func newPartyHandler(partyService portssvc.PartySvcFacade, balanceService portssvc.BalanceSvcFacade, transactionService portssvc.TransactionSvcFacade) *partyHandler {
	return &partyHandler{
		partyService:       partyService,
		balanceService:     balanceService,
		transactionService: transactionService,
	}
}

func pagingParams(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

// createCustomer godoc
// @Summary Create a customer
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   customer body dto.CreatePartyRequest true "Customer details"
// @Success 201 {object} dto.PartyResponse "Created customer"
// @Router /shops/{shopID}/customers [post]
func (h *partyHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	req := dto.CreatePartyRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.partyService.CreateCustomer(c.Request.Context(), shopID, req, userID)
	if err != nil {
		respondError(c, logger, err, "create customer")
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// getCustomer godoc
// @Summary Get a customer
// @Tags parties
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   customerID path string true "Customer ID"
// @Success 200 {object} dto.PartyResponse "Customer"
// @Failure 404 {object} map[string]string "Customer not found"
// @Router /shops/{shopID}/customers/{customerID} [get]
func (h *partyHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	customerID := c.Param("customerID")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.partyService.GetCustomerByID(c.Request.Context(), shopID, customerID, userID)
	if err != nil {
		respondError(c, logger, err, "get customer")
		return
	}

	resp := dto.ToCustomerResponse(customer)
	h.attachBalance(c, &resp, userID)
	c.JSON(http.StatusOK, resp)
}

// attachBalance enriches a single-party profile with its derived balance. A balance
// failure degrades to a profile without the field rather than failing the request.
func (h *partyHandler) attachBalance(c *gin.Context, resp *dto.PartyResponse, userID string) {
	shopID := c.Param("shopID")
	balance, err := h.balanceService.GetPartyBalance(c.Request.Context(), shopID, resp.PartyID, resp.Role, userID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("failed to derive party balance",
			slog.String("party_id", resp.PartyID), slog.String("error", err.Error()))
		return
	}
	resp.Balance = &balance
}

// listCustomers godoc
// @Summary List a shop's customers
// @Tags parties
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.PartyResponse "Customers"
// @Router /shops/{shopID}/customers [get]
func (h *partyHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	limit, offset := pagingParams(c)

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customers, err := h.partyService.ListCustomers(c.Request.Context(), shopID, userID, limit, offset)
	if err != nil {
		respondError(c, logger, err, "list customers")
		return
	}

	responses := make([]dto.PartyResponse, len(customers))
	for i := range customers {
		responses[i] = dto.ToCustomerResponse(&customers[i])
	}
	c.JSON(http.StatusOK, responses)
}

// updateCustomer godoc
// @Summary Update a customer's profile
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   customerID path string true "Customer ID"
// @Param   customer body dto.UpdatePartyRequest true "Fields to update"
// @Success 200 {object} dto.PartyResponse "Updated customer"
// @Router /shops/{shopID}/customers/{customerID} [put]
func (h *partyHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	customerID := c.Param("customerID")

	req := dto.UpdatePartyRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.partyService.UpdateCustomer(c.Request.Context(), shopID, customerID, req, userID)
	if err != nil {
		respondError(c, logger, err, "update customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// getCustomerBalance godoc
// @Summary Get a customer's outstanding balance
// @Description Derived from the ledger: unpaid sale dues minus recorded payments, floored at zero
// @Tags parties
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   customerID path string true "Customer ID"
// @Success 200 {object} dto.PartyBalanceResponse "Balance"
// @Router /shops/{shopID}/customers/{customerID}/balance [get]
func (h *partyHandler) getCustomerBalance(c *gin.Context) {
	h.getPartyBalance(c, c.Param("customerID"), domain.PartyCustomer)
}

// getVendorBalance godoc
// @Summary Get a vendor's outstanding balance
// @Tags parties
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   vendorID path string true "Vendor ID"
// @Success 200 {object} dto.PartyBalanceResponse "Balance"
// @Router /shops/{shopID}/vendors/{vendorID}/balance [get]
func (h *partyHandler) getVendorBalance(c *gin.Context) {
	h.getPartyBalance(c, c.Param("vendorID"), domain.PartyVendor)
}

func (h *partyHandler) getPartyBalance(c *gin.Context, partyID string, role domain.PartyRole) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balance, err := h.balanceService.GetPartyBalance(c.Request.Context(), shopID, partyID, role, userID)
	if err != nil {
		respondError(c, logger, err, "get balance")
		return
	}
	c.JSON(http.StatusOK, dto.PartyBalanceResponse{PartyID: partyID, Role: role, Balance: balance})
}

// getCustomerLedger godoc
// @Summary Get a customer's transaction history
// @Tags parties
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   customerID path string true "Customer ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Opaque cursor from the previous page"
// @Success 200 {object} dto.PartyLedgerResponse "Ledger page"
// @Router /shops/{shopID}/customers/{customerID}/ledger [get]
func (h *partyHandler) getCustomerLedger(c *gin.Context) {
	h.getPartyLedger(c, c.Param("customerID"), domain.PartyCustomer)
}

// getVendorLedger godoc
// @Summary Get a vendor's transaction history
// @Tags parties
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   vendorID path string true "Vendor ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Opaque cursor from the previous page"
// @Success 200 {object} dto.PartyLedgerResponse "Ledger page"
// @Router /shops/{shopID}/vendors/{vendorID}/ledger [get]
func (h *partyHandler) getVendorLedger(c *gin.Context) {
	h.getPartyLedger(c, c.Param("vendorID"), domain.PartyVendor)
}

func (h *partyHandler) getPartyLedger(c *gin.Context, partyID string, role domain.PartyRole) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	params := dto.PartyLedgerParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getPartyLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.transactionService.ListPartyLedger(c.Request.Context(), shopID, partyID, role, userID, params)
	if err != nil {
		respondError(c, logger, err, "get party ledger")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createVendor godoc
// @Summary Create a vendor
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   vendor body dto.CreatePartyRequest true "Vendor details"
// @Success 201 {object} dto.PartyResponse "Created vendor"
// @Router /shops/{shopID}/vendors [post]
func (h *partyHandler) createVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	req := dto.CreatePartyRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createVendor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vendor, err := h.partyService.CreateVendor(c.Request.Context(), shopID, req, userID)
	if err != nil {
		respondError(c, logger, err, "create vendor")
		return
	}

	logger.Info("Vendor created", slog.String("vendor_id", vendor.VendorID))
	c.JSON(http.StatusCreated, dto.ToVendorResponse(vendor))
}

// getVendor godoc
// @Summary Get a vendor
// @Tags parties
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   vendorID path string true "Vendor ID"
// @Success 200 {object} dto.PartyResponse "Vendor"
// @Failure 404 {object} map[string]string "Vendor not found"
// @Router /shops/{shopID}/vendors/{vendorID} [get]
func (h *partyHandler) getVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	vendorID := c.Param("vendorID")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vendor, err := h.partyService.GetVendorByID(c.Request.Context(), shopID, vendorID, userID)
	if err != nil {
		respondError(c, logger, err, "get vendor")
		return
	}

	resp := dto.ToVendorResponse(vendor)
	h.attachBalance(c, &resp, userID)
	c.JSON(http.StatusOK, resp)
}

// listVendors godoc
// @Summary List a shop's vendors
// @Tags parties
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {array} dto.PartyResponse "Vendors"
// @Router /shops/{shopID}/vendors [get]
func (h *partyHandler) listVendors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	limit, offset := pagingParams(c)

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vendors, err := h.partyService.ListVendors(c.Request.Context(), shopID, userID, limit, offset)
	if err != nil {
		respondError(c, logger, err, "list vendors")
		return
	}

	responses := make([]dto.PartyResponse, len(vendors))
	for i := range vendors {
		responses[i] = dto.ToVendorResponse(&vendors[i])
	}
	c.JSON(http.StatusOK, responses)
}

// updateVendor godoc
// @Summary Update a vendor's profile
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   vendorID path string true "Vendor ID"
// @Param   vendor body dto.UpdatePartyRequest true "Fields to update"
// @Success 200 {object} dto.PartyResponse "Updated vendor"
// @Router /shops/{shopID}/vendors/{vendorID} [put]
func (h *partyHandler) updateVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	vendorID := c.Param("vendorID")

	req := dto.UpdatePartyRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateVendor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vendor, err := h.partyService.UpdateVendor(c.Request.Context(), shopID, vendorID, req, userID)
	if err != nil {
		respondError(c, logger, err, "update vendor")
		return
	}
	c.JSON(http.StatusOK, dto.ToVendorResponse(vendor))
}

func registerPartyRoutes(shop *gin.RouterGroup, partyService portssvc.PartySvcFacade, balanceService portssvc.BalanceSvcFacade, transactionService portssvc.TransactionSvcFacade) {
	h := newPartyHandler(partyService, balanceService, transactionService)

	shop.POST("/customers", h.createCustomer)
	shop.GET("/customers", h.listCustomers)
	shop.GET("/customers/:customerID", h.getCustomer)
	shop.PUT("/customers/:customerID", h.updateCustomer)
	shop.GET("/customers/:customerID/balance", h.getCustomerBalance)
	shop.GET("/customers/:customerID/ledger", h.getCustomerLedger)

	shop.POST("/vendors", h.createVendor)
	shop.GET("/vendors", h.listVendors)
	shop.GET("/vendors/:vendorID", h.getVendor)
	shop.PUT("/vendors/:vendorID", h.updateVendor)
	shop.GET("/vendors/:vendorID/balance", h.getVendorBalance)
	shop.GET("/vendors/:vendorID/ledger", h.getVendorLedger)
}
