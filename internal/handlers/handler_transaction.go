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

// transactionHandler handles the ledger endpoints of a shop.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	overdueService     portssvc.OverdueSvcFacade
}

func newTransactionHandler(transactionService portssvc.TransactionSvcFacade, overdueService portssvc.OverdueSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: transactionService,
		overdueService:     overdueService,
	}
}

// createSale godoc
// @Summary Record a sale
// @Description Persists the sale, its items and the stock decrements atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.TransactionResponse "Recorded sale"
// @Failure 400 {object} map[string]string "Invalid request or overpayment"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Router /shops/{shopID}/sales [post]
func (h *transactionHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	req := dto.CreateSaleRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.CreateSale(c.Request.Context(), shopID, req, userID)
	if err != nil {
		respondError(c, logger, err, "record sale")
		return
	}

	logger.Info("Sale recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// createPurchase godoc
// @Summary Record a purchase
// @Description Persists the purchase, its items and the stock increments atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   purchase body dto.CreatePurchaseRequest true "Purchase details"
// @Success 201 {object} dto.TransactionResponse "Recorded purchase"
// @Failure 400 {object} map[string]string "Invalid request or overpayment"
// @Failure 404 {object} map[string]string "Vendor not found"
// @Router /shops/{shopID}/purchases [post]
func (h *transactionHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	req := dto.CreatePurchaseRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.CreatePurchase(c.Request.Context(), shopID, req, userID)
	if err != nil {
		respondError(c, logger, err, "record purchase")
		return
	}

	logger.Info("Purchase recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// createPayment godoc
// @Summary Record a payment for a customer or vendor
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.TransactionResponse "Recorded payment"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Party not found"
// @Router /shops/{shopID}/payments [post]
func (h *transactionHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	req := dto.CreatePaymentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.CreatePayment(c.Request.Context(), shopID, req, userID)
	if err != nil {
		respondError(c, logger, err, "record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// createExpense godoc
// @Summary Record an expense
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.TransactionResponse "Recorded expense"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /shops/{shopID}/expenses [post]
func (h *transactionHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	req := dto.CreateExpenseRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.CreateExpense(c.Request.Context(), shopID, req, userID)
	if err != nil {
		respondError(c, logger, err, "record expense")
		return
	}

	logger.Info("Expense recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction with its items
// @Tags transactions
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse "Transaction"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /shops/{shopID}/transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	transactionID := c.Param("transactionID")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), shopID, transactionID, userID)
	if err != nil {
		respondError(c, logger, err, "get transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List a shop's transactions
// @Tags transactions
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   type query string false "Filter by transaction type"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Page offset"
// @Success 200 {object} dto.ListTransactionsResponse "Page of transactions"
// @Router /shops/{shopID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	params := dto.ListTransactionsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), shopID, userID, params)
	if err != nil {
		respondError(c, logger, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// setTransactionStatus godoc
// @Summary Transition a transaction's status
// @Description COMPLETED settles a pending transaction; CANCELLED voids it and restores stock
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   transactionID path string true "Transaction ID"
// @Param   status body dto.SetTransactionStatusRequest true "Target status"
// @Success 200 {object} dto.TransactionResponse "Updated transaction"
// @Failure 409 {object} map[string]string "Transition not allowed from current state"
// @Router /shops/{shopID}/transactions/{transactionID}/status [patch]
func (h *transactionHandler) setTransactionStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	transactionID := c.Param("transactionID")

	req := dto.SetTransactionStatusRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setTransactionStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.transactionService.SetTransactionStatus(c.Request.Context(), shopID, transactionID, req.Status, userID)
	if err != nil {
		respondError(c, logger, err, "update transaction status")
		return
	}

	logger.Info("Transaction status updated", slog.String("transaction_id", transactionID), slog.String("status", string(txn.Status)))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listOverdueTransactions godoc
// @Summary List overdue transactions
// @Description Returns pending transactions whose due date has elapsed with outstanding balance
// @Tags transactions
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   notify query bool false "Also emit an overdue_payment notification per transaction"
// @Success 200 {array} dto.TransactionResponse "Overdue transactions"
// @Router /shops/{shopID}/transactions/overdue [get]
func (h *transactionHandler) listOverdueTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	asOf := time.Now()
	var err error
	var overdue = []dto.TransactionResponse{}
	if c.Query("notify") == "true" {
		txns, scanErr := h.overdueService.ScanAndNotify(c.Request.Context(), shopID, asOf, userID)
		overdue, err = dto.ToTransactionResponses(txns), scanErr
	} else {
		txns, findErr := h.overdueService.FindOverdue(c.Request.Context(), shopID, asOf, userID)
		overdue, err = dto.ToTransactionResponses(txns), findErr
	}
	if err != nil {
		respondError(c, logger, err, "list overdue transactions")
		return
	}
	c.JSON(http.StatusOK, overdue)
}

func registerTransactionRoutes(shop *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, overdueService portssvc.OverdueSvcFacade) {
	h := newTransactionHandler(transactionService, overdueService)
	shop.POST("/sales", h.createSale)
	shop.POST("/purchases", h.createPurchase)
	shop.POST("/payments", h.createPayment)
	shop.POST("/expenses", h.createExpense)
	shop.GET("/transactions", h.listTransactions)
	shop.GET("/transactions/overdue", h.listOverdueTransactions)
	shop.GET("/transactions/:transactionID", h.getTransaction)
	shop.PATCH("/transactions/:transactionID/status", h.setTransactionStatus)
}
