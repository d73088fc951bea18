package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/dto"
	"github.com/shoplite/shop_management_app/internal/middleware"
)

type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	vendorRepo   portsrepo.VendorRepositoryFacade
	shopSvc      portssvc.ShopAuthorizerSvc
	balanceSvc   portssvc.BalanceSvcFacade
	notifier     portssvc.NotificationDispatcher
}

// NewTransactionService creates the ledger service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	productRepo portsrepo.ProductRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	vendorRepo portsrepo.VendorRepositoryFacade,
	shopSvc portssvc.ShopAuthorizerSvc,
	balanceSvc portssvc.BalanceSvcFacade,
	notifier portssvc.NotificationDispatcher,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
		shopSvc:      shopSvc,
		balanceSvc:   balanceSvc,
		notifier:     notifier,
	}
}

// buildItems validates request lines and converts them to domain items.
// Each line must reference exactly one of a product or a service.
func buildItems(transactionID string, reqItems []dto.TransactionItemRequest) ([]domain.TransactionItem, decimal.Decimal, error) {
	if len(reqItems) == 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: at least one item is required", apperrors.ErrValidation)
	}

	items := make([]domain.TransactionItem, 0, len(reqItems))
	subtotalSum := decimal.Zero
	for i, reqItem := range reqItems {
		if (reqItem.ProductID == nil) == (reqItem.ServiceID == nil) {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d must reference exactly one of productID or serviceID", apperrors.ErrValidation, i)
		}
		if reqItem.Quantity <= 0 {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d quantity must be positive", apperrors.ErrValidation, i)
		}
		if reqItem.UnitPrice.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("%w: item %d unit price cannot be negative", apperrors.ErrValidation, i)
		}

		subtotal := reqItem.UnitPrice.Mul(decimal.NewFromInt(reqItem.Quantity))
		subtotalSum = subtotalSum.Add(subtotal)
		items = append(items, domain.TransactionItem{
			ItemID:        uuid.NewString(),
			TransactionID: transactionID,
			ProductID:     reqItem.ProductID,
			ServiceID:     reqItem.ServiceID,
			Description:   reqItem.Description,
			Quantity:      reqItem.Quantity,
			UnitPrice:     reqItem.UnitPrice,
			Subtotal:      subtotal,
		})
	}
	return items, subtotalSum, nil
}

// CreateSale records a sale, decrementing stock for each product line.
func (s *transactionService) CreateSale(ctx context.Context, shopID string, req dto.CreateSaleRequest, creatorUserID string) (*domain.Transaction, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, creatorUserID, shopID, domain.RoleMember); err != nil {
		return nil, err
	}

	transactionID := uuid.NewString()
	items, subtotalSum, err := buildItems(transactionID, req.Items)
	if err != nil {
		return nil, err
	}

	if req.Discount.IsNegative() || req.Discount.GreaterThan(subtotalSum) {
		return nil, fmt.Errorf("%w: discount must be between zero and the item total", apperrors.ErrValidation)
	}
	amount := subtotalSum.Sub(req.Discount)

	if req.PaidAmount.IsNegative() {
		return nil, fmt.Errorf("%w: paid amount cannot be negative", apperrors.ErrValidation)
	}
	if req.PaidAmount.GreaterThan(amount) {
		return nil, apperrors.ErrOverpayment
	}

	customerName := req.CustomerName
	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindCustomerByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer.ShopID != shopID {
			return nil, apperrors.ErrNotFound
		}
		customerName = customer.Name
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: transactionID,
		ShopID:        shopID,
		Type:          domain.Sale,
		Amount:        amount,
		PaidAmount:    req.PaidAmount,
		DueAmount:     domain.ComputeDueAmount(amount, req.PaidAmount),
		Discount:      req.Discount,
		Status:        statusForDue(domain.ComputeDueAmount(amount, req.PaidAmount)),
		Date:          now,
		DueDate:       req.DueDate,
		CustomerID:    req.CustomerID,
		CustomerName:  customerName,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
		AuditFields:   newAuditFields(creatorUserID, now),
		Items:         items,
	}

	deltas := domain.StockDeltasFor(txn.Type, items)
	touched, err := s.txnRepo.SaveTransaction(ctx, txn, items, deltas)
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, txn, touched, domain.NotifyNewSale,
		"New sale",
		fmt.Sprintf("Sale of %s recorded", amount.StringFixed(2)))
	return &txn, nil
}

// CreatePurchase records a purchase from a vendor, incrementing stock.
func (s *transactionService) CreatePurchase(ctx context.Context, shopID string, req dto.CreatePurchaseRequest, creatorUserID string) (*domain.Transaction, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, creatorUserID, shopID, domain.RoleMember); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.FindVendorByID(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor.ShopID != shopID {
		return nil, apperrors.ErrNotFound
	}

	transactionID := uuid.NewString()
	items, subtotalSum, err := buildItems(transactionID, req.Items)
	if err != nil {
		return nil, err
	}
	amount := subtotalSum

	if req.PaidAmount.IsNegative() {
		return nil, fmt.Errorf("%w: paid amount cannot be negative", apperrors.ErrValidation)
	}
	if req.PaidAmount.GreaterThan(amount) {
		return nil, apperrors.ErrOverpayment
	}

	now := time.Now()
	vendorID := req.VendorID
	txn := domain.Transaction{
		TransactionID: transactionID,
		ShopID:        shopID,
		Type:          domain.Purchase,
		Amount:        amount,
		PaidAmount:    req.PaidAmount,
		DueAmount:     domain.ComputeDueAmount(amount, req.PaidAmount),
		Discount:      decimal.Zero,
		Status:        statusForDue(domain.ComputeDueAmount(amount, req.PaidAmount)),
		Date:          now,
		DueDate:       req.DueDate,
		VendorID:      &vendorID,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
		AuditFields:   newAuditFields(creatorUserID, now),
		Items:         items,
	}

	deltas := domain.StockDeltasFor(txn.Type, items)
	touched, err := s.txnRepo.SaveTransaction(ctx, txn, items, deltas)
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, txn, touched, domain.NotifyNewPurchase,
		"New purchase",
		fmt.Sprintf("Purchase of %s from %s recorded", amount.StringFixed(2), vendor.Name))
	return &txn, nil
}

// CreatePayment records a payment against a party's outstanding balance. Payments
// carry no items, never touch stock, and are settled immediately.
func (s *transactionService) CreatePayment(ctx context.Context, shopID string, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Transaction, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, creatorUserID, shopID, domain.RoleMember); err != nil {
		return nil, err
	}

	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown party role %q", apperrors.ErrValidation, req.Role)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	partyID := req.PartyID
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		ShopID:        shopID,
		Amount:        req.Amount,
		PaidAmount:    req.Amount,
		DueAmount:     decimal.Zero,
		Discount:      decimal.Zero,
		Status:        domain.StatusCompleted,
		Date:          now,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
		AuditFields:   newAuditFields(creatorUserID, now),
	}

	var notifType domain.NotificationType
	var title, message string
	if req.Role == domain.PartyCustomer {
		customer, err := s.customerRepo.FindCustomerByID(ctx, partyID)
		if err != nil {
			return nil, err
		}
		if customer.ShopID != shopID {
			return nil, apperrors.ErrNotFound
		}
		txn.Type = domain.PaymentReceived
		txn.CustomerID = &partyID
		txn.CustomerName = customer.Name
		notifType = domain.NotifyPaymentReceived
		title = "Payment received"
		message = fmt.Sprintf("Received %s from %s", req.Amount.StringFixed(2), customer.Name)
	} else {
		vendor, err := s.vendorRepo.FindVendorByID(ctx, partyID)
		if err != nil {
			return nil, err
		}
		if vendor.ShopID != shopID {
			return nil, apperrors.ErrNotFound
		}
		txn.Type = domain.PaymentMade
		txn.VendorID = &partyID
		notifType = domain.NotifyPaymentMade
		title = "Payment made"
		message = fmt.Sprintf("Paid %s to %s", req.Amount.StringFixed(2), vendor.Name)
	}

	if _, err := s.txnRepo.SaveTransaction(ctx, txn, nil, nil); err != nil {
		return nil, err
	}

	s.afterCommit(ctx, txn, nil, notifType, title, message)
	return &txn, nil
}

// CreateExpense records a standalone expense.
func (s *transactionService) CreateExpense(ctx context.Context, shopID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Transaction, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, creatorUserID, shopID, domain.RoleMember); err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: expense description is required", apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		ShopID:        shopID,
		Type:          domain.Expense,
		Amount:        req.Amount,
		PaidAmount:    req.Amount,
		DueAmount:     decimal.Zero,
		Discount:      decimal.Zero,
		Status:        domain.StatusCompleted,
		Date:          now,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Description,
		AuditFields:   newAuditFields(creatorUserID, now),
	}

	if _, err := s.txnRepo.SaveTransaction(ctx, txn, nil, nil); err != nil {
		return nil, err
	}

	s.afterCommit(ctx, txn, nil, domain.NotifyExpenseRecorded,
		"Expense recorded",
		fmt.Sprintf("Expense of %s: %s", req.Amount.StringFixed(2), req.Description))
	return &txn, nil
}

// SetTransactionStatus transitions a transaction's workflow status. Completing a
// pending transaction settles it in full; cancelling voids it and reverses its
// stock deltas. Cancelled transactions allow no further transitions.
func (s *transactionService) SetTransactionStatus(ctx context.Context, shopID, transactionID string, status domain.TransactionStatus, requestingUserID string) (*domain.Transaction, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleMember); err != nil {
		return nil, err
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.ShopID != shopID {
		return nil, apperrors.ErrNotFound
	}
	if txn.Status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: transaction %s is cancelled", apperrors.ErrConflict, transactionID)
	}

	now := time.Now()
	switch status {
	case domain.StatusCompleted:
		if err := s.txnRepo.SettleTransaction(ctx, shopID, transactionID, requestingUserID, now); err != nil {
			return nil, err
		}
		s.afterStatusChange(ctx, *txn, nil)

	case domain.StatusCancelled:
		items, err := s.txnRepo.FindItemsByTransactionID(ctx, transactionID)
		if err != nil {
			return nil, err
		}
		reversed := domain.ReverseStockDeltas(domain.StockDeltasFor(txn.Type, items))
		touched, err := s.txnRepo.CancelTransaction(ctx, shopID, transactionID, reversed, requestingUserID, now)
		if err != nil {
			return nil, err
		}
		s.afterStatusChange(ctx, *txn, touched)

	default:
		return nil, fmt.Errorf("%w: cannot transition to status %q", apperrors.ErrValidation, status)
	}

	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

// GetTransaction retrieves a transaction with its items.
func (s *transactionService) GetTransaction(ctx context.Context, shopID, transactionID, requestingUserID string) (*domain.Transaction, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.ShopID != shopID {
		return nil, apperrors.ErrNotFound
	}

	if txn.Type.HasItems() {
		items, err := s.txnRepo.FindItemsByTransactionID(ctx, transactionID)
		if err != nil {
			return nil, err
		}
		txn.Items = items
	}
	return txn, nil
}

// ListTransactions retrieves a filtered page of a shop's transactions.
func (s *transactionService) ListTransactions(ctx context.Context, shopID, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	filter := portsrepo.ListTransactionsFilter{Type: params.Type, Limit: limit, Offset: offset}

	transactions, total, err := s.txnRepo.ListTransactionsByShop(ctx, shopID, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		Pagination:   dto.Pagination{Total: total, Limit: limit, Offset: offset},
	}, nil
}

// ListPartyLedger retrieves a party's transaction history with cursor pagination.
func (s *transactionService) ListPartyLedger(ctx context.Context, shopID, partyID string, role domain.PartyRole, requestingUserID string, params dto.PartyLedgerParams) (*dto.PartyLedgerResponse, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown party role %q", apperrors.ErrValidation, role)
	}

	transactions, nextToken, err := s.txnRepo.ListTransactionsByParty(ctx, shopID, partyID, role, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.PartyLedgerResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}

// afterCommit runs the non-fatal post-commit side effects of a recorded
// transaction: balance cache invalidation, the transaction notification and the
// low-stock check. Failures are logged and never surfaced to the caller.
func (s *transactionService) afterCommit(ctx context.Context, txn domain.Transaction, touchedProductIDs []string, notifType domain.NotificationType, title, message string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if partyID, role, ok := txn.PartyID(); ok {
		s.balanceSvc.InvalidatePartyBalance(ctx, txn.ShopID, partyID, role)
	}

	if _, err := s.notifier.Emit(ctx, domain.Event{
		ShopID:    txn.ShopID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		ActionURL: "/transactions/" + txn.TransactionID,
	}); err != nil {
		logger.Warn("failed to emit transaction notification", "transaction_id", txn.TransactionID, "error", err)
	}

	s.emitLowStock(ctx, txn.ShopID, touchedProductIDs)
}

// afterStatusChange mirrors afterCommit for settle and cancel transitions.
func (s *transactionService) afterStatusChange(ctx context.Context, txn domain.Transaction, touchedProductIDs []string) {
	if partyID, role, ok := txn.PartyID(); ok {
		s.balanceSvc.InvalidatePartyBalance(ctx, txn.ShopID, partyID, role)
	}
	s.emitLowStock(ctx, txn.ShopID, touchedProductIDs)
}

// emitLowStock emits a low_stock notification for every touched product now at or
// below its minimum level.
func (s *transactionService) emitLowStock(ctx context.Context, shopID string, productIDs []string) {
	if len(productIDs) == 0 {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	lowStock, err := s.productRepo.FindLowStockAmong(ctx, shopID, productIDs)
	if err != nil {
		logger.Warn("low stock check failed", "shop_id", shopID, "error", err)
		return
	}
	for _, product := range lowStock {
		if _, err := s.notifier.Emit(ctx, domain.Event{
			ShopID:    shopID,
			Type:      domain.NotifyLowStock,
			Title:     "Low stock",
			Message:   fmt.Sprintf("%s is down to %d units (minimum %d)", product.Name, product.StockQuantity, product.MinStockLevel),
			ActionURL: "/products/" + product.ProductID,
		}); err != nil {
			logger.Warn("failed to emit low stock notification", "product_id", product.ProductID, "error", err)
		}
	}
}

// statusForDue maps the settlement state of a new transaction to its initial status.
func statusForDue(due decimal.Decimal) domain.TransactionStatus {
	if due.IsZero() {
		return domain.StatusCompleted
	}
	return domain.StatusPending
}

// newAuditFields stamps creation audit columns for a new record.
func newAuditFields(userID string, at time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     at,
		CreatedBy:     userID,
		LastUpdatedAt: at,
		LastUpdatedBy: userID,
	}
}
