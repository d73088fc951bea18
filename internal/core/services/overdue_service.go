package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/middleware"
)

type overdueService struct {
	ledgerRepo  portsrepo.LedgerReader
	shopSvc     portssvc.ShopAuthorizerSvc
	notifier    portssvc.NotificationDispatcher
	graceWindow time.Duration
}

// NewOverdueService creates the overdue monitor. graceWindow applies to
// transactions carrying no explicit due date.
func NewOverdueService(ledgerRepo portsrepo.LedgerReader, shopSvc portssvc.ShopAuthorizerSvc, notifier portssvc.NotificationDispatcher, graceWindow time.Duration) portssvc.OverdueSvcFacade {
	return &overdueService{
		ledgerRepo:  ledgerRepo,
		shopSvc:     shopSvc,
		notifier:    notifier,
		graceWindow: graceWindow,
	}
}

// FindOverdue returns the shop's overdue transactions as of the given time.
// Read-only with respect to the ledger.
func (s *overdueService) FindOverdue(ctx context.Context, shopID string, asOf time.Time, requestingUserID string) ([]domain.Transaction, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindOverdueTransactions(ctx, shopID, asOf, s.graceWindow)
}

// ScanAndNotify finds overdue transactions and emits an overdue_payment
// notification for each. Dispatch failures are logged and skipped; the scan
// itself never writes to the ledger.
func (s *overdueService) ScanAndNotify(ctx context.Context, shopID string, asOf time.Time, requestingUserID string) ([]domain.Transaction, error) {
	if err := s.shopSvc.AuthorizeUserAction(ctx, requestingUserID, shopID, domain.RoleMember); err != nil {
		return nil, err
	}

	overdue, err := s.ledgerRepo.FindOverdueTransactions(ctx, shopID, asOf, s.graceWindow)
	if err != nil {
		return nil, err
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	for _, txn := range overdue {
		name := txn.CustomerName
		if name == "" {
			name = txn.TransactionID
		}
		if _, err := s.notifier.Emit(ctx, domain.Event{
			ShopID:    shopID,
			Type:      domain.NotifyOverduePayment,
			Title:     "Overdue payment",
			Message:   fmt.Sprintf("%s owes %s on an overdue transaction", name, txn.DueAmount.StringFixed(2)),
			ActionURL: "/transactions/" + txn.TransactionID,
		}); err != nil {
			logger.Warn("failed to emit overdue notification", "transaction_id", txn.TransactionID, "error", err)
		}
	}
	return overdue, nil
}
