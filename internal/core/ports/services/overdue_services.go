package services

import (
	"context"
	"time"

	"github.com/shoplite/shop_management_app/internal/core/domain"
)

// OverdueSvcFacade scans the ledger for pending transactions whose due date has
// elapsed with outstanding balance. Read-only with respect to the ledger.
type OverdueSvcFacade interface {
	// FindOverdue returns the overdue transactions of a shop as of the given time.
	FindOverdue(ctx context.Context, shopID string, asOf time.Time, requestingUserID string) ([]domain.Transaction, error)

	// ScanAndNotify finds overdue transactions and emits an overdue_payment
	// notification for each. Dispatch failures are logged and skipped.
	ScanAndNotify(ctx context.Context, shopID string, asOf time.Time, requestingUserID string) ([]domain.Transaction, error)
}
