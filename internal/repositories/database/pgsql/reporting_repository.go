package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shoplite/shop_management_app/internal/apperrors"
	"github.com/shoplite/shop_management_app/internal/core/domain"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetShopSummary aggregates ledger totals for a shop between from and to inclusive.
// A single pass over the period's non-cancelled rows produces every figure.
func (r *PgxReportingRepository) GetShopSummary(ctx context.Context, shopID string, from, to time.Time) (*domain.ShopSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN type = 'SALE' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'PURCHASE' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'PAYMENT_RECEIVED' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'PAYMENT_MADE' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'SALE' THEN due_amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'PURCHASE' THEN due_amount ELSE 0 END), 0),
			COUNT(*)
		FROM transactions
		WHERE shop_id = $1 AND status <> $2 AND date >= $3 AND date <= $4;
	`

	var summary domain.ShopSummary
	err := r.Pool.QueryRow(ctx, query, shopID, string(domain.StatusCancelled), from, to).Scan(
		&summary.TotalSales,
		&summary.TotalPurchases,
		&summary.TotalExpenses,
		&summary.PaymentsReceived,
		&summary.PaymentsMade,
		&summary.TotalReceivable,
		&summary.TotalPayable,
		&summary.TransactionCount,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate summary for shop "+shopID, err)
	}

	// Receivable and payable net out payments recorded in the same period
	summary.TotalReceivable = summary.TotalReceivable.Sub(summary.PaymentsReceived)
	if summary.TotalReceivable.IsNegative() {
		summary.TotalReceivable = decimal.Zero
	}
	summary.TotalPayable = summary.TotalPayable.Sub(summary.PaymentsMade)
	if summary.TotalPayable.IsNegative() {
		summary.TotalPayable = decimal.Zero
	}

	return &summary, nil
}
