package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over a shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo:  newPgxTransactionRepository(pool),
		ProductRepo:      newPgxProductRepository(pool),
		CustomerRepo:     newPgxCustomerRepository(pool),
		VendorRepo:       newPgxVendorRepository(pool),
		NotificationRepo: newPgxNotificationRepository(pool),
		ShopRepo:         newPgxShopRepository(pool),
		UserRepo:         newPgxUserRepository(pool),
		ReportingRepo:    newPgxReportingRepository(pool),
	}
}
