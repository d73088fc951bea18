package services

import (
	"time"

	"github.com/shoplite/shop_management_app/internal/cache"
	portsrepo "github.com/shoplite/shop_management_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
)

// ContainerConfig carries the tunables the services need beyond their repositories.
type ContainerConfig struct {
	JWTSecret    string
	JWTExpiry    time.Duration
	JWTIssuer    string
	GraceWindow  time.Duration
	BalanceCache cache.BalanceCache
}

// NewServiceContainer wires every service over the repository provider. The shop
// service doubles as the authorizer for all shop-scoped operations.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg ContainerConfig) *portssvc.ServiceContainer {
	balanceCache := cfg.BalanceCache
	if balanceCache == nil {
		balanceCache = cache.NoopBalanceCache{}
	}

	shopSvc := NewShopService(repos.ShopRepo)
	notificationSvc := NewNotificationService(repos.NotificationRepo, shopSvc)
	balanceSvc := NewBalanceService(repos.TransactionRepo, shopSvc, balanceCache)
	transactionSvc := NewTransactionService(
		repos.TransactionRepo,
		repos.ProductRepo,
		repos.CustomerRepo,
		repos.VendorRepo,
		shopSvc,
		balanceSvc,
		notificationSvc,
	)
	overdueSvc := NewOverdueService(repos.TransactionRepo, shopSvc, notificationSvc, cfg.GraceWindow)

	return &portssvc.ServiceContainer{
		Transaction:  transactionSvc,
		Balance:      balanceSvc,
		Overdue:      overdueSvc,
		Notification: notificationSvc,
		Product:      NewProductService(repos.ProductRepo, shopSvc),
		Party:        NewPartyService(repos.CustomerRepo, repos.VendorRepo, shopSvc),
		Shop:         shopSvc,
		User:         NewUserService(repos.UserRepo),
		Auth:         NewAuthService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer),
		Reporting:    NewReportingService(repos.ReportingRepo, shopSvc),
	}
}
