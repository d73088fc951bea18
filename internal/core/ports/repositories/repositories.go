package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TransactionRepo  TransactionRepositoryFacade
	ProductRepo      ProductRepositoryFacade
	CustomerRepo     CustomerRepositoryFacade
	VendorRepo       VendorRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
	ShopRepo         ShopRepositoryFacade
	UserRepo         UserRepositoryFacade
	ReportingRepo    ReportingRepository
}
