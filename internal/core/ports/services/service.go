package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Transaction  TransactionSvcFacade
	Balance      BalanceSvcFacade
	Overdue      OverdueSvcFacade
	Notification NotificationSvcFacade
	Product      ProductSvcFacade
	Party        PartySvcFacade
	Shop         ShopSvcFacade
	User         UserSvcFacade
	Auth         AuthSvcFacade
	Reporting    ReportingSvcFacade
}
