package services

// ServiceContainer holds all the service facades the handlers depend on.
type ServiceContainer struct {
	Tenant         TenantSvcFacade
	Currency       CurrencySvcFacade
	Account        AccountSvcFacade
	Journal        JournalSvcFacade
	Statement      StatementSvcFacade
	Reporting      ReportingSvcFacade
	Reconciliation ReconciliationSvcFacade
	Party          PartySvcFacade
	Purchase       PurchaseSvcFacade
}
