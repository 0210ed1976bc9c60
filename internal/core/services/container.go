package services

import (
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Tenant service first since every other service authorizes through it
	container.Tenant = NewTenantService(repos.TenantRepo, repos.TxManager)
	authorizer := container.Tenant.(portssvc.TenantAuthorizerSvc)

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Account = NewAccountService(repos.AccountRepo, container.Currency, authorizer)
	container.Journal = NewJournalService(repos.JournalRepo, container.Account, repos.TxManager, authorizer)
	container.Statement = NewStatementService(repos.StatementRepo, repos.AccountRepo, repos.PartyRepo, authorizer)
	container.Reporting = NewReportingService(repos.ReportingRepo, WithReportingTenantAuthorizer(authorizer))
	container.Party = NewPartyService(repos.PartyRepo, repos.TenantRepo, container.Account, authorizer)
	container.Purchase = NewPurchaseService(repos.PurchaseRepo, repos.PartyRepo, container.Journal, container.Account, repos.TxManager, authorizer)
	container.Reconciliation = NewReconciliationService(repos.PurchaseRepo, repos.PartyRepo, container.Journal, container.Account, authorizer)

	return container
}
