package repositories

import (
	"context"
)

// TransactionManager runs a function within a database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RepositoryProvider bundles every repository implementation for wiring into
// the service container.
type RepositoryProvider struct {
	TxManager     TransactionManager
	AccountRepo   AccountRepository
	JournalRepo   JournalRepository
	StatementRepo StatementRepository
	ReportingRepo ReportingRepository
	PartyRepo     PartyRepository
	PurchaseRepo  PurchaseRepository
	TenantRepo    TenantRepository
	CurrencyRepo  CurrencyRepository
}
