package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	txManager := NewPgxTransactionManager(dbPool)

	return &portsrepo.RepositoryProvider{
		TxManager:     txManager,
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool, txManager),
		StatementRepo: newPgxStatementRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
		PartyRepo:     newPgxPartyRepository(dbPool),
		PurchaseRepo:  newPgxPurchaseRepository(dbPool),
		TenantRepo:    newPgxTenantRepository(dbPool),
		CurrencyRepo:  newPgxCurrencyRepository(dbPool),
	}
}
