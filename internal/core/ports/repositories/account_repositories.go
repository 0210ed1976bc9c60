package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountRepository persists the chart of accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account *domain.Account) error
	UpdateAccount(ctx context.Context, account *domain.Account) error
	FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)
	// FindAccountByNormalizedName matches on lower(trim(name)).
	FindAccountByNormalizedName(ctx context.Context, tenantID string, name string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Account, error)
	ListAccountsByType(ctx context.Context, tenantID string, accountType domain.AccountType) ([]domain.Account, error)
	// SumAccountMovements returns total debits and credits ever posted to the
	// account. Balances are derived from this, never stored.
	SumAccountMovements(ctx context.Context, tenantID string, accountID string) (debits decimal.Decimal, credits decimal.Decimal, err error)
	DeactivateAccount(ctx context.Context, tenantID string, accountID string, deactivatedBy string) error
}
