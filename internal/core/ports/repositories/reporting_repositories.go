package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
)

// ReportingRepository aggregates posted lines for financial reports. All
// figures are derived at query time; no cached balances are consulted.
type ReportingRepository interface {
	// GetTrialBalanceData retrieves trial balance data as of a specific date
	GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData retrieves revenue/income and expense aggregates
	// over a date range
	GetProfitAndLossData(ctx context.Context, tenantID string, from time.Time, to time.Time) (revenue []domain.AccountAmount, expenses []domain.AccountAmount, err error)

	// GetBalanceSheetData retrieves asset, liability and equity aggregates
	// as of a specific date
	GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) (assets []domain.AccountAmount, liabilities []domain.AccountAmount, equity []domain.AccountAmount, err error)
}
