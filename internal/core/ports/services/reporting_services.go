package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
)

// ReportingSvcFacade builds aggregate financial reports from posted lines.
type ReportingSvcFacade interface {
	// TrialBalance lists every account with its derived debit or credit
	// balance as of a date.
	TrialBalance(ctx context.Context, tenantID string, asOf time.Time, userID string) ([]domain.TrialBalanceRow, error)

	// ProfitAndLoss aggregates revenue, income and expense accounts over a range.
	ProfitAndLoss(ctx context.Context, tenantID string, from time.Time, to time.Time, userID string) (*domain.PAndLReport, error)

	// BalanceSheet aggregates asset, liability and equity accounts as of a date.
	BalanceSheet(ctx context.Context, tenantID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error)
}
