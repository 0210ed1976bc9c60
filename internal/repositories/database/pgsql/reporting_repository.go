package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/apperrors"
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for report aggregation.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTrialBalanceData aggregates per-account debit/credit totals as of a
// date and presents the net on the account's natural side.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       SUM(l.debit) AS total_debit,
		       SUM(l.credit) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE a.tenant_id = $1 AND e.entry_date <= $2
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.db(ctx).Query(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var totalDebit, totalCredit decimal.Decimal
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &row.AccountType, &totalDebit, &totalCredit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		// Show the net on one side only.
		net := totalDebit.Sub(totalCredit)
		if net.IsNegative() {
			row.Credit = net.Neg()
			row.Debit = decimal.Zero
		} else {
			row.Debit = net
			row.Credit = decimal.Zero
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}

// GetProfitAndLossData aggregates revenue/income and expense accounts over a
// range, each netted by the account's nature.
func (r *PgxReportingRepository) GetProfitAndLossData(ctx context.Context, tenantID string, from time.Time, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT a.account_id, a.name, a.account_type,
		       SUM(l.debit), SUM(l.credit)
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE a.tenant_id = $1
			AND e.entry_date >= $2 AND e.entry_date <= $3
			AND a.account_type IN ('REVENUE', 'INCOME', 'EXPENSE')
		GROUP BY a.account_id, a.name, a.account_type
		ORDER BY a.name;
	`
	rows, err := r.db(ctx).Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query profit and loss data", err)
	}
	defer rows.Close()

	revenue := []domain.AccountAmount{}
	expenses := []domain.AccountAmount{}
	for rows.Next() {
		var accountID, name string
		var accountType domain.AccountType
		var debits, credits decimal.Decimal
		if err := rows.Scan(&accountID, &name, &accountType, &debits, &credits); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan profit and loss row", err)
		}
		if accountType == domain.Expense {
			expenses = append(expenses, domain.AccountAmount{AccountID: accountID, Name: name, NetAmount: debits.Sub(credits)})
		} else {
			revenue = append(revenue, domain.AccountAmount{AccountID: accountID, Name: name, NetAmount: credits.Sub(debits)})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating profit and loss rows", err)
	}
	return revenue, expenses, nil
}

// GetBalanceSheetData aggregates asset, liability and equity accounts as of
// a date, each netted by the account's nature.
func (r *PgxReportingRepository) GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT a.account_id, a.name, a.account_type,
		       SUM(l.debit), SUM(l.credit)
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE a.tenant_id = $1
			AND e.entry_date <= $2
			AND a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
		GROUP BY a.account_id, a.name, a.account_type
		ORDER BY a.name;
	`
	rows, err := r.db(ctx).Query(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, nil, nil, apperrors.NewAppError(500, "failed to query balance sheet data", err)
	}
	defer rows.Close()

	assets := []domain.AccountAmount{}
	liabilities := []domain.AccountAmount{}
	equity := []domain.AccountAmount{}
	for rows.Next() {
		var accountID, name string
		var accountType domain.AccountType
		var debits, credits decimal.Decimal
		if err := rows.Scan(&accountID, &name, &accountType, &debits, &credits); err != nil {
			return nil, nil, nil, apperrors.NewAppError(500, "failed to scan balance sheet row", err)
		}
		switch accountType {
		case domain.Asset:
			assets = append(assets, domain.AccountAmount{AccountID: accountID, Name: name, NetAmount: debits.Sub(credits)})
		case domain.Liability:
			liabilities = append(liabilities, domain.AccountAmount{AccountID: accountID, Name: name, NetAmount: credits.Sub(debits)})
		case domain.Equity:
			equity = append(equity, domain.AccountAmount{AccountID: accountID, Name: name, NetAmount: credits.Sub(debits)})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, apperrors.NewAppError(500, "error iterating balance sheet rows", err)
	}
	return assets, liabilities, equity, nil
}
