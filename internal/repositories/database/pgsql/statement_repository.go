package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/apperrors"
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine_app/internal/models"
	"github.com/SscSPs/ledger_engine_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates a new repository for statement reads.
func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepository {
	return &PgxStatementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StatementRepository = (*PgxStatementRepository)(nil)

// SumLinesBefore totals debits and credits against the account strictly
// before cutoff. Reversals are ordinary posted entries and are included.
func (r *PgxStatementRepository) SumLinesBefore(ctx context.Context, tenantID string, accountID string, cutoff time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND l.account_id = $2 AND e.entry_date < $3;
	`
	var debits, credits decimal.Decimal
	if err := r.db(ctx).QueryRow(ctx, query, tenantID, accountID, cutoff).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum lines before cutoff for account "+accountID, err)
	}
	return debits, credits, nil
}

// FindLinesInRange returns lines dated in [from, to] joined with their entry
// header, ordered by (entry_date, entry_number) so statements are
// deterministic across runs.
func (r *PgxStatementRepository) FindLinesInRange(ctx context.Context, tenantID string, accountID string, from time.Time, to time.Time) ([]domain.JournalLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit, l.credit, l.description,
		       e.entry_date, e.entry_number, e.description, COALESCE(e.reference, ''),
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND l.account_id = $2 AND e.entry_date >= $3 AND e.entry_date <= $4
		ORDER BY e.entry_date ASC, e.entry_number ASC, l.line_id ASC;
	`
	rows, err := r.db(ctx).Query(ctx, query, tenantID, accountID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query statement lines for account "+accountID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		err := rows.Scan(
			&l.LineID, &l.EntryID, &l.AccountID, &l.Debit, &l.Credit, &l.Description,
			&l.EntryDate, &l.EntryNumber, &l.EntryDescription, &l.EntryReference,
			&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan statement line row", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating statement line rows", err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}
