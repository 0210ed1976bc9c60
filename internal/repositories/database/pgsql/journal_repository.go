package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/SscSPs/ledger_engine_app/internal/apperrors"
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine_app/internal/models"
	"github.com/SscSPs/ledger_engine_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, tenant_id, entry_number, fiscal_year_id, entry_date, description, reference, currency_code, status, original_entry_id, reversing_entry_id, created_at, created_by, last_updated_at, last_updated_by`

// saveEntryAttempts bounds retries when two writers race for the same
// per-tenant entry number.
const saveEntryAttempts = 3

type PgxJournalRepository struct {
	BaseRepository
	txManager *PgxTransactionManager
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool, txManager *PgxTransactionManager) portsrepo.JournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		txManager:      txManager,
	}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// SaveEntry writes the header and every line in one transaction, assigning
// the next per-tenant entry number. The unique constraints on
// (tenant_id, entry_number) and (tenant_id, reference) are the authoritative
// guards under concurrency: number collisions are retried with a fresh
// number, reference collisions surface as ErrDuplicate and are never retried.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry) error {
	attempts := saveEntryAttempts
	if _, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		// A joined transaction is aborted by the first unique violation, so
		// further attempts inside it cannot succeed. Single shot; the caller
		// owns the rollback.
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		err := r.txManager.WithTx(ctx, func(txCtx context.Context) error {
			return r.saveEntryInTx(txCtx, entry)
		})
		if err == nil {
			return nil
		}
		if isEntryNumberCollision(err) {
			lastErr = err
			continue
		}
		return err
	}
	return apperrors.NewAppError(500, "failed to assign entry number after retries", lastErr)
}

// isEntryNumberCollision distinguishes the retryable unique violation (entry
// number race) from the non-retryable one (duplicate reference).
func isEntryNumberCollision(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return strings.Contains(pgErr.ConstraintName, "entry_number")
}

func (r *PgxJournalRepository) saveEntryInTx(ctx context.Context, entry *domain.JournalEntry) error {
	q := r.db(ctx)

	var nextNumber int64
	numberQuery := `SELECT COALESCE(MAX(entry_number), 0) + 1 FROM journal_entries WHERE tenant_id = $1;`
	if err := q.QueryRow(ctx, numberQuery, entry.TenantID).Scan(&nextNumber); err != nil {
		return apperrors.NewAppError(500, "failed to compute next entry number", err)
	}

	m := mapping.ToModelJournalEntry(*entry)
	headerQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := q.Exec(ctx, headerQuery,
		m.EntryID, m.TenantID, nextNumber, m.FiscalYearID, m.EntryDate, m.Description,
		m.Reference, m.CurrencyCode, m.Status, m.OriginalEntryID, m.ReversingEntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) && !isEntryNumberCollision(err) {
			return apperrors.ErrDuplicate
		}
		if isUniqueViolation(err) {
			return err // retried by SaveEntry with a fresh number
		}
		return apperrors.NewAppError(500, "failed to insert entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, line := range entry.Lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			ml.LineID, ml.EntryID, ml.AccountID, ml.Debit, ml.Credit, ml.Description,
			ml.CreatedAt, ml.CreatedBy, ml.LastUpdatedAt, ml.LastUpdatedBy,
		)
	}
	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+m.EntryID, err)
	}

	entry.EntryNumber = nextNumber
	return nil
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	var fiscalYearID, reference, originalID, reversingID sql.NullString
	err := row.Scan(
		&m.EntryID, &m.TenantID, &m.EntryNumber, &fiscalYearID, &m.EntryDate, &m.Description,
		&reference, &m.CurrencyCode, &m.Status, &originalID, &reversingID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
	}
	if fiscalYearID.Valid {
		m.FiscalYearID = fiscalYearID.String
	}
	if reference.Valid {
		m.Reference = reference.String
	}
	if originalID.Valid {
		m.OriginalEntryID = &originalID.String
	}
	if reversingID.Valid {
		m.ReversingEntryID = &reversingID.String
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindEntryByID retrieves one entry, optionally with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID string, entryID string, withLines bool) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`
	entry, err := scanEntry(r.db(ctx).QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		return nil, err
	}
	if withLines {
		lines, err := r.FindLinesByEntryID(ctx, tenantID, entryID)
		if err != nil {
			return nil, err
		}
		entry.Lines = lines
	}
	return entry, nil
}

// FindEntryByReference looks up an entry by its idempotency reference.
func (r *PgxJournalRepository) FindEntryByReference(ctx context.Context, tenantID string, reference string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND reference = $2;`
	return scanEntry(r.db(ctx).QueryRow(ctx, query, tenantID, reference))
}

// ListEntries retrieves a page of entries, newest first, using a
// (entry_date, created_at) tuple cursor.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID string, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1`
	args := []any{tenantID}

	if !filter.IncludeReversals {
		query += ` AND original_entry_id IS NULL`
	}
	if filter.AfterEntryDate != nil && filter.AfterCreatedAt != nil {
		query += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, *filter.AfterEntryDate, *filter.AfterCreatedAt)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, filter.Limit)

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for tenant "+tenantID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	return entries, nil
}

// FindLinesByEntryID retrieves all lines of one entry in insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, tenantID string, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit, l.credit, l.description,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND l.entry_id = $2
		ORDER BY l.created_at, l.line_id;
	`
	rows, err := r.db(ctx).Query(ctx, query, tenantID, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		err := rows.Scan(
			&l.LineID, &l.EntryID, &l.AccountID, &l.Debit, &l.Credit, &l.Description,
			&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows", err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// UpdateEntryHeader persists the mutable header fields only. Lines, amounts
// and the entry number never change here.
func (r *PgxJournalRepository) UpdateEntryHeader(ctx context.Context, entry *domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET entry_date = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		entry.TenantID, entry.EntryID, entry.EntryDate, entry.Description,
		entry.LastUpdatedAt, entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry header "+entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkEntryReversed stamps the original entry with its reversing entry and
// flips its status. Refuses to stamp twice.
func (r *PgxJournalRepository) MarkEntryReversed(ctx context.Context, tenantID string, entryID string, reversingEntryID string, updatedBy string) error {
	query := `
		UPDATE journal_entries
		SET status = $3, reversing_entry_id = $4, last_updated_at = NOW(), last_updated_by = $5
		WHERE tenant_id = $1 AND entry_id = $2 AND reversing_entry_id IS NULL;
	`
	tag, err := r.db(ctx).Exec(ctx, query, tenantID, entryID, string(domain.Reversed), reversingEntryID, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry reversed "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}
