package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/ledger_engine_app/internal/apperrors"
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine_app/internal/models"
	"github.com/SscSPs/ledger_engine_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const purchaseColumns = `invoice_id, tenant_id, invoice_number, supplier_name, supplier_id, invoice_date, currency_code, total, amount_paid, created_at, created_by, last_updated_at, last_updated_by`

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for purchase invoices.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepository {
	return &PgxPurchaseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseRepository = (*PgxPurchaseRepository)(nil)

// SavePurchaseInvoice inserts a new invoice row.
func (r *PgxPurchaseRepository) SavePurchaseInvoice(ctx context.Context, invoice *domain.PurchaseInvoice) error {
	m := mapping.ToModelPurchaseInvoice(*invoice)
	query := `
		INSERT INTO purchase_invoices (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.InvoiceID, m.TenantID, m.InvoiceNumber, m.SupplierName, m.SupplierID,
		m.InvoiceDate, m.CurrencyCode, m.Total, m.AmountPaid,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert purchase invoice "+m.InvoiceID, err)
	}
	return nil
}

func scanPurchaseInvoice(row pgx.Row) (*domain.PurchaseInvoice, error) {
	var m models.PurchaseInvoice
	err := row.Scan(
		&m.InvoiceID, &m.TenantID, &m.InvoiceNumber, &m.SupplierName, &m.SupplierID,
		&m.InvoiceDate, &m.CurrencyCode, &m.Total, &m.AmountPaid,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan purchase invoice row", err)
	}
	invoice := mapping.ToDomainPurchaseInvoice(m)
	return &invoice, nil
}

// FindPurchaseInvoiceByID retrieves one invoice scoped to a tenant.
func (r *PgxPurchaseRepository) FindPurchaseInvoiceByID(ctx context.Context, tenantID string, invoiceID string) (*domain.PurchaseInvoice, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchase_invoices WHERE tenant_id = $1 AND invoice_id = $2;`
	return scanPurchaseInvoice(r.db(ctx).QueryRow(ctx, query, tenantID, invoiceID))
}

// ListPurchaseInvoices retrieves a page of invoices, newest first.
func (r *PgxPurchaseRepository) ListPurchaseInvoices(ctx context.Context, tenantID string, limit int, offset int) ([]domain.PurchaseInvoice, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchase_invoices
		WHERE tenant_id = $1
		ORDER BY invoice_date DESC, invoice_number DESC
		LIMIT $2 OFFSET $3;
	`
	return r.queryInvoices(ctx, query, tenantID, limit, offset)
}

// ListAllPurchaseInvoices streams every invoice for a reconciliation pass,
// oldest first so backfilled entry numbers follow document order.
func (r *PgxPurchaseRepository) ListAllPurchaseInvoices(ctx context.Context, tenantID string) ([]domain.PurchaseInvoice, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchase_invoices
		WHERE tenant_id = $1
		ORDER BY invoice_date ASC, invoice_number ASC;
	`
	return r.queryInvoices(ctx, query, tenantID)
}

func (r *PgxPurchaseRepository) queryInvoices(ctx context.Context, query string, args ...any) ([]domain.PurchaseInvoice, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query purchase invoices", err)
	}
	defer rows.Close()

	invoices := []domain.PurchaseInvoice{}
	for rows.Next() {
		invoice, err := scanPurchaseInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating purchase invoice rows", err)
	}
	return invoices, nil
}
