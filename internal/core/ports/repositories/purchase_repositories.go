package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
)

// PurchaseRepository persists purchase invoices, the source documents the
// reconciliation pass audits against the journal.
type PurchaseRepository interface {
	SavePurchaseInvoice(ctx context.Context, invoice *domain.PurchaseInvoice) error
	FindPurchaseInvoiceByID(ctx context.Context, tenantID string, invoiceID string) (*domain.PurchaseInvoice, error)
	ListPurchaseInvoices(ctx context.Context, tenantID string, limit int, offset int) ([]domain.PurchaseInvoice, error)
	// ListAllPurchaseInvoices streams every invoice for a reconciliation pass.
	ListAllPurchaseInvoices(ctx context.Context, tenantID string) ([]domain.PurchaseInvoice, error)
}
