package services

import (
	"context"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
)

// PurchaseSvcFacade manages purchase invoices and their journal linkage.
type PurchaseSvcFacade interface {
	// CreatePurchaseInvoice records the invoice and posts its journal entry
	// in one transaction, keyed by the invoice number as reference.
	CreatePurchaseInvoice(ctx context.Context, tenantID string, req dto.CreatePurchaseInvoiceRequest, userID string) (*domain.PurchaseInvoice, error)

	// GetPurchaseInvoiceByID retrieves an invoice by its unique identifier.
	GetPurchaseInvoiceByID(ctx context.Context, tenantID string, invoiceID string, userID string) (*domain.PurchaseInvoice, error)

	// ListPurchaseInvoices retrieves a paginated list of invoices.
	ListPurchaseInvoices(ctx context.Context, tenantID string, limit int, offset int, userID string) ([]domain.PurchaseInvoice, error)
}
