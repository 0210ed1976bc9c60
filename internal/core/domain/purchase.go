package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseInvoice is a source document. Creating one must deterministically
// produce a journal entry whose reference equals InvoiceNumber; the
// reconciliation service backfills entries for invoices where that did not
// happen.
type PurchaseInvoice struct {
	InvoiceID     string          `json:"invoiceID"` // Primary Key (UUID)
	TenantID      string          `json:"tenantID"`
	InvoiceNumber string          `json:"invoiceNumber"` // Unique per tenant
	SupplierName  string          `json:"supplierName"`
	SupplierID    *string         `json:"supplierID,omitempty"` // Nullable FK -> parties.party_id
	InvoiceDate   time.Time       `json:"invoiceDate"`
	CurrencyCode  string          `json:"currencyCode"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	AuditFields
}
