package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseInvoice is the database representation of a purchase source document.
type PurchaseInvoice struct {
	InvoiceID     string
	TenantID      string
	InvoiceNumber string
	SupplierName  string
	SupplierID    *string
	InvoiceDate   time.Time
	CurrencyCode  string
	Total         decimal.Decimal
	AmountPaid    decimal.Decimal
	AuditFields
}
