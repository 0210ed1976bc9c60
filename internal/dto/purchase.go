package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePurchaseInvoiceRequest records a purchase source document. The
// corresponding journal entry is posted in the same request, with the invoice
// number as its reference.
type CreatePurchaseInvoiceRequest struct {
	InvoiceNumber string          `json:"invoiceNumber" binding:"required"`
	SupplierName  string          `json:"supplierName" binding:"required"`
	SupplierID    *string         `json:"supplierID"`
	InvoiceDate   time.Time       `json:"invoiceDate" binding:"required"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3"`
	Total         decimal.Decimal `json:"total" binding:"decimalgtzero"`
	AmountPaid    decimal.Decimal `json:"amountPaid" binding:"decimalnonneg"`
}

// PurchaseInvoiceResponse is the API representation of a purchase invoice.
type PurchaseInvoiceResponse struct {
	InvoiceID     string          `json:"invoiceID"`
	TenantID      string          `json:"tenantID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	SupplierName  string          `json:"supplierName"`
	SupplierID    *string         `json:"supplierID,omitempty"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	CurrencyCode  string          `json:"currencyCode"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
}

// ToPurchaseInvoiceResponses maps a slice of domain purchase invoices.
func ToPurchaseInvoiceResponses(invoices []domain.PurchaseInvoice) []PurchaseInvoiceResponse {
	resp := make([]PurchaseInvoiceResponse, len(invoices))
	for i := range invoices {
		resp[i] = ToPurchaseInvoiceResponse(&invoices[i])
	}
	return resp
}

// ToPurchaseInvoiceResponse maps a domain purchase invoice to its API representation.
func ToPurchaseInvoiceResponse(p *domain.PurchaseInvoice) PurchaseInvoiceResponse {
	return PurchaseInvoiceResponse{
		InvoiceID:     p.InvoiceID,
		TenantID:      p.TenantID,
		InvoiceNumber: p.InvoiceNumber,
		SupplierName:  p.SupplierName,
		SupplierID:    p.SupplierID,
		InvoiceDate:   p.InvoiceDate,
		CurrencyCode:  p.CurrencyCode,
		Total:         p.Total,
		AmountPaid:    p.AmountPaid,
	}
}
