package mapping

import (
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	"github.com/SscSPs/ledger_engine_app/internal/models"
)

// ToModelParty converts a domain party for DB storage.
func ToModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID:     d.PartyID,
		TenantID:    d.TenantID,
		PartyType:   string(d.PartyType),
		Name:        d.Name,
		AccountID:   d.AccountID,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainParty converts a DB party row to the domain representation.
func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:     m.PartyID,
		TenantID:    m.TenantID,
		PartyType:   domain.PartyType(m.PartyType),
		Name:        m.Name,
		AccountID:   m.AccountID,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPurchaseInvoice converts a domain purchase invoice for DB storage.
func ToModelPurchaseInvoice(d domain.PurchaseInvoice) models.PurchaseInvoice {
	return models.PurchaseInvoice{
		InvoiceID:     d.InvoiceID,
		TenantID:      d.TenantID,
		InvoiceNumber: d.InvoiceNumber,
		SupplierName:  d.SupplierName,
		SupplierID:    d.SupplierID,
		InvoiceDate:   d.InvoiceDate,
		CurrencyCode:  d.CurrencyCode,
		Total:         d.Total,
		AmountPaid:    d.AmountPaid,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchaseInvoice converts a DB purchase invoice row to the domain representation.
func ToDomainPurchaseInvoice(m models.PurchaseInvoice) domain.PurchaseInvoice {
	return domain.PurchaseInvoice{
		InvoiceID:     m.InvoiceID,
		TenantID:      m.TenantID,
		InvoiceNumber: m.InvoiceNumber,
		SupplierName:  m.SupplierName,
		SupplierID:    m.SupplierID,
		InvoiceDate:   m.InvoiceDate,
		CurrencyCode:  m.CurrencyCode,
		Total:         m.Total,
		AmountPaid:    m.AmountPaid,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
