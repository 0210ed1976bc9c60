package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
)

var (
	ErrInvoiceNumberRequired = errors.New("invoice number is required")
	ErrInvoiceTotalInvalid   = errors.New("invoice total must be positive")
	ErrOverpaidInvoice       = errors.New("amount paid must not exceed the invoice total")
)

// purchaseService records purchase invoices and posts their journal entries
// in the same transaction, so a committed invoice always has its ledger
// counterpart. The reconciliation service exists for rows where that promise
// was broken by older code paths.
type purchaseService struct {
	BaseService
	purchaseRepo portsrepo.PurchaseRepository
	partyRepo    portsrepo.PartyRepository
	journalSvc   portssvc.JournalSvcFacade
	accountSvc   portssvc.AccountSvcFacade
	txManager    portsrepo.TransactionManager
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(purchaseRepo portsrepo.PurchaseRepository, partyRepo portsrepo.PartyRepository, journalSvc portssvc.JournalSvcFacade, accountSvc portssvc.AccountSvcFacade, txManager portsrepo.TransactionManager, authorizer portssvc.TenantAuthorizerSvc) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		BaseService:  BaseService{TenantAuthorizer: authorizer},
		purchaseRepo: purchaseRepo,
		partyRepo:    partyRepo,
		journalSvc:   journalSvc,
		accountSvc:   accountSvc,
		txManager:    txManager,
	}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// CreatePurchaseInvoice records the invoice and posts its journal entry,
// keyed by the invoice number as reference, atomically.
func (s *purchaseService) CreatePurchaseInvoice(ctx context.Context, tenantID string, req dto.CreatePurchaseInvoiceRequest, userID string) (*domain.PurchaseInvoice, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		return nil, ErrInvoiceNumberRequired
	}
	if !req.Total.GreaterThan(decimal.Zero) {
		return nil, ErrInvoiceTotalInvalid
	}
	if req.AmountPaid.GreaterThan(req.Total) {
		return nil, ErrOverpaidInvoice
	}

	now := time.Now()
	invoice := domain.PurchaseInvoice{
		InvoiceID:     uuid.NewString(),
		TenantID:      tenantID,
		InvoiceNumber: number,
		SupplierName:  strings.TrimSpace(req.SupplierName),
		SupplierID:    req.SupplierID,
		InvoiceDate:   req.InvoiceDate,
		CurrencyCode:  req.CurrencyCode,
		Total:         req.Total,
		AmountPaid:    req.AmountPaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	purchases, err := s.accountSvc.FindOrCreateAccountByName(ctx, tenantID, purchasesAccountName, domain.Expense, invoice.CurrencyCode, userID)
	if err != nil {
		return nil, err
	}
	partyAccount, err := s.resolvePartyAccount(ctx, tenantID, &invoice, userID)
	if err != nil {
		return nil, err
	}

	lines := []dto.CreateJournalLineRequest{
		{AccountID: purchases.AccountID, Debit: invoice.Total, Description: "Purchase " + number},
		{AccountID: partyAccount.AccountID, Credit: invoice.Total, Description: "Payable to " + invoice.SupplierName},
	}
	if invoice.AmountPaid.GreaterThan(decimal.Zero) {
		cash, err := s.accountSvc.FindOrCreateAccountByName(ctx, tenantID, cashAccountName, domain.Asset, invoice.CurrencyCode, userID)
		if err != nil {
			return nil, err
		}
		lines = append(lines,
			dto.CreateJournalLineRequest{AccountID: partyAccount.AccountID, Debit: invoice.AmountPaid, Description: "Payment for " + number},
			dto.CreateJournalLineRequest{AccountID: cash.AccountID, Credit: invoice.AmountPaid, Description: "Payment for " + number},
		)
	}

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.purchaseRepo.SavePurchaseInvoice(txCtx, &invoice); err != nil {
			return err
		}
		_, err := s.journalSvc.PostEntry(txCtx, tenantID, dto.CreateJournalEntryRequest{
			Date:         invoice.InvoiceDate,
			Description:  "Purchase invoice " + number + " - " + invoice.SupplierName,
			Reference:    number,
			CurrencyCode: invoice.CurrencyCode,
			Lines:        lines,
		}, userID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create purchase invoice", slog.String("invoice_number", number))
		return nil, err
	}

	s.LogInfo(ctx, "Purchase invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", number))
	return &invoice, nil
}

// resolvePartyAccount prefers the explicit supplier link and falls back to
// name matching.
func (s *purchaseService) resolvePartyAccount(ctx context.Context, tenantID string, invoice *domain.PurchaseInvoice, userID string) (*domain.Account, error) {
	if invoice.SupplierID != nil && *invoice.SupplierID != "" {
		party, err := s.partyRepo.FindPartyByID(ctx, tenantID, *invoice.SupplierID)
		if err != nil {
			return nil, err
		}
		if party.AccountID != nil && *party.AccountID != "" {
			return s.accountSvc.GetAccountByID(ctx, tenantID, *party.AccountID, userID)
		}
	}
	return s.accountSvc.FindOrCreateAccountByName(ctx, tenantID, invoice.SupplierName, domain.Liability, invoice.CurrencyCode, userID)
}

// GetPurchaseInvoiceByID retrieves one invoice.
func (s *purchaseService) GetPurchaseInvoiceByID(ctx context.Context, tenantID string, invoiceID string, userID string) (*domain.PurchaseInvoice, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.purchaseRepo.FindPurchaseInvoiceByID(ctx, tenantID, invoiceID)
}

// ListPurchaseInvoices retrieves a page of invoices.
func (s *purchaseService) ListPurchaseInvoices(ctx context.Context, tenantID string, limit int, offset int, userID string) ([]domain.PurchaseInvoice, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.purchaseRepo.ListPurchaseInvoices(ctx, tenantID, limit, offset)
}
