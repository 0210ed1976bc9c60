package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/ledger_engine_app/internal/apperrors"
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
	"github.com/shopspring/decimal"
)

// Account names the repair pass resolves via find-or-create. Legacy data
// links parties to accounts by name only, so these heuristics remain the
// fallback when no explicit account link exists.
const (
	purchasesAccountName = "Purchases"
	cashAccountName      = "Cash"
)

// reconciliationService backfills journal entries for purchase invoices that
// have none. The invoice number doubles as the entry's idempotency reference.
type reconciliationService struct {
	BaseService
	purchaseRepo portsrepo.PurchaseRepository
	partyRepo    portsrepo.PartyRepository
	journalSvc   portssvc.JournalSvcFacade
	accountSvc   portssvc.AccountSvcFacade
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(purchaseRepo portsrepo.PurchaseRepository, partyRepo portsrepo.PartyRepository, journalSvc portssvc.JournalSvcFacade, accountSvc portssvc.AccountSvcFacade, authorizer portssvc.TenantAuthorizerSvc) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		BaseService:  BaseService{TenantAuthorizer: authorizer},
		purchaseRepo: purchaseRepo,
		partyRepo:    partyRepo,
		journalSvc:   journalSvc,
		accountSvc:   accountSvc,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// SyncPurchasesToLedger walks every purchase invoice in the tenant and posts
// a journal entry for each one that has none. The pass is idempotent: a
// second run with no new invoices fixes nothing. One failing invoice is
// counted and skipped, never aborting the batch.
func (s *reconciliationService) SyncPurchasesToLedger(ctx context.Context, tenantID string, userID string) (*dto.SyncResult, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	invoices, err := s.purchaseRepo.ListAllPurchaseInvoices(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := dto.SyncResult{}
	for i := range invoices {
		invoice := &invoices[i]
		synced, err := s.syncOne(ctx, tenantID, invoice, userID)
		switch {
		case err != nil:
			result.FailedCount++
			s.LogError(ctx, err, "Invoice reconciliation failed",
				slog.String("invoice_id", invoice.InvoiceID),
				slog.String("invoice_number", invoice.InvoiceNumber))
		case synced:
			result.FixedCount++
		default:
			result.SkippedCount++
		}
	}

	s.LogInfo(ctx, "Reconciliation pass finished",
		slog.String("tenant_id", tenantID),
		slog.Int("fixed", result.FixedCount),
		slog.Int("skipped", result.SkippedCount),
		slog.Int("failed", result.FailedCount))
	return &result, nil
}

// syncOne posts the missing entry for one invoice. Returns false with a nil
// error when the invoice already has its entry.
func (s *reconciliationService) syncOne(ctx context.Context, tenantID string, invoice *domain.PurchaseInvoice, userID string) (bool, error) {
	_, err := s.journalSvc.GetEntryByReference(ctx, tenantID, invoice.InvoiceNumber, userID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}

	purchases, err := s.accountSvc.FindOrCreateAccountByName(ctx, tenantID, purchasesAccountName, domain.Expense, invoice.CurrencyCode, userID)
	if err != nil {
		return false, err
	}
	partyAccount, err := s.resolvePartyAccount(ctx, tenantID, invoice, userID)
	if err != nil {
		return false, err
	}

	lines := []dto.CreateJournalLineRequest{
		{AccountID: purchases.AccountID, Debit: invoice.Total, Description: "Purchase " + invoice.InvoiceNumber},
		{AccountID: partyAccount.AccountID, Credit: invoice.Total, Description: "Payable to " + invoice.SupplierName},
	}

	// amountPaid settles part of the liability immediately: debit the party
	// back down, credit cash.
	if invoice.AmountPaid.GreaterThan(decimal.Zero) {
		cash, err := s.accountSvc.FindOrCreateAccountByName(ctx, tenantID, cashAccountName, domain.Asset, invoice.CurrencyCode, userID)
		if err != nil {
			return false, err
		}
		lines = append(lines,
			dto.CreateJournalLineRequest{AccountID: partyAccount.AccountID, Debit: invoice.AmountPaid, Description: "Payment for " + invoice.InvoiceNumber},
			dto.CreateJournalLineRequest{AccountID: cash.AccountID, Credit: invoice.AmountPaid, Description: "Payment for " + invoice.InvoiceNumber},
		)
	}

	_, err = s.journalSvc.PostEntry(ctx, tenantID, dto.CreateJournalEntryRequest{
		Date:         invoice.InvoiceDate,
		Description:  "Purchase invoice " + invoice.InvoiceNumber + " - " + invoice.SupplierName,
		Reference:    invoice.InvoiceNumber,
		CurrencyCode: invoice.CurrencyCode,
		Lines:        lines,
	}, userID)
	if err != nil {
		// A concurrent pass may have posted the same reference first. The
		// unique constraint is the authoritative guard; treat it as skipped.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// resolvePartyAccount prefers the invoice's explicit supplier link and falls
// back to name matching for legacy rows.
func (s *reconciliationService) resolvePartyAccount(ctx context.Context, tenantID string, invoice *domain.PurchaseInvoice, userID string) (*domain.Account, error) {
	if invoice.SupplierID != nil && *invoice.SupplierID != "" {
		party, err := s.partyRepo.FindPartyByID(ctx, tenantID, *invoice.SupplierID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if err == nil && party.AccountID != nil && *party.AccountID != "" {
			return s.accountSvc.GetAccountByID(ctx, tenantID, *party.AccountID, userID)
		}
	}
	return s.accountSvc.FindOrCreateAccountByName(ctx, tenantID, invoice.SupplierName, domain.Liability, invoice.CurrencyCode, userID)
}
