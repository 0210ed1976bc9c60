package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_engine_app/internal/apperrors"
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
	"github.com/SscSPs/ledger_engine_app/internal/utils/accounting"
	"github.com/SscSPs/ledger_engine_app/internal/utils/pagination"
)

var (
	ErrUnbalancedEntry    = errors.New("entry debits and credits do not balance")
	ErrEntryMinLines      = errors.New("entry must have at least two lines")
	ErrEntryMinAccounts   = errors.New("entry must affect at least two different accounts")
	ErrCurrencyMismatch   = errors.New("account currency does not match entry currency")
	ErrEntryImmutable     = errors.New("posted entries are immutable; use a reversal")
	ErrAlreadyReversed    = errors.New("entry has already been reversed")
	ErrReversalOfReversal = errors.New("a reversing entry cannot itself be reversed")
	ErrInactiveAccount    = errors.New("account is inactive")
)

const defaultEntryPageSize = 50

// journalService posts, reverses and reads journal entries.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	accountSvc  portssvc.AccountSvcFacade
	txManager   portsrepo.TransactionManager
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountSvc portssvc.AccountSvcFacade, txManager portsrepo.TransactionManager, authorizer portssvc.TenantAuthorizerSvc) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: BaseService{TenantAuthorizer: authorizer},
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		txManager:   txManager,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines maps the request lines into domain lines with fresh IDs.
func buildLines(entryID string, reqLines []dto.CreateJournalLineRequest, userID string, now time.Time) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, rl := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   rl.AccountID,
			Debit:       rl.Debit,
			Credit:      rl.Credit,
			Description: rl.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return lines
}

// validateLineAccounts checks that every referenced account exists in the
// tenant, is active, uses the entry currency, and that at least two distinct
// accounts are touched.
func (s *journalService) validateLineAccounts(ctx context.Context, tenantID string, currencyCode string, lines []domain.JournalLine, userID string) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; !ok {
			seen[l.AccountID] = struct{}{}
			ids = append(ids, l.AccountID)
		}
	}
	if len(ids) < 2 {
		return ErrEntryMinAccounts
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, tenantID, ids, userID)
	if err != nil {
		return err
	}
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok {
			return apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", id))
		}
		if !account.IsActive {
			return fmt.Errorf("%w: %s", ErrInactiveAccount, id)
		}
		if account.CurrencyCode != currencyCode {
			return fmt.Errorf("%w: account %s is %s, entry is %s", ErrCurrencyMismatch, id, account.CurrencyCode, currencyCode)
		}
	}
	return nil
}

// PostEntry validates and persists a balanced entry. The repository assigns
// the per-tenant entry number and enforces reference uniqueness inside one
// transaction; a duplicate reference surfaces as apperrors.ErrDuplicate and
// must not be retried.
func (s *journalService) PostEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	if len(req.Lines) < 2 {
		return nil, ErrEntryMinLines
	}

	now := time.Now()
	entryID := uuid.NewString()
	lines := buildLines(entryID, req.Lines, userID, now)

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnbalancedEntry, err)
	}
	if err := s.validateLineAccounts(ctx, tenantID, req.CurrencyCode, lines, userID); err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:      entryID,
		TenantID:     tenantID,
		FiscalYearID: req.FiscalYearID,
		EntryDate:    req.Date,
		Description:  req.Description,
		Reference:    req.Reference,
		CurrencyCode: req.CurrencyCode,
		Status:       domain.Posted,
		Lines:        lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, &entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogInfo(ctx, "Duplicate reference rejected", slog.String("reference", req.Reference))
		} else {
			s.LogError(ctx, err, "Failed to save entry", slog.String("tenant_id", tenantID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.Int64("entry_number", entry.EntryNumber),
		slog.String("amount", accounting.EntryAmount(lines).String()))
	return &entry, nil
}

// UpdateEntry changes the mutable header fields of a posted entry. Lines and
// amounts never change after posting.
func (s *journalService) UpdateEntry(ctx context.Context, tenantID string, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID, false)
	if err != nil {
		return nil, err
	}
	if entry.Status == domain.Reversed {
		return nil, ErrAlreadyReversed
	}

	if req.Date != nil {
		entry.EntryDate = *req.Date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateEntryHeader(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to update entry header", slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

// ReverseEntry posts a mirror-image entry (debits and credits swapped) and
// links the pair. The original entry's amounts are untouched.
func (s *journalService) ReverseEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	original, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID, true)
	if err != nil {
		return nil, err
	}
	if original.OriginalEntryID != nil {
		return nil, ErrReversalOfReversal
	}
	if original.Status == domain.Reversed || original.ReversingEntryID != nil {
		return nil, ErrAlreadyReversed
	}
	if len(original.Lines) < 2 {
		return nil, ErrEntryMinLines
	}

	now := time.Now()
	reversalID := uuid.NewString()
	lines := make([]domain.JournalLine, len(original.Lines))
	for i, ol := range original.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     reversalID,
			AccountID:   ol.AccountID,
			Debit:       ol.Credit,
			Credit:      ol.Debit,
			Description: ol.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	originalID := original.EntryID
	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		TenantID:        tenantID,
		FiscalYearID:    original.FiscalYearID,
		EntryDate:       now,
		Description:     fmt.Sprintf("Reversal of entry #%d", original.EntryNumber),
		CurrencyCode:    original.CurrencyCode,
		Status:          domain.Posted,
		OriginalEntryID: &originalID,
		Lines:           lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.journalRepo.SaveEntry(txCtx, &reversal); err != nil {
			return err
		}
		return s.journalRepo.MarkEntryReversed(txCtx, tenantID, originalID, reversalID, userID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Entry reversed",
		slog.String("original_entry_id", originalID),
		slog.String("reversing_entry_id", reversalID))
	return &reversal, nil
}

// GetEntryByID retrieves an entry, optionally with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, tenantID string, entryID string, userID string, withLines bool) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.journalRepo.FindEntryByID(ctx, tenantID, entryID, withLines)
}

// GetEntryByReference looks up an entry by its idempotency reference.
func (s *journalService) GetEntryByReference(ctx context.Context, tenantID string, reference string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.journalRepo.FindEntryByReference(ctx, tenantID, reference)
}

// ListEntries retrieves a token-paginated page of entries, newest first.
func (s *journalService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams, userID string) (*dto.ListEntriesResponse, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = defaultEntryPageSize
	}

	filter := portsrepo.ListEntriesFilter{
		Limit:            limit + 1, // one extra row decides whether a next page exists
		IncludeReversals: params.IncludeReversals,
	}
	if params.NextToken != nil && *params.NextToken != "" {
		afterDate, afterCreated, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid page token", apperrors.ErrValidation)
		}
		filter.AfterEntryDate = &afterDate
		filter.AfterCreatedAt = &afterCreated
	}

	entries, err := s.journalRepo.ListEntries(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextToken = &token
	}

	resp := dto.ListEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		if params.IncludeLines {
			lines, err := s.journalRepo.FindLinesByEntryID(ctx, tenantID, entries[i].EntryID)
			if err != nil {
				return nil, err
			}
			entries[i].Lines = lines
		}
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return &resp, nil
}
