package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine_app/internal/apperrors"
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
	"github.com/SscSPs/ledger_engine_app/internal/utils/accounting"
)

var (
	ErrInvalidAccountType  = errors.New("invalid account type")
	ErrParentAccountWrong  = errors.New("parent account must exist in the same tenant")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrUnknownCurrency     = errors.New("currency is not registered")
	ErrAccountNameRequired = errors.New("account name is required")
)

// accountService manages the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	currencySvc portssvc.CurrencySvcFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepository, currencySvc portssvc.CurrencySvcFacade, authorizer portssvc.TenantAuthorizerSvc) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: BaseService{TenantAuthorizer: authorizer},
		accountRepo: accountRepo,
		currencySvc: currencySvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// normalizeAccountName is the canonical form used for name matching:
// surrounding whitespace stripped, inner runs collapsed, lowercased.
func normalizeAccountName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// synthesizeCode generates a tenant-unique account code when the caller did
// not supply one.
func synthesizeCode(accountType domain.AccountType) string {
	prefix := "ACC"
	if len(accountType) >= 3 {
		prefix = string(accountType)[:3]
	}
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.NewString()[:8]))
}

// CreateAccount persists a new account after validating its type, currency
// and parent linkage.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrAccountNameRequired
	}

	accountType := domain.AccountType(req.AccountType)
	if _, err := accounting.NatureOf(accountType); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccountType, req.AccountType)
	}

	if _, err := s.currencySvc.GetCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, req.CurrencyCode)
		}
		return nil, err
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, tenantID, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, ErrParentAccountWrong
			}
			return nil, err
		}
		parentID = parent.AccountID
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = synthesizeCode(accountType)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		TenantID:        tenantID,
		Code:            code,
		Name:            strings.TrimSpace(req.Name),
		AccountType:     accountType,
		CurrencyCode:    req.CurrencyCode,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, &account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("tenant_id", tenantID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// UpdateAccount changes the mutable fields of an account.
func (s *accountService) UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrAccountNameRequired
		}
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// FindOrCreateAccountByName resolves an account by its normalized name,
// creating one when no match exists. Used by reconciliation to attach
// entries to named accounts without caring about IDs.
func (s *accountService) FindOrCreateAccountByName(ctx context.Context, tenantID string, name string, accountType domain.AccountType, currencyCode string, userID string) (*domain.Account, error) {
	normalized := normalizeAccountName(name)
	if normalized == "" {
		return nil, ErrAccountNameRequired
	}

	account, err := s.accountRepo.FindAccountByNormalizedName(ctx, tenantID, normalized)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	created, err := s.CreateAccount(ctx, tenantID, dto.CreateAccountRequest{
		Name:         name,
		AccountType:  string(accountType),
		CurrencyCode: currencyCode,
	}, userID)
	if err != nil {
		// A concurrent creator may have won the race; fall back to the lookup.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.accountRepo.FindAccountByNormalizedName(ctx, tenantID, normalized)
		}
		return nil, err
	}
	s.LogInfo(ctx, "Account auto-created by name", slog.String("account_id", created.AccountID), slog.String("name", created.Name))
	return created, nil
}

// GetAccountByID retrieves one account.
func (s *accountService) GetAccountByID(ctx context.Context, tenantID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
}

// GetAccountByCode retrieves one account by its tenant-scoped code.
func (s *accountService) GetAccountByCode(ctx context.Context, tenantID string, code string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByCode(ctx, tenantID, code)
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
}

// ListAccounts retrieves a page of accounts.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, tenantID, limit, offset)
}

// CalculateAccountBalance derives the balance from posted lines, signed by
// the account's nature.
func (s *accountService) CalculateAccountBalance(ctx context.Context, tenantID string, accountID string, userID string) (decimal.Decimal, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return decimal.Zero, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	debits, credits, err := s.accountRepo.SumAccountMovements(ctx, tenantID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	nature, err := accounting.NatureOf(account.AccountType)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.SignedAmount(debits, credits, nature), nil
}

// DeactivateAccount marks an account inactive. Lines already posted against
// it stay untouched.
func (s *accountService) DeactivateAccount(ctx context.Context, tenantID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, userID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
