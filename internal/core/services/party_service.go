package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
)

var ErrPartyNameRequired = errors.New("party name is required")

// partyService manages customers and suppliers. Every new party gets an
// explicit ledger account link at creation time; name-based account matching
// exists only as a fallback for rows that predate the link.
type partyService struct {
	BaseService
	partyRepo  portsrepo.PartyRepository
	tenantRepo portsrepo.TenantRepository
	accountSvc portssvc.AccountSvcFacade
}

// NewPartyService creates a new party service.
func NewPartyService(partyRepo portsrepo.PartyRepository, tenantRepo portsrepo.TenantRepository, accountSvc portssvc.AccountSvcFacade, authorizer portssvc.TenantAuthorizerSvc) portssvc.PartySvcFacade {
	return &partyService{
		BaseService: BaseService{TenantAuthorizer: authorizer},
		partyRepo:   partyRepo,
		tenantRepo:  tenantRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

// accountTypeForParty maps the party kind to the nature of its ledger
// account: customers owe us (asset), we owe suppliers (liability).
func accountTypeForParty(partyType domain.PartyType) domain.AccountType {
	if partyType == domain.Customer {
		return domain.Asset
	}
	return domain.Liability
}

// CreateParty persists a party. When no account is supplied one is created in
// the tenant's default currency and linked.
func (s *partyService) CreateParty(ctx context.Context, tenantID string, req dto.CreatePartyRequest, userID string) (*domain.Party, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleMember); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrPartyNameRequired
	}

	partyType := domain.PartyType(req.PartyType)
	accountID := req.AccountID
	if accountID == nil || *accountID == "" {
		tenant, err := s.tenantRepo.FindTenantByID(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		account, err := s.accountSvc.FindOrCreateAccountByName(ctx, tenantID, req.Name, accountTypeForParty(partyType), tenant.DefaultCurrencyCode, userID)
		if err != nil {
			return nil, err
		}
		accountID = &account.AccountID
	} else {
		// Reject links to accounts outside the tenant.
		if _, err := s.accountSvc.GetAccountByID(ctx, tenantID, *accountID, userID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	party := domain.Party{
		PartyID:   uuid.NewString(),
		TenantID:  tenantID,
		PartyType: partyType,
		Name:      strings.TrimSpace(req.Name),
		AccountID: accountID,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.partyRepo.SaveParty(ctx, &party); err != nil {
		s.LogError(ctx, err, "Failed to save party", slog.String("tenant_id", tenantID))
		return nil, err
	}

	s.LogInfo(ctx, "Party created", slog.String("party_id", party.PartyID), slog.String("type", string(partyType)))
	return &party, nil
}

// GetPartyByID retrieves one party.
func (s *partyService) GetPartyByID(ctx context.Context, tenantID string, partyID string, userID string) (*domain.Party, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.partyRepo.FindPartyByID(ctx, tenantID, partyID)
}

// ListParties retrieves a page of parties of one type.
func (s *partyService) ListParties(ctx context.Context, tenantID string, partyType domain.PartyType, limit int, offset int, userID string) ([]domain.Party, error) {
	if err := s.AuthorizeUser(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.partyRepo.ListParties(ctx, tenantID, partyType, limit, offset)
}
