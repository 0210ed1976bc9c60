package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_engine_app/internal/apperrors"
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
)

var ErrTenantNameRequired = errors.New("tenant name is required")

// tenantService manages tenants and user-tenant role grants. It is also the
// authorizer the other services consult before touching tenant data.
type tenantService struct {
	BaseService
	tenantRepo portsrepo.TenantRepository
	txManager  portsrepo.TransactionManager
}

// NewTenantService creates a new tenant service.
func NewTenantService(tenantRepo portsrepo.TenantRepository, txManager portsrepo.TransactionManager) portssvc.TenantSvcFacade {
	svc := &tenantService{
		tenantRepo: tenantRepo,
		txManager:  txManager,
	}
	// The tenant service authorizes itself.
	svc.TenantAuthorizer = svc
	return svc
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// AuthorizeUserAction verifies the user holds at least the required role in
// the tenant.
func (s *tenantService) AuthorizeUserAction(ctx context.Context, tenantID string, userID string, required domain.UserTenantRole) error {
	userTenant, err := s.tenantRepo.FindUserTenant(ctx, userID, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s has no role in tenant %s", apperrors.ErrForbidden, userID, tenantID)
		}
		return err
	}
	if !userTenant.Role.CanActAs(required) {
		return fmt.Errorf("%w: role %s does not satisfy %s", apperrors.ErrForbidden, userTenant.Role, required)
	}
	return nil
}

// CreateTenant persists a new tenant and grants the creator the admin role
// in the same transaction.
func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, userID string) (*domain.Tenant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrTenantNameRequired
	}

	now := time.Now()
	tenant := domain.Tenant{
		TenantID:            uuid.NewString(),
		Name:                strings.TrimSpace(req.Name),
		Description:         req.Description,
		DefaultCurrencyCode: req.DefaultCurrencyCode,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	grant := domain.UserTenant{
		UserID:   userID,
		TenantID: tenant.TenantID,
		Role:     domain.RoleAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	err := s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.tenantRepo.SaveTenant(txCtx, &tenant); err != nil {
			return err
		}
		return s.tenantRepo.SaveUserTenant(txCtx, &grant)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create tenant", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Tenant created", slog.String("tenant_id", tenant.TenantID))
	return &tenant, nil
}

// AddUserToTenant grants a user a role within the tenant. Only admins may
// grant roles.
func (s *tenantService) AddUserToTenant(ctx context.Context, tenantID string, req dto.AddTenantUserRequest, actingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, tenantID, actingUserID, domain.RoleAdmin); err != nil {
		return err
	}

	now := time.Now()
	grant := domain.UserTenant{
		UserID:   req.UserID,
		TenantID: tenantID,
		Role:     domain.UserTenantRole(req.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}
	if err := s.tenantRepo.SaveUserTenant(ctx, &grant); err != nil {
		s.LogError(ctx, err, "Failed to add user to tenant", slog.String("tenant_id", tenantID), slog.String("user_id", req.UserID))
		return err
	}
	return nil
}

// GetTenantByID retrieves a tenant the user belongs to.
func (s *tenantService) GetTenantByID(ctx context.Context, tenantID string, userID string) (*domain.Tenant, error) {
	if err := s.AuthorizeUserAction(ctx, tenantID, userID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.tenantRepo.FindTenantByID(ctx, tenantID)
}

// ListTenantsForUser lists the tenants a user belongs to.
func (s *tenantService) ListTenantsForUser(ctx context.Context, userID string) ([]domain.Tenant, error) {
	return s.tenantRepo.ListTenantsByUser(ctx, userID)
}
