package services

import (
	"context"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
)

// TenantAuthorizerSvc checks a user's role within a tenant. Services embed
// this to guard their operations.
type TenantAuthorizerSvc interface {
	// AuthorizeUserAction verifies the user holds at least the required role
	// in the tenant. Returns apperrors.ErrForbidden otherwise.
	AuthorizeUserAction(ctx context.Context, tenantID string, userID string, required domain.UserTenantRole) error
}

// TenantReaderSvc defines read operations for tenants
type TenantReaderSvc interface {
	// GetTenantByID retrieves a tenant by its unique identifier.
	GetTenantByID(ctx context.Context, tenantID string, userID string) (*domain.Tenant, error)

	// ListTenantsForUser lists the tenants a user belongs to.
	ListTenantsForUser(ctx context.Context, userID string) ([]domain.Tenant, error)
}

// TenantWriterSvc defines write operations for tenants
type TenantWriterSvc interface {
	// CreateTenant persists a new tenant and grants the creator the admin role.
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, userID string) (*domain.Tenant, error)

	// AddUserToTenant grants a user a role within the tenant.
	AddUserToTenant(ctx context.Context, tenantID string, req dto.AddTenantUserRequest, actingUserID string) error
}

// TenantSvcFacade combines all tenant-related service interfaces
type TenantSvcFacade interface {
	TenantAuthorizerSvc
	TenantReaderSvc
	TenantWriterSvc
}
