package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
)

// TenantRepository persists tenants and user-tenant role grants.
type TenantRepository interface {
	SaveTenant(ctx context.Context, tenant *domain.Tenant) error
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
	ListTenantsByUser(ctx context.Context, userID string) ([]domain.Tenant, error)
	SaveUserTenant(ctx context.Context, userTenant *domain.UserTenant) error
	FindUserTenant(ctx context.Context, userID string, tenantID string) (*domain.UserTenant, error)
}
