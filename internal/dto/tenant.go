package dto

import (
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
)

// CreateTenantRequest is the payload for creating a tenant.
type CreateTenantRequest struct {
	Name                string `json:"name" binding:"required"`
	Description         string `json:"description"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode" binding:"required,len=3"`
}

// AddTenantUserRequest grants a user a role within a tenant.
type AddTenantUserRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// TenantResponse is the API representation of a tenant.
type TenantResponse struct {
	TenantID            string `json:"tenantID"`
	Name                string `json:"name"`
	Description         string `json:"description,omitempty"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode"`
	IsActive            bool   `json:"isActive"`
}

// ToTenantResponse maps a domain tenant to its API representation.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:            t.TenantID,
		Name:                t.Name,
		Description:         t.Description,
		DefaultCurrencyCode: t.DefaultCurrencyCode,
		IsActive:            t.IsActive,
	}
}
