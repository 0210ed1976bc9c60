package domain

// Tenant is the isolation boundary. Every entity carries a TenantID and every
// query filters by it; there is no cross-tenant visibility and no ambient
// "current tenant" state anywhere in the core.
type Tenant struct {
	TenantID            string `json:"tenantID"` // Primary Key (UUID)
	Name                string `json:"name"`
	Description         string `json:"description"`
	DefaultCurrencyCode string `json:"defaultCurrencyCode"`
	IsActive            bool   `json:"isActive"`
	AuditFields
}

// UserTenantRole defines the role of a user within a tenant.
type UserTenantRole string

const (
	RoleAdmin    UserTenantRole = "ADMIN"
	RoleMember   UserTenantRole = "MEMBER"
	RoleReadOnly UserTenantRole = "READONLY"
)

// UserTenant links a user to a tenant with a role.
type UserTenant struct {
	UserID   string         `json:"userID"`
	TenantID string         `json:"tenantID"`
	Role     UserTenantRole `json:"role"`
	AuditFields
}

// canActAs reports whether role satisfies required, using the
// ADMIN > MEMBER > READONLY ordering.
func (role UserTenantRole) CanActAs(required UserTenantRole) bool {
	rank := map[UserTenantRole]int{RoleReadOnly: 1, RoleMember: 2, RoleAdmin: 3}
	return rank[role] >= rank[required]
}
