package models

// Tenant is the database representation of a tenant row.
type Tenant struct {
	TenantID            string
	Name                string
	Description         string
	DefaultCurrencyCode string
	IsActive            bool
	AuditFields
}

// UserTenant links a user to a tenant with a role.
type UserTenant struct {
	UserID   string
	TenantID string
	Role     string
	AuditFields
}
