package models

// AccountType mirrors domain.AccountType at the storage boundary.
type AccountType string

// Account is the database representation of a chart-of-accounts row.
type Account struct {
	AccountID       string
	TenantID        string
	Code            string
	Name            string
	AccountType     AccountType
	CurrencyCode    string
	ParentAccountID string
	Description     string
	IsActive        bool
	AuditFields
}
