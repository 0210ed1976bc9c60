package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account represents one node of a tenant's chart of accounts.
// Balances are derived from journal lines on demand; there is no
// persisted balance column to drift out of sync.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	TenantID        string      `json:"tenantID"`        // FK -> tenants.tenant_id (NON-NULL)
	Code            string      `json:"code"`            // Unique per tenant; synthesized when absent
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	CurrencyCode    string      `json:"currencyCode"`    // FK -> currencies.code (NON-NULL)
	ParentAccountID string      `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing tree)
	Description     string      `json:"description"`     // Nullable user description
	IsActive        bool        `json:"isActive"`        // Soft delete or status flag
	AuditFields
}
