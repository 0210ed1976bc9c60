package domain

// PartyType distinguishes the two kinds of trading parties.
type PartyType string

const (
	Customer PartyType = "CUSTOMER"
	Supplier PartyType = "SUPPLIER"
)

// Party represents a customer or supplier. AccountID is the explicit link to
// the party's ledger account, assigned at creation time. Rows created before
// the link existed have AccountID == nil and are resolved by normalized name
// as a legacy fallback only.
type Party struct {
	PartyID   string    `json:"partyID"` // Primary Key (UUID)
	TenantID  string    `json:"tenantID"`
	PartyType PartyType `json:"partyType"`
	Name      string    `json:"name"`
	AccountID *string   `json:"accountID,omitempty"` // Nullable FK -> accounts.account_id
	IsActive  bool      `json:"isActive"`
	AuditFields
}
