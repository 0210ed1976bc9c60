package models

// Party is the database representation of a customer or supplier.
type Party struct {
	PartyID   string
	TenantID  string
	PartyType string
	Name      string
	AccountID *string
	IsActive  bool
	AuditFields
}
