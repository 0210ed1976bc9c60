package models

// Currency is the database representation of a currency row.
type Currency struct {
	CurrencyCode string
	Symbol       string
	Name         string
	Precision    int
	AuditFields
}
