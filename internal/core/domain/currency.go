package domain

// Currency represents a currency journal entries can be denominated in.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (ISO 4217, e.g. "USD")
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"` // Decimal places, typically 2
	AuditFields
}
