package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementRow is one line of an account statement with the running balance
// after the row's movement has been applied.
type StatementRow struct {
	EntryID     string          `json:"entryID,omitempty"`
	EntryNumber int64           `json:"entryNumber,omitempty"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Reference   string          `json:"reference,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	IsOpening   bool            `json:"isOpening,omitempty"` // Synthetic leading opening-balance row
}

// StatementEntity describes whose statement this is. Error is set (and the
// statement left empty) when a party could not be resolved to a ledger
// account; this is a data-completeness condition, not a failure.
type StatementEntity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"` // ACCOUNT, CUSTOMER or SUPPLIER
	Error string `json:"error,omitempty"`
}

// AccountStatement is the full statement for an account or party over a
// date range.
type AccountStatement struct {
	Entity         StatementEntity `json:"entity"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Rows           []StatementRow  `json:"rows"`
}
