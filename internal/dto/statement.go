package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementParams carries the date range of a statement request.
type StatementParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// StatementRowResponse is one statement line for the API.
type StatementRowResponse struct {
	EntryID     string          `json:"entryID,omitempty"`
	EntryNumber int64           `json:"entryNumber,omitempty"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Reference   string          `json:"reference,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	IsOpening   bool            `json:"isOpening,omitempty"`
}

// StatementResponse is the API representation of an account or party statement.
type StatementResponse struct {
	Entity         domain.StatementEntity `json:"entity"`
	From           time.Time              `json:"from"`
	To             time.Time              `json:"to"`
	OpeningBalance decimal.Decimal        `json:"openingBalance"`
	ClosingBalance decimal.Decimal        `json:"closingBalance"`
	Rows           []StatementRowResponse `json:"rows"`
}

// ToStatementResponse maps a domain statement to its API representation.
func ToStatementResponse(s *domain.AccountStatement) StatementResponse {
	rows := make([]StatementRowResponse, len(s.Rows))
	for i, r := range s.Rows {
		rows[i] = StatementRowResponse{
			EntryID:     r.EntryID,
			EntryNumber: r.EntryNumber,
			Date:        r.Date,
			Description: r.Description,
			Reference:   r.Reference,
			Debit:       r.Debit,
			Credit:      r.Credit,
			Balance:     r.Balance,
			IsOpening:   r.IsOpening,
		}
	}
	return StatementResponse{
		Entity:         s.Entity,
		From:           s.From,
		To:             s.To,
		OpeningBalance: s.OpeningBalance,
		ClosingBalance: s.ClosingBalance,
		Rows:           rows,
	}
}
