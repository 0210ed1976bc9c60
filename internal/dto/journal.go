package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is one debit or credit leg of a new entry.
// Exactly one of Debit/Credit must be positive; the service enforces this.
type CreateJournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit" binding:"decimalnonneg"`
	Credit      decimal.Decimal `json:"credit" binding:"decimalnonneg"`
	Description string          `json:"description"`
}

// CreateJournalEntryRequest is the payload for posting a balanced entry.
type CreateJournalEntryRequest struct {
	FiscalYearID string                     `json:"fiscalYearID"`
	Date         time.Time                  `json:"date" binding:"required"`
	Description  string                     `json:"description"`
	Reference    string                     `json:"reference"`
	CurrencyCode string                     `json:"currencyCode" binding:"required,len=3"`
	Lines        []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest carries the only header fields that may change
// after posting; lines and amounts are immutable.
type UpdateJournalEntryRequest struct {
	Date        *time.Time `json:"date"`
	Description *string    `json:"description"`
}

// JournalLineResponse is the API representation of an entry leg.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// JournalEntryResponse is the API representation of an entry.
type JournalEntryResponse struct {
	EntryID          string                `json:"entryID"`
	TenantID         string                `json:"tenantID"`
	EntryNumber      int64                 `json:"entryNumber"`
	FiscalYearID     string                `json:"fiscalYearID,omitempty"`
	Date             time.Time             `json:"date"`
	Description      string                `json:"description,omitempty"`
	Reference        string                `json:"reference,omitempty"`
	CurrencyCode     string                `json:"currencyCode"`
	Status           string                `json:"status"`
	OriginalEntryID  *string               `json:"originalEntryID,omitempty"`
	ReversingEntryID *string               `json:"reversingEntryID,omitempty"`
	Lines            []JournalLineResponse `json:"lines,omitempty"`
}

// ListEntriesParams carries paging options for entry listings.
type ListEntriesParams struct {
	Limit            int     `form:"limit"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals"`
	IncludeLines     bool    `form:"includeLines"`
}

// ListEntriesResponse is a page of entries plus the token for the next page.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponse maps a domain line to its API representation.
func ToJournalLineResponse(l domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		EntryID:     l.EntryID,
		AccountID:   l.AccountID,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
	}
}

// ToJournalEntryResponse maps a domain entry (and any loaded lines) to its
// API representation.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:          e.EntryID,
		TenantID:         e.TenantID,
		EntryNumber:      e.EntryNumber,
		FiscalYearID:     e.FiscalYearID,
		Date:             e.EntryDate,
		Description:      e.Description,
		Reference:        e.Reference,
		CurrencyCode:     e.CurrencyCode,
		Status:           string(e.Status),
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = ToJournalLineResponse(l)
		}
	}
	return resp
}
