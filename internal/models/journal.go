package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus at the storage boundary.
type EntryStatus string

// JournalEntry is the database representation of a journal entry header.
type JournalEntry struct {
	EntryID          string
	TenantID         string
	EntryNumber      int64
	FiscalYearID     string
	EntryDate        time.Time
	Description      string
	Reference        string
	CurrencyCode     string
	Status           EntryStatus
	OriginalEntryID  *string
	ReversingEntryID *string
	AuditFields
}

// JournalLine is the database representation of one entry leg.
type JournalLine struct {
	LineID      string
	EntryID     string
	AccountID   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string

	// Joined from journal_entries on statement/list reads.
	EntryDate        time.Time
	EntryNumber      int64
	EntryDescription string
	EntryReference   string
	AuditFields
}
