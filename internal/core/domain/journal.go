package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple journal lines. Once posted an entry is immutable; corrections go
// through reversal entries, never edits.
type JournalEntry struct {
	EntryID      string      `json:"entryID"`      // Primary Key (UUID)
	TenantID     string      `json:"tenantID"`     // FK -> tenants.tenant_id (NON-NULL)
	EntryNumber  int64       `json:"entryNumber"`  // Monotonic per tenant, assigned at posting time
	FiscalYearID string      `json:"fiscalYearID"` // Nullable fiscal year reference
	EntryDate    time.Time   `json:"entryDate"`    // Date the event occurred
	Description  string      `json:"description"`  // Nullable user description
	Reference    string      `json:"reference"`    // Correlates to a source document number; unique per tenant when set
	CurrencyCode string      `json:"currencyCode"` // Primary currency of the entry (Not Null)
	Status       EntryStatus `json:"status"`       // Default: Posted

	// Reversal linkage. OriginalEntryID is set on the reversing entry,
	// ReversingEntryID on the entry that was reversed.
	OriginalEntryID  *string `json:"originalEntryID,omitempty"`
	ReversingEntryID *string `json:"reversingEntryID,omitempty"`

	// Lines are loaded separately unless explicitly requested.
	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one debit or credit leg of a journal entry. Exactly one of
// Debit/Credit is nonzero; both are always >= 0.
type JournalLine struct {
	LineID      string          `json:"lineID"`    // Primary Key (UUID)
	EntryID     string          `json:"entryID"`   // FK -> journal_entries.entry_id (Not Null)
	AccountID   string          `json:"accountID"` // FK -> accounts.account_id (Not Null)
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"` // Nullable

	// Populated on statement/list reads for display continuity.
	EntryDate        time.Time `json:"entryDate,omitempty"`
	EntryNumber      int64     `json:"entryNumber,omitempty"`
	EntryDescription string    `json:"entryDescription,omitempty"`
	EntryReference   string    `json:"entryReference,omitempty"`
	AuditFields
}
