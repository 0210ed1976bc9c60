package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
)

// ListEntriesFilter narrows and pages entry listings. Token-based paging keys
// on (entry_date, created_at) of the last row of the previous page.
type ListEntriesFilter struct {
	Limit            int
	AfterEntryDate   *time.Time
	AfterCreatedAt   *time.Time
	IncludeReversals bool
}

// JournalRepository persists journal entries and their lines.
type JournalRepository interface {
	// SaveEntry writes the entry header and all lines atomically, assigning
	// the next per-tenant entry number inside the same transaction.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry) error
	FindEntryByID(ctx context.Context, tenantID string, entryID string, withLines bool) (*domain.JournalEntry, error)
	// FindEntryByReference looks up a posted entry by its idempotency
	// reference. Returns apperrors.ErrNotFound when absent.
	FindEntryByReference(ctx context.Context, tenantID string, reference string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, tenantID string, filter ListEntriesFilter) ([]domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, tenantID string, entryID string) ([]domain.JournalLine, error)
	// UpdateEntryHeader persists the mutable header fields only.
	UpdateEntryHeader(ctx context.Context, entry *domain.JournalEntry) error
	// MarkEntryReversed stamps the original entry with its reversing entry.
	MarkEntryReversed(ctx context.Context, tenantID string, entryID string, reversingEntryID string, updatedBy string) error
}
