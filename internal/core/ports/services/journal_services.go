package services

import (
	"context"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry, optionally with its lines.
	GetEntryByID(ctx context.Context, tenantID string, entryID string, userID string, withLines bool) (*domain.JournalEntry, error)

	// GetEntryByReference looks up an entry by its idempotency reference.
	GetEntryByReference(ctx context.Context, tenantID string, reference string, userID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a token-paginated page of entries.
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams, userID string) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// PostEntry validates and persists a balanced entry atomically.
	PostEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// UpdateEntry changes the mutable header fields of a posted entry.
	UpdateEntry(ctx context.Context, tenantID string, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// ReverseEntry posts a mirror-image entry and links the pair.
	ReverseEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
