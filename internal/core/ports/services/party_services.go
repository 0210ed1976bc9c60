package services

import (
	"context"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	"github.com/SscSPs/ledger_engine_app/internal/dto"
)

// PartyReaderSvc defines read operations for parties
type PartyReaderSvc interface {
	// GetPartyByID retrieves a party by its unique identifier.
	GetPartyByID(ctx context.Context, tenantID string, partyID string, userID string) (*domain.Party, error)

	// ListParties retrieves a paginated list of parties of one type.
	ListParties(ctx context.Context, tenantID string, partyType domain.PartyType, limit int, offset int, userID string) ([]domain.Party, error)
}

// PartyWriterSvc defines write operations for parties
type PartyWriterSvc interface {
	// CreateParty persists a party, creating and linking a ledger account
	// when none is supplied.
	CreateParty(ctx context.Context, tenantID string, req dto.CreatePartyRequest, userID string) (*domain.Party, error)
}

// PartySvcFacade combines all party-related service interfaces
type PartySvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
}
