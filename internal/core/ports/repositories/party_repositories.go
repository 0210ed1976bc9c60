package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
)

// PartyRepository persists customers and suppliers.
type PartyRepository interface {
	SaveParty(ctx context.Context, party *domain.Party) error
	UpdateParty(ctx context.Context, party *domain.Party) error
	FindPartyByID(ctx context.Context, tenantID string, partyID string) (*domain.Party, error)
	// FindPartyByNormalizedName matches on lower(trim(name)) within a type.
	FindPartyByNormalizedName(ctx context.Context, tenantID string, partyType domain.PartyType, name string) (*domain.Party, error)
	ListParties(ctx context.Context, tenantID string, partyType domain.PartyType, limit int, offset int) ([]domain.Party, error)
}
