package dto

import (
	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
)

// CreatePartyRequest is the payload for creating a customer or supplier.
// When AccountID is nil a ledger account is created and linked automatically.
type CreatePartyRequest struct {
	PartyType string  `json:"partyType" binding:"required,oneof=CUSTOMER SUPPLIER"`
	Name      string  `json:"name" binding:"required"`
	AccountID *string `json:"accountID"`
}

// PartyResponse is the API representation of a party.
type PartyResponse struct {
	PartyID   string  `json:"partyID"`
	TenantID  string  `json:"tenantID"`
	PartyType string  `json:"partyType"`
	Name      string  `json:"name"`
	AccountID *string `json:"accountID,omitempty"`
	IsActive  bool    `json:"isActive"`
}

// ToPartyResponses maps a slice of domain parties.
func ToPartyResponses(parties []domain.Party) []PartyResponse {
	resp := make([]PartyResponse, len(parties))
	for i := range parties {
		resp[i] = ToPartyResponse(&parties[i])
	}
	return resp
}

// ToPartyResponse maps a domain party to its API representation.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:   p.PartyID,
		TenantID:  p.TenantID,
		PartyType: string(p.PartyType),
		Name:      p.Name,
		AccountID: p.AccountID,
		IsActive:  p.IsActive,
	}
}
