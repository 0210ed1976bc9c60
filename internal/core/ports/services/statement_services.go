package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
)

// StatementSvcFacade builds dated statements with running balances.
type StatementSvcFacade interface {
	// GetAccountStatement builds a statement for one account over [from, to].
	GetAccountStatement(ctx context.Context, tenantID string, accountID string, from time.Time, to time.Time, userID string) (*domain.AccountStatement, error)

	// GetPartyStatement builds a statement for a party's linked account. A
	// party without a resolvable account yields an empty statement with the
	// failure noted on the entity, not an error.
	GetPartyStatement(ctx context.Context, tenantID string, partyID string, from time.Time, to time.Time, userID string) (*domain.AccountStatement, error)
}
