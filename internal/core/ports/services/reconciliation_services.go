package services

import (
	"context"

	"github.com/SscSPs/ledger_engine_app/internal/dto"
)

// ReconciliationSvcFacade audits source documents against the journal and
// posts the entries that are missing.
type ReconciliationSvcFacade interface {
	// SyncPurchasesToLedger walks every purchase invoice in the tenant,
	// posts a journal entry for each one that has none, and reports counts.
	SyncPurchasesToLedger(ctx context.Context, tenantID string, userID string) (*dto.SyncResult, error)
}
