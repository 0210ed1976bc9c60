package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementRepository reads the line data that statements are built from.
// Reversed pairs are included: a reversal is just another posted entry.
type StatementRepository interface {
	// SumLinesBefore totals debits and credits against the account strictly
	// before cutoff. Feeds the opening balance.
	SumLinesBefore(ctx context.Context, tenantID string, accountID string, cutoff time.Time) (debits decimal.Decimal, credits decimal.Decimal, err error)
	// FindLinesInRange returns lines dated in [from, to] joined with their
	// entry header, ordered by (entry_date ASC, entry_number ASC).
	FindLinesInRange(ctx context.Context, tenantID string, accountID string, from time.Time, to time.Time) ([]domain.JournalLine, error)
}
