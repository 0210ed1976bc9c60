package dto

// SyncResult summarizes one reconciliation pass over purchase invoices.
// The batch is never all-or-nothing: failures are counted per document and
// the pass continues.
type SyncResult struct {
	FixedCount   int `json:"fixedCount"`
	SkippedCount int `json:"skippedCount"`
	FailedCount  int `json:"failedCount"`
}
