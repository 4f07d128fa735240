package domain

import "time"

// AuditOptions controls a single audit run.
type AuditOptions struct {
	// Deadline bounds the run. When it expires mid-comparison the
	// remaining pairs are skipped and the result is flagged Incomplete.
	// Zero means no deadline beyond the caller's context.
	Deadline time.Duration

	// EmbedWorkers caps how many cache-miss documents are embedded
	// concurrently. Zero selects the service default.
	EmbedWorkers int
}
