package domain

import "time"

// DocumentReport is the per-document authenticity summary produced after
// arbitration. Documents with zero surviving chunks are omitted from the
// report entirely rather than reported as 0% or 100%.
type DocumentReport struct {
	// DocID identifies the document.
	DocID string `json:"doc_id"`

	// Author is the resolved (or fallback) document author.
	Author string `json:"author"`

	// AuthenticityScore is the percentage of chunks still marked
	// original, in [0, 100].
	AuthenticityScore float64 `json:"authenticity_score"`

	// OriginalChunks is the count of chunks still marked original.
	OriginalChunks int `json:"original_chunks"`

	// TotalChunks is the count of chunks that survived segmentation.
	TotalChunks int `json:"total_chunks"`

	// DuplicateSources maps source document id to the number of this
	// document's chunks attributed to it.
	DuplicateSources map[string]int `json:"duplicate_sources,omitempty"`

	// Degraded is true when any of this document's chunks carry
	// sentinel vectors from a failed embedding batch. Such chunks never
	// cross the similarity threshold, a known quality loss.
	Degraded bool `json:"degraded,omitempty"`
}

// AuditResult is the outcome of a full audit run.
type AuditResult struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// Reports holds one entry per document with at least one chunk,
	// in batch order.
	Reports []DocumentReport `json:"reports"`

	// TotalChunks is the registry size that was arbitrated.
	TotalChunks int `json:"total_chunks"`

	// DuplicateChunks is the number of chunks marked duplicate.
	DuplicateChunks int `json:"duplicate_chunks"`

	// CacheHits is the number of documents served from the chunk cache.
	CacheHits int `json:"cache_hits"`

	// Incomplete is true when the run deadline expired before the
	// comparison scan finished; the reports reflect the partially
	// arbitrated registry.
	Incomplete bool `json:"incomplete,omitempty"`

	// Warnings collects non-fatal degradations encountered during the
	// run (cache cold start, gateway failures, metadata fallbacks).
	Warnings []string `json:"warnings,omitempty"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
