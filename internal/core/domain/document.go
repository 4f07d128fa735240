package domain

import (
	"fmt"
	"time"
)

// Document represents a single ingested document in an audit batch.
// It is the canonical representation after text extraction; the core
// never parses file formats itself.
type Document struct {
	// ID is the stable identifier, typically the path relative to the
	// corpus root.
	ID string

	// Fingerprint is a deterministic hash of the document's raw bytes.
	// It is the embedding cache key: any byte-level change produces a
	// different fingerprint.
	Fingerprint string

	// FullText is the complete extracted text before segmentation.
	FullText string

	// CreatedAt is the best-effort authorship timestamp. It drives the
	// arbitration tie-break, so it is always populated, falling back to
	// filesystem metadata when nothing better is available.
	CreatedAt time.Time

	// CreatedAtResolved is false when CreatedAt came from a fallback
	// (e.g. file modification time) rather than real metadata.
	CreatedAtResolved bool

	// Author is the document author, "Unknown" when unresolved.
	Author string

	// AuthorResolved is false when Author is the fallback value.
	AuthorResolved bool

	// Chunks is the ordered sequence of segmented chunks, owned
	// exclusively by this document.
	Chunks []Chunk
}

// Chunk is a paragraph-granularity unit of a document's text, the unit
// of cross-document comparison.
type Chunk struct {
	// DocID is a back-reference to the owning document.
	DocID string

	// ChunkID is stable within a document: "{docID}_{index}".
	ChunkID string

	// Text is the cleaned paragraph.
	Text string

	// Embedding is the fixed-length vector for this paragraph. A failed
	// embedding batch degrades to a zero vector of the gateway's
	// dimensionality so indices stay aligned with source order.
	Embedding []float32

	// Timestamp is inherited from the owning document's CreatedAt at
	// creation time; chunks carry no independent timestamps.
	Timestamp time.Time

	// IsOriginal reports whether this chunk is still considered the
	// original occurrence of its content. Defaults to true.
	IsOriginal bool

	// DuplicateOf is the id of the document judged to be the source of
	// this chunk's content. Empty while the chunk is original.
	// Invariant: DuplicateOf != "" implies IsOriginal == false, and the
	// transition is one-directional within a run.
	DuplicateOf string
}

// NewChunk builds a chunk for the given document and position with the
// originality default.
func NewChunk(doc *Document, index int, text string) Chunk {
	return Chunk{
		DocID:      doc.ID,
		ChunkID:    fmt.Sprintf("%s_%d", doc.ID, index),
		Text:       text,
		Timestamp:  doc.CreatedAt,
		IsOriginal: true,
	}
}

// MarkDuplicate records that this chunk's content originates from
// another document. Once marked, a chunk never reverts to original
// within a run.
func (c *Chunk) MarkDuplicate(sourceDocID string) {
	c.IsOriginal = false
	c.DuplicateOf = sourceDocID
}

// Degraded reports whether the chunk carries a sentinel zero vector
// from a failed embedding batch.
func (c *Chunk) Degraded() bool {
	for _, v := range c.Embedding {
		if v != 0 {
			return false
		}
	}
	return len(c.Embedding) > 0
}
