package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyBatch indicates an audit run was started with no documents.
	ErrEmptyBatch = errors.New("no documents in batch")

	// ErrEmbeddingUnavailable indicates the embedding gateway is not
	// configured. An audit cannot run without one.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrSourceUnavailable indicates the document source is not configured.
	ErrSourceUnavailable = errors.New("document source unavailable")

	// ErrCacheUnavailable indicates the chunk cache could not be opened.
	// Callers recover by cold-starting with an in-memory cache; this is
	// never fatal to a run.
	ErrCacheUnavailable = errors.New("chunk cache unavailable")

	// ErrDimensionMismatch indicates the gateway returned vectors of an
	// unexpected length for one batch.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
