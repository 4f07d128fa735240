// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentSource: Supplies the batch of documents to audit, with
//     fingerprints and authorship metadata already resolved
//   - EmbeddingService: Generates vector embeddings for chunk text
//   - ChunkCache: Persists computed chunk lists keyed by content fingerprint
//   - ConfigStore: Application configuration
//
// The audit degrades rather than fails when an adapter misbehaves: an
// unopenable ChunkCache is replaced by an in-memory one, and a failed
// EmbeddingService batch degrades to sentinel vectors.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
