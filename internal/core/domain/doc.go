// Package domain defines the core business entities for the originality audit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested document with authorship metadata
//   - Chunk: A paragraph-level unit of a document, paired with its
//     embedding and originality status
//   - DocumentReport: Per-document authenticity summary
//   - AuditResult: The outcome of a full audit run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
