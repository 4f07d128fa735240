package driving

import (
	"context"

	"github.com/veracity-labs/originality-cli/internal/core/domain"
)

// AuditService runs an originality audit over a document batch.
type AuditService interface {
	// Run loads the batch, resolves embeddings through the cache,
	// arbitrates duplicates across documents and scores authenticity.
	Run(ctx context.Context, opts domain.AuditOptions) (*domain.AuditResult, error)
}
