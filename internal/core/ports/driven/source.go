package driven

import (
	"context"

	"github.com/veracity-labs/originality-cli/internal/core/domain"
)

// DocumentSource supplies the batch of documents to audit. Each document
// arrives with id, fingerprint, full text and authorship metadata already
// populated; the core never performs file format parsing itself.
type DocumentSource interface {
	// Load returns the current batch in a stable order.
	Load(ctx context.Context) ([]domain.Document, error)

	// Watch emits a signal whenever the underlying corpus changes.
	// Implementations that cannot watch return ErrNotFound.
	Watch(ctx context.Context) (<-chan struct{}, error)

	// Close releases resources.
	Close() error
}
