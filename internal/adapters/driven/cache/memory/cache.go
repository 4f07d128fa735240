// Package memory provides an in-memory chunk cache.
// It backs tests and serves as the cold-start fallback when the durable
// cache cannot be opened.
package memory

import (
	"context"
	"sync"

	"github.com/veracity-labs/originality-cli/internal/core/domain"
	"github.com/veracity-labs/originality-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.ChunkCache = (*Cache)(nil)

// Cache is an in-memory implementation of driven.ChunkCache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]domain.Chunk
}

// NewCache creates a new in-memory chunk cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string][]domain.Chunk),
	}
}

// Lookup returns the cached chunk list for a fingerprint.
// Returned chunks are copies so callers cannot mutate the entry.
func (c *Cache) Lookup(_ context.Context, fingerprint string) ([]domain.Chunk, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[fingerprint]
	if !ok {
		return nil, false, nil
	}
	chunks := make([]domain.Chunk, len(entry))
	copy(chunks, entry)
	return chunks, true, nil
}

// Store writes the chunk list for a fingerprint. Entries are immutable:
// storing an existing fingerprint is a no-op.
func (c *Cache) Store(_ context.Context, fingerprint string, chunks []domain.Chunk) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[fingerprint]; ok {
		return nil
	}
	entry := make([]domain.Chunk, len(chunks))
	copy(entry, chunks)
	c.entries[fingerprint] = entry
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}

// Clear removes all entries.
func (c *Cache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]domain.Chunk)
	return nil
}

// Close is a no-op for the in-memory cache.
func (c *Cache) Close() error {
	return nil
}
