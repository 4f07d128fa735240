package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veracity-labs/originality-cli/internal/core/domain"
	"github.com/veracity-labs/originality-cli/internal/core/ports/driven"
	"github.com/veracity-labs/originality-cli/internal/core/ports/driving"
	"github.com/veracity-labs/originality-cli/internal/logger"
)

// Ensure AuditService implements the interface.
var _ driving.AuditService = (*AuditService)(nil)

// DefaultEmbedWorkers caps concurrent embedding batches across
// cache-miss documents. Batches for different documents are
// independent, so they may run in parallel.
const DefaultEmbedWorkers = 4

// AuditService runs the originality pipeline: load documents, resolve
// chunk embeddings through the cache, arbitrate duplicates across
// documents and score per-document authenticity.
type AuditService struct {
	source    driven.DocumentSource
	cache     driven.ChunkCache
	embedder  driven.EmbeddingService
	segmenter *Segmenter
	arbiter   *Arbiter
}

// NewAuditService creates an audit service. All three collaborators are
// required; the CLI substitutes an in-memory cache when the durable one
// cannot be opened.
func NewAuditService(
	source driven.DocumentSource,
	cache driven.ChunkCache,
	embedder driven.EmbeddingService,
) *AuditService {
	return &AuditService{
		source:    source,
		cache:     cache,
		embedder:  embedder,
		segmenter: NewSegmenter(),
		arbiter:   NewArbiter(),
	}
}

// Run executes a full audit over the source's current batch.
//
// Nothing inside the run is fatal: cache errors degrade to misses,
// gateway failures degrade to sentinel vectors, and a deadline expiry
// returns the partially arbitrated state flagged Incomplete. Errors are
// only returned for absent collaborators or an unloadable source.
func (s *AuditService) Run(ctx context.Context, opts domain.AuditOptions) (*domain.AuditResult, error) {
	if s.source == nil {
		return nil, domain.ErrSourceUnavailable
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.cache == nil {
		return nil, domain.ErrCacheUnavailable
	}

	if opts.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Deadline)
		defer cancel()
	}

	result := &domain.AuditResult{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}

	logger.Section("Document Load")
	docs, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	logger.Info("Loaded %d documents", len(docs))

	logger.Section("Chunking and Embedding")
	warnings := s.resolveChunks(ctx, docs, opts, result)
	result.Warnings = warnings

	// The registry is rebuilt every run and never persisted: duplicate
	// relationships depend on which documents are in the batch. It
	// points into the documents' own chunks so arbitration mutates them
	// directly.
	registry := make([]*domain.Chunk, 0)
	for i := range docs {
		for j := range docs[i].Chunks {
			registry = append(registry, &docs[i].Chunks[j])
		}
	}
	result.TotalChunks = len(registry)
	logger.Info("Registry holds %d chunks across %d documents", len(registry), len(docs))

	logger.Section("Arbitration")
	complete := s.arbiter.Arbitrate(ctx, registry)
	if !complete {
		result.Incomplete = true
		result.Warnings = append(result.Warnings, "run deadline expired: arbitration incomplete")
	}

	for _, chunk := range registry {
		if !chunk.IsOriginal {
			result.DuplicateChunks++
		}
	}

	logger.Section("Scoring")
	result.Reports = BuildReports(docs)
	result.FinishedAt = time.Now()
	return result, nil
}

// resolveChunks populates every document's chunk list, serving
// unchanged documents from the cache and embedding the rest with a
// bounded worker pool. All chunking and embedding completes before the
// caller materialises the registry.
func (s *AuditService) resolveChunks(
	ctx context.Context, docs []domain.Document, opts domain.AuditOptions, result *domain.AuditResult,
) []string {
	var (
		mu       sync.Mutex
		warnings []string
	)
	warn := func(format string, args ...any) {
		logger.Warn(format, args...)
		mu.Lock()
		warnings = append(warnings, fmt.Sprintf(format, args...))
		mu.Unlock()
	}

	var misses []int
	for i := range docs {
		doc := &docs[i]
		cached, ok, err := s.cache.Lookup(ctx, doc.Fingerprint)
		if err != nil {
			warn("cache lookup failed for %s, recomputing: %v", doc.ID, err)
			misses = append(misses, i)
			continue
		}
		if ok {
			logger.Debug("[CACHE HIT] %s (%d chunks)", doc.ID, len(cached))
			doc.Chunks = cached
			result.CacheHits++
			continue
		}
		misses = append(misses, i)
	}

	workers := opts.EmbedWorkers
	if workers <= 0 {
		workers = DefaultEmbedWorkers
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for _, i := range misses {
		wg.Add(1)
		sem <- struct{}{}
		go func(doc *domain.Document) {
			defer wg.Done()
			defer func() { <-sem }()
			s.embedDocument(ctx, doc, warn)
		}(&docs[i])
	}
	wg.Wait()

	return warnings
}

// embedDocument segments one cache-miss document, embeds its paragraphs
// in a single batch and stores the result. A gateway failure degrades
// the whole batch to sentinel zero vectors so chunk indices stay
// aligned with source order; degraded documents are not cached, so a
// later run with a healthy gateway recomputes them.
func (s *AuditService) embedDocument(ctx context.Context, doc *domain.Document, warn func(string, ...any)) {
	logger.Debug("[CACHE MISS] embedding %s", doc.ID)

	paragraphs := s.segmenter.Segment(doc.FullText)
	if len(paragraphs) == 0 {
		logger.Debug("no paragraphs survived segmentation for %s, skipping", doc.ID)
		return
	}

	degraded := false
	vectors, err := s.embedder.EmbedBatch(ctx, normalizeForEmbedding(paragraphs))
	if err == nil && len(vectors) != len(paragraphs) {
		err = fmt.Errorf("%w: got %d vectors for %d texts", domain.ErrDimensionMismatch, len(vectors), len(paragraphs))
	}
	if err != nil {
		warn("embedding batch failed for %s, substituting zero vectors: %v", doc.ID, err)
		degraded = true
		dims := s.embedder.Dimensions()
		vectors = make([][]float32, len(paragraphs))
		for i := range vectors {
			vectors[i] = make([]float32, dims)
		}
	}

	doc.Chunks = make([]domain.Chunk, 0, len(paragraphs))
	for i, text := range paragraphs {
		chunk := domain.NewChunk(doc, i, text)
		chunk.Embedding = vectors[i]
		doc.Chunks = append(doc.Chunks, chunk)
	}

	if degraded {
		return
	}
	if err := s.cache.Store(ctx, doc.Fingerprint, doc.Chunks); err != nil {
		warn("cache store failed for %s: %v", doc.ID, err)
	}
}
