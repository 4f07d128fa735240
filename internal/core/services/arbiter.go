package services

import (
	"context"

	"github.com/veracity-labs/originality-cli/internal/core/domain"
	"github.com/veracity-labs/originality-cli/internal/logger"
)

// DuplicateThreshold is the cosine similarity above which two chunks
// from different documents are considered the same content. Fixed and
// empirically chosen, not configurable per run.
const DuplicateThreshold = 0.92

// Arbiter performs the all-pairs similarity scan over the chunk
// registry and assigns original/duplicate status with provenance.
//
// The scan policy is a single ordered pass: the outer loop walks the
// registry in order and skips chunks already marked duplicate (a
// superseded chunk cannot supersede another); the inner loop compares
// against every chunk from a different document. When a pair crosses
// the threshold, the chunk with the strictly earlier timestamp is the
// original and the later one is marked duplicate. Equal timestamps
// resolve in favour of the outer chunk. When the outer chunk itself is
// deposed, its inner loop stops immediately; the chunk remains a valid
// comparison target for later outer chunks, but its attribution is
// never overwritten once set, which keeps a re-run over the same
// registry from shifting provenance. The pass is deterministic for a
// given registry order, which makes the tie-break reproducible.
type Arbiter struct{}

// NewArbiter creates an arbiter.
func NewArbiter() *Arbiter {
	return &Arbiter{}
}

// Arbitrate mutates the registry in place, populating IsOriginal and
// DuplicateOf. It creates no new records. The scan is O(N²) in the
// registry size, the system's principal scalability constraint.
//
// The context is checked once per outer iteration: on expiry the
// remaining comparisons are skipped and Arbitrate returns false,
// leaving the registry partially arbitrated.
func (a *Arbiter) Arbitrate(ctx context.Context, registry []*domain.Chunk) bool {
	for i, chunkA := range registry {
		if ctx.Err() != nil {
			logger.Warn("arbitration aborted after %d of %d chunks: %v", i, len(registry), ctx.Err())
			return false
		}
		if !chunkA.IsOriginal {
			continue
		}

		for j, chunkB := range registry {
			if i == j {
				continue
			}
			// Same-document chunks are never duplicate candidates.
			if chunkA.DocID == chunkB.DocID {
				continue
			}

			sim := Cosine(chunkA.Embedding, chunkB.Embedding)
			if sim <= DuplicateThreshold {
				continue
			}

			if !chunkA.Timestamp.After(chunkB.Timestamp) {
				// A is older, or the timestamps tie: B is the copy.
				// A chunk deposed earlier keeps its first attribution.
				if chunkB.IsOriginal {
					chunkB.MarkDuplicate(chunkA.DocID)
					logger.Debug("chunk %s marked duplicate of %s (sim %.4f)", chunkB.ChunkID, chunkA.DocID, sim)
				}
			} else {
				// B is strictly older: A is the copy and stops
				// being an arbitration source.
				chunkA.MarkDuplicate(chunkB.DocID)
				logger.Debug("chunk %s marked duplicate of %s (sim %.4f)", chunkA.ChunkID, chunkB.DocID, sim)
				break
			}
		}
	}
	return true
}
