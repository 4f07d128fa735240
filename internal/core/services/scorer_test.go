package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veracity-labs/originality-cli/internal/core/domain"
)

func docWithChunks(id string, author string, chunks ...domain.Chunk) domain.Document {
	return domain.Document{
		ID:        id,
		Author:    author,
		CreatedAt: time.Unix(100, 0).UTC(),
		Chunks:    chunks,
	}
}

func originalChunk(docID string) domain.Chunk {
	return domain.Chunk{DocID: docID, Embedding: []float32{1, 0}, IsOriginal: true}
}

func duplicateChunk(docID, of string) domain.Chunk {
	return domain.Chunk{DocID: docID, Embedding: []float32{1, 0}, IsOriginal: false, DuplicateOf: of}
}

func TestBuildReports_AllOriginal(t *testing.T) {
	docs := []domain.Document{
		docWithChunks("a.txt", "Ada", originalChunk("a.txt"), originalChunk("a.txt")),
	}

	reports := BuildReports(docs)

	require.Len(t, reports, 1)
	assert.Equal(t, "a.txt", reports[0].DocID)
	assert.Equal(t, "Ada", reports[0].Author)
	assert.Equal(t, 100.0, reports[0].AuthenticityScore)
	assert.Equal(t, 2, reports[0].OriginalChunks)
	assert.Equal(t, 2, reports[0].TotalChunks)
	assert.Nil(t, reports[0].DuplicateSources)
}

func TestBuildReports_HalfDuplicate(t *testing.T) {
	docs := []domain.Document{
		docWithChunks("b.txt", "Bea",
			originalChunk("b.txt"),
			duplicateChunk("b.txt", "a.txt"),
		),
	}

	reports := BuildReports(docs)

	require.Len(t, reports, 1)
	assert.Equal(t, 50.0, reports[0].AuthenticityScore)
	assert.Equal(t, map[string]int{"a.txt": 1}, reports[0].DuplicateSources)
}

func TestBuildReports_ZeroChunkDocumentOmitted(t *testing.T) {
	docs := []domain.Document{
		docWithChunks("empty.txt", "Eve"),
		docWithChunks("a.txt", "Ada", originalChunk("a.txt")),
	}

	reports := BuildReports(docs)

	require.Len(t, reports, 1)
	assert.Equal(t, "a.txt", reports[0].DocID)
}

func TestBuildReports_ScoresWithinBounds(t *testing.T) {
	docs := []domain.Document{
		docWithChunks("a.txt", "Ada", originalChunk("a.txt")),
		docWithChunks("b.txt", "Bea", duplicateChunk("b.txt", "a.txt")),
		docWithChunks("c.txt", "Cay",
			originalChunk("c.txt"),
			duplicateChunk("c.txt", "a.txt"),
			duplicateChunk("c.txt", "b.txt"),
		),
	}

	for _, r := range BuildReports(docs) {
		assert.GreaterOrEqual(t, r.AuthenticityScore, 0.0)
		assert.LessOrEqual(t, r.AuthenticityScore, 100.0)
	}
}

func TestBuildReports_FlagsDegradedDocuments(t *testing.T) {
	sentinel := domain.Chunk{DocID: "d.txt", Embedding: []float32{0, 0}, IsOriginal: true}
	docs := []domain.Document{
		docWithChunks("d.txt", "Dee", sentinel),
		docWithChunks("a.txt", "Ada", originalChunk("a.txt")),
	}

	reports := BuildReports(docs)

	require.Len(t, reports, 2)
	assert.True(t, reports[0].Degraded)
	assert.False(t, reports[1].Degraded)
}
