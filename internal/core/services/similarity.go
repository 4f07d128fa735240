package services

import "math"

// Cosine returns the cosine similarity between two vectors, in [-1, 1].
// A zero vector (including the sentinel produced by a failed embedding
// batch) has similarity 0 against everything, so degraded chunks never
// cross the duplicate threshold. Mismatched lengths compare over the
// shorter prefix; the gateway contract keeps dimensions fixed, so this
// only matters for defensive callers.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
