package services

import "strings"

// DefaultMinParagraphLen is the minimum trimmed length, in characters,
// a paragraph must exceed to survive segmentation. Shorter fragments
// (headers, page numbers, bare section numbers) carry too little
// semantic signal to compare and waste embedding calls.
const DefaultMinParagraphLen = 50

// Segmenter splits a document's extracted text into paragraph-level
// units on blank-line boundaries and filters out low-signal fragments.
type Segmenter struct {
	minLen int
}

// SegmenterOption configures a Segmenter.
type SegmenterOption func(*Segmenter)

// WithMinParagraphLength sets the minimum paragraph length threshold.
func WithMinParagraphLength(n int) SegmenterOption {
	return func(s *Segmenter) {
		if n >= 0 {
			s.minLen = n
		}
	}
}

// NewSegmenter creates a segmenter with the given options.
func NewSegmenter(opts ...SegmenterOption) *Segmenter {
	s := &Segmenter{minLen: DefaultMinParagraphLen}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segment splits text on blank lines into trimmed paragraphs, dropping
// those at or below the minimum length. Order is preserved so chunk ids
// derived from the result stay stable.
func (s *Segmenter) Segment(text string) []string {
	raw := strings.Split(text, "\n\n")
	paragraphs := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if len(p) > s.minLen {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// normalizeForEmbedding flattens newlines to spaces. Stray line breaks
// inside a paragraph degrade embedding quality, so the gateway is always
// fed single-line text. The stored chunk text keeps its newlines.
func normalizeForEmbedding(texts []string) []string {
	clean := make([]string, len(texts))
	for i, t := range texts {
		clean[i] = strings.ReplaceAll(t, "\n", " ")
	}
	return clean
}
