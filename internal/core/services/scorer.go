package services

import "github.com/veracity-labs/originality-cli/internal/core/domain"

// BuildReports aggregates arbitration results into per-document
// authenticity reports. Documents with zero chunks (nothing survived
// segmentation) are omitted rather than reported as 0% or 100%.
// This is a pure read-only pass over the documents.
func BuildReports(docs []domain.Document) []domain.DocumentReport {
	reports := make([]domain.DocumentReport, 0, len(docs))

	for i := range docs {
		doc := &docs[i]
		total := len(doc.Chunks)
		if total == 0 {
			continue
		}

		report := domain.DocumentReport{
			DocID:       doc.ID,
			Author:      doc.Author,
			TotalChunks: total,
		}

		for j := range doc.Chunks {
			chunk := &doc.Chunks[j]
			if chunk.IsOriginal {
				report.OriginalChunks++
			} else {
				if report.DuplicateSources == nil {
					report.DuplicateSources = make(map[string]int)
				}
				report.DuplicateSources[chunk.DuplicateOf]++
			}
			if chunk.Degraded() {
				report.Degraded = true
			}
		}

		report.AuthenticityScore = float64(report.OriginalChunks) / float64(total) * 100
		reports = append(reports, report)
	}

	return reports
}
