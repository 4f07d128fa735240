package cli

import (
	"context"
	"time"

	"github.com/veracity-labs/originality-cli/internal/core/domain"
)

// stubAuditService records invocations and returns a canned result.
type stubAuditService struct {
	result   *domain.AuditResult
	err      error
	runs     int
	lastOpts domain.AuditOptions
}

func (s *stubAuditService) Run(_ context.Context, opts domain.AuditOptions) (*domain.AuditResult, error) {
	s.runs++
	s.lastOpts = opts
	return s.result, s.err
}

// stubSource satisfies the pipeline's source without touching disk.
type stubSource struct {
	signals chan struct{}
}

func (s *stubSource) Load(context.Context) ([]domain.Document, error) { return nil, nil }

func (s *stubSource) Watch(context.Context) (<-chan struct{}, error) {
	if s.signals == nil {
		s.signals = make(chan struct{})
	}
	return s.signals, nil
}

func (s *stubSource) Close() error { return nil }

// setupTestPipeline swaps the pipeline factory for one returning the
// given canned result. The cleanup restores the factory and resets
// flag-bound package state.
func setupTestPipeline(result *domain.AuditResult, err error) (*stubAuditService, func()) {
	originalFactory := buildPipeline
	svc := &stubAuditService{result: result, err: err}
	src := &stubSource{signals: make(chan struct{})}

	buildPipeline = func(string) (*pipeline, error) {
		return &pipeline{service: svc, source: src, close: func() {}}, nil
	}

	cleanup := func() {
		buildPipeline = originalFactory
		auditJSON = false
		auditTimeout = 0
		auditWorkers = 0
		embedProvider = ""
		embedModel = ""
		dataDir = ""
		verbose = false
	}
	return svc, cleanup
}

// sampleResult is a plausible two-document audit outcome.
func sampleResult() *domain.AuditResult {
	now := time.Now()
	return &domain.AuditResult{
		RunID: "11111111-2222-3333-4444-555555555555",
		Reports: []domain.DocumentReport{
			{
				DocID:             "essays/alpha.txt",
				Author:            "Ada",
				AuthenticityScore: 100,
				OriginalChunks:    4,
				TotalChunks:       4,
			},
			{
				DocID:             "essays/beta.txt",
				Author:            "Unknown",
				AuthenticityScore: 50,
				OriginalChunks:    2,
				TotalChunks:       4,
				DuplicateSources:  map[string]int{"essays/alpha.txt": 2},
			},
		},
		TotalChunks:     8,
		DuplicateChunks: 2,
		CacheHits:       1,
		StartedAt:       now,
		FinishedAt:      now.Add(1200 * time.Millisecond),
	}
}
