package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_Use(t *testing.T) {
	assert.Equal(t, "watch [dir]", watchCmd.Use)
}

func TestWatchCmd_Short(t *testing.T) {
	assert.Equal(t, "Re-audit a directory whenever its documents change", watchCmd.Short)
}

func TestWatchCmd_AuditsOnceThenStopsOnCancel(t *testing.T) {
	svc, cleanup := setupTestPipeline(sampleResult(), nil)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// cobra caches the subcommand's context after the first execution
	// (cmd.ctx is only assigned when nil), so clear any context left
	// behind by an earlier test before re-executing watchCmd.
	watchCmd.SetContext(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"watch", "corpus"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.ExecuteContext(ctx))

	assert.Equal(t, 1, svc.runs)
	assert.Contains(t, buf.String(), "Watching corpus for changes")
	assert.Contains(t, buf.String(), "Originality Report")
}

func TestWatchCmd_RerunsOnChangeSignal(t *testing.T) {
	svc := &stubAuditService{result: sampleResult()}
	src := &stubSource{signals: make(chan struct{})}

	originalFactory := buildPipeline
	buildPipeline = func(string) (*pipeline, error) {
		return &pipeline{service: svc, source: src, close: func() {}}, nil
	}
	defer func() {
		buildPipeline = originalFactory
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Clear the context cached on watchCmd by a previous execution;
	// otherwise this run would see that run's canceled context.
	watchCmd.SetContext(nil)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"watch", "corpus"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	done := make(chan error, 1)
	go func() {
		done <- rootCmd.ExecuteContext(ctx)
	}()

	// Unbuffered send: delivered only once the watch loop is selecting,
	// which also means the initial audit has finished.
	src.signals <- struct{}{}
	cancel()

	require.NoError(t, <-done)
	assert.Equal(t, 2, svc.runs)
}
