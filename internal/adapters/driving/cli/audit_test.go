package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veracity-labs/originality-cli/internal/core/domain"
)

func TestAuditCmd_Use(t *testing.T) {
	assert.Equal(t, "audit [dir]", auditCmd.Use)
}

func TestAuditCmd_Short(t *testing.T) {
	assert.Equal(t, "Audit a directory of documents for duplicated content", auditCmd.Short)
}

func TestAuditCmd_HasFlags(t *testing.T) {
	for _, name := range []string{"json", "timeout", "workers", "provider", "model"} {
		assert.NotNil(t, auditCmd.Flags().Lookup(name), "flag %s should exist", name)
	}
}

func TestAuditCmd_RejectsExtraArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"audit", "dir-one", "dir-two"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestAuditCmd_RendersReport(t *testing.T) {
	_, cleanup := setupTestPipeline(sampleResult(), nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"audit", "corpus"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "Originality Report")
	assert.Contains(t, out, "essays/alpha.txt")
	assert.Contains(t, out, "essays/beta.txt")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "2 chunks from essays/alpha.txt")
	assert.Contains(t, out, "2 documents, 8 chunks, 2 duplicates, 1 cache hits")
}

func TestAuditCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestPipeline(sampleResult(), nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"audit", "--json", "corpus"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	var decoded domain.AuditResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", decoded.RunID)
	assert.Len(t, decoded.Reports, 2)
	assert.Equal(t, 50.0, decoded.Reports[1].AuthenticityScore)
}

func TestAuditCmd_PassesOptions(t *testing.T) {
	svc, cleanup := setupTestPipeline(sampleResult(), nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"audit", "--timeout", "30s", "--workers", "2", "corpus"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, 1, svc.runs)
	assert.Equal(t, 30*time.Second, svc.lastOpts.Deadline)
	assert.Equal(t, 2, svc.lastOpts.EmbedWorkers)
}

func TestAuditCmd_ServiceError(t *testing.T) {
	_, cleanup := setupTestPipeline(nil, errors.New("gateway down"))
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"audit", "corpus"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway down")
}

func TestAuditCmd_IncompleteAndWarnings(t *testing.T) {
	result := sampleResult()
	result.Incomplete = true
	result.Warnings = []string{"embedding batch failed for essays/beta.txt"}
	_, cleanup := setupTestPipeline(result, nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"audit", "corpus"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "partial comparison scan")
	assert.Contains(t, out, "embedding batch failed for essays/beta.txt")
}

func TestDuplicateSourceLines_Ordering(t *testing.T) {
	report := domain.DocumentReport{
		DuplicateSources: map[string]int{
			"b.txt": 1,
			"a.txt": 3,
			"c.txt": 1,
		},
	}

	lines := duplicateSourceLines(report)

	require.Len(t, lines, 3)
	assert.Equal(t, "3 chunks from a.txt", lines[0])
	assert.Equal(t, "1 chunk from b.txt", lines[1])
	assert.Equal(t, "1 chunk from c.txt", lines[2])
}
