package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/veracity-labs/originality-cli/internal/core/domain"
)

var (
	auditJSON    bool
	auditTimeout time.Duration
	auditWorkers int
)

var auditCmd = &cobra.Command{
	Use:   "audit [dir]",
	Short: "Audit a directory of documents for duplicated content",
	Long: `Runs a full originality audit over every .txt and .md file in the
given directory (default: current directory).

Embeddings are cached per document version, so re-auditing an unchanged
corpus is cheap. Authored timestamps come from "<name>.meta.toml"
sidecars when present, otherwise from file modification times.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "output the result as JSON")
	auditCmd.Flags().DurationVar(&auditTimeout, "timeout", 0, "abort arbitration after this duration (0 = no limit)")
	auditCmd.Flags().IntVar(&auditWorkers, "workers", 0, "concurrent embedding batches (0 = default)")
	auditCmd.Flags().StringVar(&embedProvider, "provider", "", "embedding provider: openai or ollama")
	auditCmd.Flags().StringVar(&embedModel, "model", "", "embedding model override")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	p, err := buildPipeline(dir)
	if err != nil {
		return err
	}
	defer p.close()

	opts := domain.AuditOptions{
		Deadline:     auditTimeout,
		EmbedWorkers: auditWorkers,
	}

	result, err := p.service.Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if auditJSON {
		return outputAuditJSON(cmd, result)
	}
	return outputAuditReport(cmd, result)
}

func outputAuditJSON(cmd *cobra.Command, result *domain.AuditResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAuditReport(cmd *cobra.Command, result *domain.AuditResult) error {
	cmd.Println(titleStyle.Render("Originality Report"))
	cmd.Println()

	if len(result.Reports) == 0 {
		cmd.Println("No documents with scorable content.")
		return nil
	}

	for _, report := range result.Reports {
		score := fmt.Sprintf("%6.1f%%", report.AuthenticityScore)
		cmd.Printf("  %s  %s %s\n",
			scoreStyle(report.AuthenticityScore).Render(score),
			report.DocID,
			mutedStyle.Render(fmt.Sprintf("(%s, %d/%d original)",
				report.Author, report.OriginalChunks, report.TotalChunks)))

		for _, line := range duplicateSourceLines(report) {
			cmd.Printf("           %s\n", mutedStyle.Render(line))
		}
		if report.Degraded {
			cmd.Printf("           %s\n", warningStyle.Render("embeddings degraded, score may overstate originality"))
		}
	}

	cmd.Println()
	elapsed := result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond)
	cmd.Printf("  %d documents, %d chunks, %d duplicates, %d cache hits in %s\n",
		len(result.Reports), result.TotalChunks, result.DuplicateChunks,
		result.CacheHits, elapsed)

	if result.Incomplete {
		cmd.Println(warningStyle.Render("  run deadline expired: results cover a partial comparison scan"))
	}
	for _, w := range result.Warnings {
		cmd.Printf("  %s %s\n", warningStyle.Render("warning:"), w)
	}

	return nil
}

// duplicateSourceLines renders a report's borrowed-from attributions,
// most-borrowed first.
func duplicateSourceLines(report domain.DocumentReport) []string {
	if len(report.DuplicateSources) == 0 {
		return nil
	}

	sources := make([]string, 0, len(report.DuplicateSources))
	for src := range report.DuplicateSources {
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool {
		if report.DuplicateSources[sources[i]] != report.DuplicateSources[sources[j]] {
			return report.DuplicateSources[sources[i]] > report.DuplicateSources[sources[j]]
		}
		return sources[i] < sources[j]
	})

	lines := make([]string, 0, len(sources))
	for _, src := range sources {
		n := report.DuplicateSources[src]
		noun := "chunks"
		if n == 1 {
			noun = "chunk"
		}
		lines = append(lines, fmt.Sprintf("%d %s from %s", n, noun, src))
	}
	return lines
}
