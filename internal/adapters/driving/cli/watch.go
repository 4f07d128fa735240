package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veracity-labs/originality-cli/internal/core/domain"
	"github.com/veracity-labs/originality-cli/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-audit a directory whenever its documents change",
	Long: `Audits the directory once, then watches it and re-runs the audit
after every change to a document or metadata sidecar. Runs until
interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&embedProvider, "provider", "", "embedding provider: openai or ollama")
	watchCmd.Flags().StringVar(&embedModel, "model", "", "embedding model override")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	p, err := buildPipeline(dir)
	if err != nil {
		return err
	}
	defer p.close()

	ctx := cmd.Context()
	signals, err := p.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	audit := func() {
		result, err := p.service.Run(ctx, domain.AuditOptions{})
		if err != nil {
			logger.Warn("audit failed: %v", err)
			return
		}
		if err := outputAuditReport(cmd, result); err != nil {
			logger.Warn("rendering report: %v", err)
		}
	}

	audit()
	cmd.Printf("Watching %s for changes (ctrl-c to stop)\n", dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-signals:
			if !ok {
				return nil
			}
			cmd.Println()
			audit()
		}
	}
}
