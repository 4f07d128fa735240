package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	cachememory "github.com/veracity-labs/originality-cli/internal/adapters/driven/cache/memory"
	cachesqlite "github.com/veracity-labs/originality-cli/internal/adapters/driven/cache/sqlite"
	configfile "github.com/veracity-labs/originality-cli/internal/adapters/driven/config/file"
	"github.com/veracity-labs/originality-cli/internal/adapters/driven/embedding/ollama"
	"github.com/veracity-labs/originality-cli/internal/adapters/driven/embedding/openai"
	"github.com/veracity-labs/originality-cli/internal/adapters/driven/source/filesystem"
	"github.com/veracity-labs/originality-cli/internal/core/ports/driven"
	"github.com/veracity-labs/originality-cli/internal/core/ports/driving"
	"github.com/veracity-labs/originality-cli/internal/core/services"
	"github.com/veracity-labs/originality-cli/internal/logger"
)

var (
	verbose bool
	dataDir string

	// Provider selection, shared by audit and watch.
	embedProvider string
	embedModel    string
)

var rootCmd = &cobra.Command{
	Use:   "originality",
	Short: "Audit document batches for cross-document duplication",
	Long: `Originality detects copied paragraphs across a batch of documents.

Each document is split into paragraphs, embedded, and compared against
every other document's paragraphs. When two paragraphs are near-identical
the earlier-written one keeps the credit and the later one is attributed
to its source. Every document receives an authenticity score: the share
of its paragraphs that remain original.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the data directory (default ~/.originality)")
}

// Execute runs the root command. The context cancels long-lived
// commands such as watch when the process is interrupted.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// pipeline bundles everything a command needs to audit one corpus.
type pipeline struct {
	service driving.AuditService
	source  driven.DocumentSource
	close   func()
}

// buildPipeline is swappable so command tests can inject fakes.
var buildPipeline = newPipeline

// newPipeline wires the production audit pipeline for a corpus root.
func newPipeline(corpusDir string) (*pipeline, error) {
	cfg, err := configfile.NewConfigStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	cache := openCache(cfg)
	source := filesystem.New(corpusDir)

	return &pipeline{
		service: services.NewAuditService(source, cache, embedder),
		source:  source,
		close: func() {
			_ = source.Close()
			_ = cache.Close()
			_ = embedder.Close()
		},
	}, nil
}

// openCache opens the durable chunk cache, degrading to an in-memory
// one on any failure. A missing cache only costs recomputation.
func openCache(cfg driven.ConfigStore) driven.ChunkCache {
	cacheDir := cfg.GetString("cache.dir")
	if cacheDir == "" && dataDir != "" {
		cacheDir = filepath.Join(dataDir, "data")
	}

	cache, err := cachesqlite.NewCache(cacheDir)
	if err != nil {
		logger.Warn("chunk cache unavailable, recomputing embeddings this run: %v", err)
		return cachememory.NewCache()
	}
	return cache
}

// buildEmbedder selects the embedding provider from the --provider
// flag, then configuration, then "ollama" as the no-credential default.
func buildEmbedder(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	provider := embedProvider
	if provider == "" {
		provider = cfg.GetString("embedding.provider")
	}
	if provider == "" {
		provider = "ollama"
	}

	model := embedModel
	if model == "" {
		model = cfg.GetString("embedding.model")
	}

	switch provider {
	case "openai":
		apiKey := cfg.GetString("embedding.api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		return openai.NewEmbeddingService(openai.Config{
			APIKey:            apiKey,
			BaseURL:           cfg.GetString("embedding.base_url"),
			Model:             model,
			RequestsPerSecond: cfg.GetFloat("embedding.requests_per_second"),
		})
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.GetString("embedding.base_url"),
			Model:   model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q (expected openai or ollama)", provider)
	}
}
