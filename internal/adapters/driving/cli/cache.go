package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	cachesqlite "github.com/veracity-labs/originality-cli/internal/adapters/driven/cache/sqlite"
	configfile "github.com/veracity-labs/originality-cli/internal/adapters/driven/config/file"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the embedding cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache location and entry count",
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached embeddings",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

// openDurableCache opens the SQLite cache the way the pipeline does,
// but treats failure as fatal: cache management with no cache is an
// error, not a degradation.
func openDurableCache() (*cachesqlite.Cache, error) {
	cfg, err := configfile.NewConfigStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	cacheDir := cfg.GetString("cache.dir")
	if cacheDir == "" && dataDir != "" {
		cacheDir = filepath.Join(dataDir, "data")
	}

	cache, err := cachesqlite.NewCache(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return cache, nil
}

func runCacheInfo(cmd *cobra.Command, _ []string) error {
	cache, err := openDurableCache()
	if err != nil {
		return err
	}
	defer cache.Close()

	entries, err := cache.Len(cmd.Context())
	if err != nil {
		return fmt.Errorf("counting cache entries: %w", err)
	}

	cmd.Printf("Location: %s\n", cache.Path())
	cmd.Printf("Documents cached: %d\n", entries)
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	cache, err := openDurableCache()
	if err != nil {
		return err
	}
	defer cache.Close()

	if err := cache.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	cmd.Println("Cache cleared.")
	return nil
}
