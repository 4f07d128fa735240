// Package sqlite provides the durable chunk cache backed by SQLite.
//
// The cache maps a document content fingerprint to the full chunk list
// computed for that exact document version, embeddings included.
// Entries are immutable once written; WAL mode with a busy timeout
// covers the single-writer batch workload without extra locking.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/veracity-labs/originality-cli/internal/adapters/driven/cache/sqlite/migrations"
	"github.com/veracity-labs/originality-cli/internal/core/domain"
	"github.com/veracity-labs/originality-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.ChunkCache = (*Cache)(nil)

// Cache is a SQLite-backed implementation of driven.ChunkCache.
type Cache struct {
	db   *sql.DB
	path string
}

// NewCache opens (or creates) the chunk cache under dataDir.
// If dataDir is empty, defaults to ~/.originality/data/cache.db.
// Callers treat any error here as a cold start, not a fatal condition.
func NewCache(dataDir string) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".originality", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	c := &Cache{
		db:   db,
		path: dbPath,
	}

	if err := c.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// Lookup returns the cached chunk list for a fingerprint.
func (c *Cache) Lookup(ctx context.Context, fingerprint string) ([]domain.Chunk, bool, error) {
	var count int
	row := c.db.QueryRowContext(ctx,
		"SELECT chunk_count FROM cache_entries WHERE fingerprint = ?", fingerprint)
	if err := row.Scan(&count); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("querying cache entry: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT doc_id, chunk_id, text, embedding, timestamp_ns, is_original, duplicate_of
		FROM cached_chunks WHERE fingerprint = ?
		ORDER BY position
	`, fingerprint)
	if err != nil {
		return nil, false, fmt.Errorf("querying cached chunks: %w", err)
	}
	defer rows.Close()

	chunks := make([]domain.Chunk, 0, count)
	for rows.Next() {
		var (
			chunk       domain.Chunk
			blob        []byte
			tsNanos     int64
			isOriginal  int
			duplicateOf sql.NullString
		)
		if err := rows.Scan(&chunk.DocID, &chunk.ChunkID, &chunk.Text,
			&blob, &tsNanos, &isOriginal, &duplicateOf); err != nil {
			return nil, false, fmt.Errorf("scanning cached chunk: %w", err)
		}
		chunk.Embedding = bytesToFloat32Slice(blob)
		chunk.Timestamp = time.Unix(0, tsNanos).UTC()
		chunk.IsOriginal = isOriginal != 0
		if duplicateOf.Valid {
			chunk.DuplicateOf = duplicateOf.String
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating cached chunks: %w", err)
	}

	return chunks, true, nil
}

// Store writes the chunk list for a fingerprint. An already-present
// fingerprint is left untouched: entries are immutable per version.
func (c *Cache) Store(ctx context.Context, fingerprint string, chunks []domain.Chunk) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO cache_entries (fingerprint, chunk_count) VALUES (?, ?)",
		fingerprint, len(chunks))
	if err != nil {
		return fmt.Errorf("saving cache entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Entry already exists; keep it as written.
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cached_chunks
			(fingerprint, position, doc_id, chunk_id, text, embedding, timestamp_ns, is_original, duplicate_of)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range chunks {
		var duplicateOf any
		if chunk.DuplicateOf != "" {
			duplicateOf = chunk.DuplicateOf
		}
		if _, err := stmt.ExecContext(ctx, fingerprint, i, chunk.DocID, chunk.ChunkID,
			chunk.Text, float32SliceToBytes(chunk.Embedding), chunk.Timestamp.UnixNano(),
			boolToInt(chunk.IsOriginal), duplicateOf); err != nil {
			return fmt.Errorf("saving cached chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	row := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cache_entries")
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}
	return n, nil
}

// Clear removes all entries.
func (c *Cache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM cache_entries"); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (c *Cache) migrate(fsys embed.FS) error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := c.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := c.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := c.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
