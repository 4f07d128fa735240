package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".originality", "config.toml"), store.Path())

	// Cleanup
	_ = os.Remove(store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("embedding.provider", "ollama")
	require.NoError(t, err)

	val, ok := store.Get("embedding.provider")
	assert.True(t, ok)
	assert.Equal(t, "ollama", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("embedding.model", "text-embedding-3-small"))
	assert.Equal(t, "text-embedding-3-small", store.GetString("embedding.model"))

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	require.NoError(t, store.Set("audit.workers", 4))
	assert.Equal(t, "", store.GetString("audit.workers"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("audit.workers", 8))
	assert.Equal(t, 8, store.GetInt("audit.workers"))

	assert.Equal(t, 0, store.GetInt("nonexistent"))

	require.NoError(t, store.Set("embedding.model", "nomic-embed-text"))
	assert.Equal(t, 0, store.GetInt("embedding.model"))
}

func TestConfigStore_GetBool(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("audit.verbose", true))
	assert.True(t, store.GetBool("audit.verbose"))

	assert.False(t, store.GetBool("nonexistent"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("embedding.requests_per_second", 0.5))
	assert.Equal(t, 0.5, store.GetFloat("embedding.requests_per_second"))

	assert.Equal(t, 0.0, store.GetFloat("nonexistent"))

	// Integers widen
	require.NoError(t, store.Set("audit.workers", 1))
	assert.Equal(t, 1.0, store.GetFloat("audit.workers"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("embedding.provider", "openai"))
	require.NoError(t, store.Set("embedding.requests_per_second", 0.9))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "openai", reopened.GetString("embedding.provider"))
	assert.Equal(t, 0.9, reopened.GetFloat("embedding.requests_per_second"))
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()

	content := "[embedding]\nprovider = \"ollama\"\nmodel = \"nomic-embed-text\"\nrequests_per_second = 2.5\n\n[audit]\nworkers = 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "ollama", store.GetString("embedding.provider"))
	assert.Equal(t, "nomic-embed-text", store.GetString("embedding.model"))
	assert.Equal(t, 2.5, store.GetFloat("embedding.requests_per_second"))
	assert.Equal(t, 4, store.GetInt("audit.workers"))
}

func TestConfigStore_LoadMalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("= not toml"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"top": "value",
		"section": map[string]any{
			"inner": int64(7),
			"deep": map[string]any{
				"leaf": true,
			},
		},
	}

	flat := flattenMap(nested, "")

	assert.Equal(t, "value", flat["top"])
	assert.Equal(t, int64(7), flat["section.inner"])
	assert.Equal(t, true, flat["section.deep.leaf"])
	assert.Len(t, flat, 3)
}
