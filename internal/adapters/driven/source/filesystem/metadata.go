package filesystem

import (
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/veracity-labs/originality-cli/internal/logger"
)

// FallbackAuthor is recorded when no sidecar names an author.
const FallbackAuthor = "Unknown"

// sidecar mirrors the "<name>.meta.toml" schema.
type sidecar struct {
	CreatedAt time.Time `toml:"created_at"`
	Author    string    `toml:"author"`
}

// resolvedMeta is the outcome of metadata resolution for one file.
type resolvedMeta struct {
	CreatedAt         time.Time
	CreatedAtResolved bool
	Author            string
	AuthorResolved    bool
}

// resolveMetadata loads the sidecar next to path, falling back to
// the file's modification time and an unknown author. Fallback never
// drops a document; arbitration just runs on weaker provenance.
func resolveMetadata(path string) resolvedMeta {
	meta := resolvedMeta{Author: FallbackAuthor}

	raw, err := os.ReadFile(path + MetaSuffix)
	if err == nil {
		var sc sidecar
		if err := toml.Unmarshal(raw, &sc); err != nil {
			logger.Warn("malformed metadata sidecar for %s: %v", path, err)
		} else {
			if !sc.CreatedAt.IsZero() {
				meta.CreatedAt = sc.CreatedAt
				meta.CreatedAtResolved = true
			}
			if sc.Author != "" {
				meta.Author = sc.Author
				meta.AuthorResolved = true
			}
		}
	}

	if !meta.CreatedAtResolved {
		if info, err := os.Stat(path); err == nil {
			meta.CreatedAt = info.ModTime()
		}
	}

	return meta
}
