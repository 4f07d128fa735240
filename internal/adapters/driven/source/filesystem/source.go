// Package filesystem provides a document source over a directory of
// extracted-text files.
//
// The audit core never parses file formats; this adapter expects the
// corpus as plain text (.txt, .md), one file per document, as produced
// by an upstream extraction step. Authorship metadata rides alongside
// each file in an optional "<name>.meta.toml" sidecar.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/veracity-labs/originality-cli/internal/core/domain"
	"github.com/veracity-labs/originality-cli/internal/core/ports/driven"
	"github.com/veracity-labs/originality-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// MetaSuffix is appended to a document file name to locate its
// metadata sidecar.
const MetaSuffix = ".meta.toml"

// defaultExtensions are the file extensions treated as documents.
var defaultExtensions = []string{".txt", ".md"}

// Source loads documents from a directory tree.
type Source struct {
	rootPath   string
	extensions map[string]struct{}
	watcher    *watcher
}

// Option configures a Source.
type Option func(*Source)

// WithExtensions overrides the accepted document file extensions.
func WithExtensions(exts []string) Option {
	return func(s *Source) {
		if len(exts) == 0 {
			return
		}
		s.extensions = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			s.extensions[strings.ToLower(ext)] = struct{}{}
		}
	}
}

// New creates a filesystem source rooted at rootPath.
func New(rootPath string, opts ...Option) *Source {
	s := &Source{rootPath: rootPath}
	WithExtensions(defaultExtensions)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RootPath returns the corpus root directory.
func (s *Source) RootPath() string {
	return s.rootPath
}

// Load walks the corpus and returns one document per accepted file,
// in lexical path order so registry order is stable across runs.
// Ids are paths relative to the root; fingerprints are SHA-256 over
// the raw bytes, so any byte-level change produces a new fingerprint.
func (s *Source) Load(ctx context.Context) ([]domain.Document, error) {
	info, err := os.Stat(s.rootPath)
	if err != nil {
		return nil, fmt.Errorf("stat corpus root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, s.rootPath)
	}

	var docs []domain.Document
	err = filepath.WalkDir(s.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, MetaSuffix) {
			return nil
		}
		if _, ok := s.extensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		doc, err := s.loadDocument(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking corpus: %w", err)
	}

	return docs, nil
}

// loadDocument reads one file and resolves its authorship metadata.
func (s *Source) loadDocument(path string) (domain.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}

	rel, err := filepath.Rel(s.rootPath, path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("relativising %s: %w", path, err)
	}

	sum := sha256.Sum256(raw)

	meta := resolveMetadata(path)
	if !meta.CreatedAtResolved {
		logger.Debug("no authored timestamp for %s, using file modification time", rel)
	}

	return domain.Document{
		ID:                filepath.ToSlash(rel),
		Fingerprint:       hex.EncodeToString(sum[:]),
		FullText:          string(raw),
		CreatedAt:         meta.CreatedAt,
		CreatedAtResolved: meta.CreatedAtResolved,
		Author:            meta.Author,
		AuthorResolved:    meta.AuthorResolved,
	}, nil
}

// Watch emits a signal whenever the corpus directory changes.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	if s.watcher == nil {
		w, err := newWatcher(s.rootPath, s.extensions)
		if err != nil {
			return nil, err
		}
		s.watcher = w
	}
	return s.watcher.run(ctx), nil
}

// Close releases the watcher, if any.
func (s *Source) Close() error {
	if s.watcher != nil {
		return s.watcher.close()
	}
	return nil
}
