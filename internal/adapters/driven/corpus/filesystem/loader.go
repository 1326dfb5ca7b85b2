// Package filesystem provides a corpus loader that reads markdown
// documents from a directory on disk.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.CorpusLoader = (*Loader)(nil)

// Loader reads *.md files from a single directory. The document name is
// the file stem; subdirectories are not traversed.
type Loader struct {
	dir string
}

// NewLoader creates a loader for the given directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads all markdown documents, sorted by name for a stable corpus
// order. A missing or unreadable directory is a startup failure.
func (l *Loader) Load(ctx context.Context) ([]domain.RawDocument, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCorpusUnavailable, l.dir)
	}

	var docs []domain.RawDocument
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		docs = append(docs, domain.RawDocument{
			Name: strings.TrimSuffix(entry.Name(), ".md"),
			Text: string(data),
		})
	}

	sort.Slice(docs, func(a, b int) bool { return docs[a].Name < docs[b].Name })
	return docs, nil
}
