package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
)

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kpi_definitions.md"), []byte("AOV is revenue over orders."), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.md"), []byte("Beverages and Seafood."), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0600))

	docs, err := NewLoader(dir).Load(context.Background())
	require.NoError(t, err)

	// Sorted by name, non-markdown skipped, names are file stems.
	require.Len(t, docs, 2)
	assert.Equal(t, "catalog", docs[0].Name)
	assert.Equal(t, "kpi_definitions", docs[1].Name)
	assert.Equal(t, "AOV is revenue over orders.", docs[1].Text)
}

func TestLoader_MissingDirectory(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent")).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCorpusUnavailable)
}

func TestLoader_EmptyDirectory(t *testing.T) {
	docs, err := NewLoader(t.TempDir()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}
