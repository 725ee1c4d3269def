package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// CatalogItem mirrors the catalog wire format without importing the
// recommend package, so fixtures stay usable from any test.
type CatalogItem struct {
	Title    string `json:"title"`
	Creator  string `json:"creator"`
	Type     string `json:"type"`
	Mood     string `json:"mood"`
	Language string `json:"language"`
}

// WriteCatalogFile writes items as a JSON catalog into dir and returns the
// file path.
func WriteCatalogFile(t *testing.T, dir string, items []CatalogItem) string {
	t.Helper()

	data, err := json.Marshal(items)
	require.NoError(t, err)

	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// WriteVocabFile writes a wordpiece vocabulary (one token per line) into dir
// and returns the file path.
func WriteVocabFile(t *testing.T, dir string, tokens []string) string {
	t.Helper()

	path := filepath.Join(dir, "vocab.txt")
	content := strings.Join(tokens, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// WriteLabelsFile writes a label table (one label per line, line index is
// the class id) into dir and returns the file path.
func WriteLabelsFile(t *testing.T, dir string, labels []string) string {
	t.Helper()

	path := filepath.Join(dir, "labels.txt")
	content := strings.Join(labels, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
