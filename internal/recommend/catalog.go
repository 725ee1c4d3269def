// Package recommend filters a static catalog of mood-tagged songs and movies
// and serves randomized subsets plus aggregate distribution stats.
package recommend

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Alireza013/Mood-Playlist/internal/mood"
)

// MediaType is the kind of catalog item.
type MediaType string

const (
	Song  MediaType = "song"
	Movie MediaType = "movie"
)

// ParseMediaType returns the MediaType for s if supported.
func ParseMediaType(s string) (MediaType, bool) {
	switch MediaType(s) {
	case Song, Movie:
		return MediaType(s), true
	}
	return "", false
}

// CatalogItem is one recommendable entry. The catalog is loaded once at
// startup and shared read-only across all requests.
type CatalogItem struct {
	Title    string        `json:"title" yaml:"title"`
	Creator  string        `json:"creator" yaml:"creator"`
	Type     MediaType     `json:"type" yaml:"type"`
	Mood     mood.Mood     `json:"mood" yaml:"mood"`
	Language mood.Language `json:"language" yaml:"language"`
}

// Environment variable overriding the catalog location.
const EnvCatalogPath = "MOOD_PLAYLIST_CATALOG"

// DefaultCatalogFile is the catalog filename looked up next to the data dir.
const DefaultCatalogFile = "catalog.json"

// ResolveCatalogPath returns the catalog path from the explicit argument, the
// environment, or the default location, in that order.
func ResolveCatalogPath(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv(EnvCatalogPath); env != "" {
		return env
	}
	return filepath.Join("data", DefaultCatalogFile)
}

// LoadCatalog reads catalog items from a JSON or YAML file (by extension).
// A missing file is not an error: it yields an empty catalog. Items with
// unsupported mood or language values are coerced at load time so the rest
// of the pipeline only ever sees the closed sets.
func LoadCatalog(path string) ([]CatalogItem, error) {
	resolved := ResolveCatalogPath(path)

	data, err := os.ReadFile(resolved) //nolint:gosec // G304: reading a configured catalog file is expected
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Catalog file not found, starting with empty catalog", "path", resolved)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var items []CatalogItem
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
		}
	}

	for i := range items {
		items[i].Mood = mood.Coerce(string(items[i].Mood))
		items[i].Language = mood.CoerceLanguage(string(items[i].Language))
	}

	slog.Info("Catalog loaded", "path", resolved, "items", len(items))
	return items, nil
}
