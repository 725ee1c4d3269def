package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alireza013/Mood-Playlist/internal/mood"
	"github.com/Alireza013/Mood-Playlist/internal/service"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog distribution statistics",
	Long: `Load the catalog and print how many items exist per mood and per
language.

Examples:
  moodplaylist stats
  moodplaylist stats --catalog data/catalog.json --format json`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		format, _ := cmd.Flags().GetString("format")
		if format != outputFormatText && format != outputFormatJSON {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json)", format)
		}

		svc, err := service.NewBuilder().
			WithModels(false).
			WithCatalogPath(cfg.Catalog.Path).
			Build()
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		defer svc.Close()

		stats := svc.Stats()
		out := cmd.OutOrStdout()

		if format == outputFormatJSON {
			obj := struct {
				CatalogSize int            `json:"catalog_size"`
				Moods       map[string]int `json:"moods"`
				Languages   map[string]int `json:"languages"`
			}{
				CatalogSize: svc.CatalogSize(),
				Moods:       make(map[string]int, len(stats.Moods)),
				Languages:   make(map[string]int, len(stats.Languages)),
			}
			for m, n := range stats.Moods {
				obj.Moods[string(m)] = n
			}
			for l, n := range stats.Languages {
				obj.Languages[string(l)] = n
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(obj)
		}

		fmt.Fprintf(out, "Catalog items: %d\n\n", svc.CatalogSize())
		fmt.Fprintln(out, "By mood:")
		for _, m := range mood.All() {
			fmt.Fprintf(out, "  %-11s %d\n", m, stats.Moods[m])
		}
		fmt.Fprintln(out, "\nBy language:")
		for _, l := range []mood.Language{mood.English, mood.Persian} {
			fmt.Fprintf(out, "  %-11s %d\n", l, stats.Languages[l])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringP("format", "f", outputFormatText, "output format: text or json")
}
