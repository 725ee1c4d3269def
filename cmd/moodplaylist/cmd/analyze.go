package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alireza013/Mood-Playlist/internal/service"
)

const (
	outputFormatJSON = "json"
	outputFormatText = "text"
)

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze text mood and recommend catalog items",
	Long: `Analyze a free-text note, infer its mood and print matching songs and
movies from the catalog.

Text can be passed as arguments or read line by line from a file, where each
line is analyzed independently.

Examples:
  moodplaylist analyze "I had a wonderful day"
  moodplaylist analyze --media-type movie --limit 3 "feeling down"
  moodplaylist analyze --file notes.txt --format json`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		inputFile, _ := cmd.Flags().GetString("file")
		mediaType, _ := cmd.Flags().GetString("media-type")
		limit, _ := cmd.Flags().GetInt("limit")
		language, _ := cmd.Flags().GetString("language")
		format, _ := cmd.Flags().GetString("format")
		noModels, _ := cmd.Flags().GetBool("no-models")
		seed, _ := cmd.Flags().GetInt64("seed")

		if format != outputFormatText && format != outputFormatJSON {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json)", format)
		}

		texts, err := collectInputTexts(args, inputFile)
		if err != nil {
			return err
		}
		if len(texts) == 0 {
			return errors.New("no input text provided")
		}

		svcCfg := cfg.ToServiceConfig()
		if noModels {
			svcCfg.EnableModels = false
		}
		if seed != 0 {
			svcCfg.RandSeed = seed
		}

		svc, err := service.NewBuilder().
			WithModelsDir(svcCfg.ModelsDir).
			WithCatalogPath(svcCfg.CatalogPath).
			WithModels(svcCfg.EnableModels).
			WithWorkers(svcCfg.Workers).
			WithRandSeed(svcCfg.RandSeed).
			Build()
		if err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		defer svc.Close()

		reqs := make([]service.Request, len(texts))
		for i, text := range texts {
			reqs[i] = service.Request{
				Text:      text,
				MediaType: mediaType,
				Limit:     limit,
				Language:  language,
			}
		}

		var results []service.Result
		// Seeded runs stay sequential: reproducible ordering needs a
		// fixed request order, which parallel workers cannot give.
		if len(reqs) == 1 || svcCfg.RandSeed != 0 {
			results = make([]service.Result, 0, len(reqs))
			for _, req := range reqs {
				res, err := svc.AnalyzeAndRecommend(cmd.Context(), req)
				if err != nil {
					return err
				}
				results = append(results, res)
			}
		} else {
			results, err = svc.AnalyzeBatch(cmd.Context(), reqs)
			if err != nil {
				return err
			}
		}

		return writeAnalyzeResults(cmd, texts, results, format)
	},
}

// collectInputTexts gathers texts from arguments and an optional input file.
func collectInputTexts(args []string, inputFile string) ([]string, error) {
	var texts []string
	if len(args) > 0 {
		texts = append(texts, strings.Join(args, " "))
	}

	if inputFile == "" {
		return texts, nil
	}

	f, err := os.Open(inputFile) //nolint:gosec // G304: user-provided input path is expected
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	return texts, nil
}

// writeAnalyzeResults prints results in the requested format.
func writeAnalyzeResults(cmd *cobra.Command, texts []string, results []service.Result, format string) error {
	out := cmd.OutOrStdout()

	if format == outputFormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Text: %s\n", texts[i])
		fmt.Fprintf(out, "Language: %s\n", res.Language)
		fmt.Fprintf(out, "Mood: %s (label=%s, source=%s)\n",
			res.Prediction.Mood, res.Prediction.Label, res.Prediction.Source)
		if len(res.Recommendations) == 0 {
			fmt.Fprintln(out, "Recommendations: none")
			continue
		}
		fmt.Fprintln(out, "Recommendations:")
		for _, rec := range res.Recommendations {
			fmt.Fprintf(out, "  - [%s] %s by %s (%s, %s)\n",
				rec.Type, rec.Title, rec.Creator, rec.Mood, rec.Language)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("file", "", "read texts line by line from a file")
	analyzeCmd.Flags().String("media-type", "", "restrict recommendations to 'song' or 'movie'")
	analyzeCmd.Flags().Int("limit", 0, "maximum number of recommendations (0 = default)")
	analyzeCmd.Flags().String("language", "", "restrict recommendations to a catalog language (en, fa)")
	analyzeCmd.Flags().StringP("format", "f", outputFormatText, "output format: text or json")
	analyzeCmd.Flags().Bool("no-models", false, "skip ONNX models and use the lexicon only")
	analyzeCmd.Flags().Int64("seed", 0, "fixed random seed for reproducible recommendation order")
}
