package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alireza013/Mood-Playlist/internal/models"
)

// modelsCmd represents the models command.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List expected emotion models and their status",
	Long: `List the emotion model artifact sets the application looks for and
whether they are present in the models directory.

Examples:
  moodplaylist models
  moodplaylist models --models-dir /opt/models`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		modelsDir := models.GetModelsDir(cfg.ModelsDir)
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Models directory: %s\n\n", modelsDir)

		for _, info := range models.ListAvailableModels() {
			modelPath := models.GetEmotionModelPath(cfg.ModelsDir, info.Language)
			status := "available"
			if err := models.ValidateModelExists(modelPath); err != nil {
				status = "missing"
			}
			vocabStatus := "available"
			if err := models.ValidateModelExists(models.GetVocabPath(cfg.ModelsDir, info.Language)); err != nil {
				vocabStatus = "missing"
			}

			fmt.Fprintf(out, "%s (%s)\n", info.Name, info.Language)
			fmt.Fprintf(out, "  %s\n", info.Description)
			fmt.Fprintf(out, "  dir:   %s\n", models.GetEmotionModelDir(cfg.ModelsDir, info.Language))
			fmt.Fprintf(out, "  model: %s\n", status)
			fmt.Fprintf(out, "  vocab: %s\n\n", vocabStatus)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
