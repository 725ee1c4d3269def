// Package models resolves the on-disk locations of the optional per-language
// emotion model artifacts. Models are located or downloaded by an external
// mechanism; this package only answers where they are expected to live.
package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact filenames inside each language directory.
const (
	ModelFile  = "model.onnx"
	VocabFile  = "vocab.txt"
	LabelsFile = "labels.txt"
)

// Artifact type category for the organized directory structure.
const TypeEmotion = "emotion"

// Default models directory.
const DefaultModelsDir = "models"

// Environment variable for models directory override.
const EnvModelsDir = "MOOD_PLAYLIST_MODELS_DIR"

// findProjectRoot finds the project root by looking for go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.New("could not find project root (go.mod not found)")
}

// ModelInfo contains metadata about a model artifact set.
type ModelInfo struct {
	Name        string
	Language    string
	Description string
	Dir         string
}

// GetModelsDir returns the models directory path from various sources.
// Priority: 1. Explicit modelsDir parameter, 2. Environment variable,
// 3. Project root + default.
func GetModelsDir(modelsDir string) string {
	if modelsDir != "" {
		return modelsDir
	}

	if envDir := os.Getenv(EnvModelsDir); envDir != "" {
		return envDir
	}

	if projectRoot, err := findProjectRoot(); err == nil {
		return filepath.Join(projectRoot, DefaultModelsDir)
	}

	return DefaultModelsDir
}

// GetEmotionModelDir returns the artifact directory for a language's emotion
// model, e.g. models/emotion/fa.
func GetEmotionModelDir(modelsDir, language string) string {
	return filepath.Join(GetModelsDir(modelsDir), TypeEmotion, language)
}

// GetEmotionModelPath returns the ONNX model path for a language.
func GetEmotionModelPath(modelsDir, language string) string {
	return filepath.Join(GetEmotionModelDir(modelsDir, language), ModelFile)
}

// GetVocabPath returns the tokenizer vocabulary path for a language.
func GetVocabPath(modelsDir, language string) string {
	return filepath.Join(GetEmotionModelDir(modelsDir, language), VocabFile)
}

// GetLabelsPath returns the optional index-to-label table path for a language.
func GetLabelsPath(modelsDir, language string) string {
	return filepath.Join(GetEmotionModelDir(modelsDir, language), LabelsFile)
}

// ValidateModelExists checks if a model file exists at the given path.
func ValidateModelExists(modelPath string) error {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return fmt.Errorf("model file not found: %s", modelPath)
	}
	return nil
}

// ListAvailableModels returns information about the expected model artifact
// sets, whether or not they are present on disk.
func ListAvailableModels() []ModelInfo {
	return []ModelInfo{
		{
			Name:        "emotion-en",
			Language:    "en",
			Description: "English emotion classification model",
			Dir:         GetEmotionModelDir("", "en"),
		},
		{
			Name:        "emotion-fa",
			Language:    "fa",
			Description: "Persian emotion classification model (ArmanEmo label set)",
			Dir:         GetEmotionModelDir("", "fa"),
		},
	}
}
