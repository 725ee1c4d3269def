package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetModelsDir(t *testing.T) {
	tests := []struct {
		name        string
		explicitDir string
		envVar      string
		expected    func() string
	}{
		{
			name:        "explicit directory takes precedence",
			explicitDir: "/explicit/path",
			envVar:      "/env/path",
			expected:    func() string { return "/explicit/path" },
		},
		{
			name:        "environment variable used when no explicit dir",
			explicitDir: "",
			envVar:      "/env/path",
			expected:    func() string { return "/env/path" },
		},
		{
			name:        "project root default when nothing set",
			explicitDir: "",
			envVar:      "",
			expected: func() string {
				if root, err := findProjectRoot(); err == nil {
					return filepath.Join(root, DefaultModelsDir)
				}
				return DefaultModelsDir
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVar != "" {
				t.Setenv(EnvModelsDir, tt.envVar)
			} else {
				t.Setenv(EnvModelsDir, "")
				os.Unsetenv(EnvModelsDir)
			}
			assert.Equal(t, tt.expected(), GetModelsDir(tt.explicitDir))
		})
	}
}

func TestGetEmotionModelPaths(t *testing.T) {
	dir := "/tmp/test-models"

	assert.Equal(t, filepath.Join(dir, TypeEmotion, "fa", ModelFile), GetEmotionModelPath(dir, "fa"))
	assert.Equal(t, filepath.Join(dir, TypeEmotion, "en", VocabFile), GetVocabPath(dir, "en"))
	assert.Equal(t, filepath.Join(dir, TypeEmotion, "en", LabelsFile), GetLabelsPath(dir, "en"))
}

func TestValidateModelExists(t *testing.T) {
	tmpDir := t.TempDir()

	missing := filepath.Join(tmpDir, "missing.onnx")
	assert.Error(t, ValidateModelExists(missing))

	present := filepath.Join(tmpDir, "model.onnx")
	require.NoError(t, os.WriteFile(present, []byte("stub"), 0o600))
	assert.NoError(t, ValidateModelExists(present))
}

func TestListAvailableModels(t *testing.T) {
	infos := ListAvailableModels()
	require.Len(t, infos, 2)

	langs := []string{infos[0].Language, infos[1].Language}
	assert.Contains(t, langs, "en")
	assert.Contains(t, langs, "fa")
	for _, info := range infos {
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.Dir)
	}
}
