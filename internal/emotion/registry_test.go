package emotion

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alireza013/Mood-Playlist/internal/mood"
)

// Missing model artifacts must not be an error: the language is simply
// unavailable and model mode deactivates when nothing loads.
func TestLoadModelsMissingArtifacts(t *testing.T) {
	dir := t.TempDir()

	enCfg := DefaultPredictorConfig(mood.English)
	enCfg.ModelPath = filepath.Join(dir, "en", "model.onnx")
	enCfg.VocabPath = filepath.Join(dir, "en", "vocab.txt")
	faCfg := DefaultPredictorConfig(mood.Persian)
	faCfg.ModelPath = filepath.Join(dir, "fa", "model.onnx")
	faCfg.VocabPath = filepath.Join(dir, "fa", "vocab.txt")

	m := LoadModels(enCfg, faCfg)

	assert.False(t, m.Active())
	_, ok := m.For(mood.English)
	assert.False(t, ok)
	assert.Empty(t, m.Languages())

	// A classifier over an empty registry is lexicon-only.
	c := NewClassifier(m)
	assert.False(t, c.ModelActive(mood.English))
	assert.False(t, c.ModelActive(mood.Persian))
}

func TestModelsNilSafety(t *testing.T) {
	var m *Models
	assert.False(t, m.Active())
	_, ok := m.For(mood.English)
	assert.False(t, ok)
	assert.Nil(t, m.Languages())
	m.Close()
}

func TestDefaultPredictorConfig(t *testing.T) {
	en := DefaultPredictorConfig(mood.English)
	assert.True(t, en.Lowercase)
	assert.Equal(t, 128, en.MaxSeqLen)

	fa := DefaultPredictorConfig(mood.Persian)
	assert.False(t, fa.Lowercase)
	assert.Contains(t, fa.ModelPath, filepath.Join("emotion", "fa"))
}

func TestPredictorConfigUpdateModelPath(t *testing.T) {
	cfg := DefaultPredictorConfig(mood.Persian)
	cfg.UpdateModelPath("/custom/models")

	assert.Equal(t, filepath.Join("/custom/models", "emotion", "fa", "model.onnx"), cfg.ModelPath)
	assert.Equal(t, filepath.Join("/custom/models", "emotion", "fa", "vocab.txt"), cfg.VocabPath)
	assert.Equal(t, filepath.Join("/custom/models", "emotion", "fa", "labels.txt"), cfg.LabelsPath)
}
