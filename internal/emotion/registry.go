package emotion

import (
	"log/slog"

	"github.com/Alireza013/Mood-Playlist/internal/mood"
)

// Models is the explicitly constructed, immutable set of per-language model
// predictors. It is built once at startup and passed by reference into the
// classifier; there is no process-wide registry.
type Models struct {
	byLanguage map[mood.Language]*Predictor
}

// LoadModels attempts to initialize a predictor for each requested language.
// A language whose artifacts are missing or fail to load is skipped with a
// warning; absence is a degraded-capability state, not an error. Model mode
// deactivates automatically when no language loads.
func LoadModels(configs ...PredictorConfig) *Models {
	byLang := make(map[mood.Language]*Predictor, len(configs))
	for _, cfg := range configs {
		p, err := NewPredictor(cfg)
		if err != nil {
			slog.Warn("Emotion model unavailable, language falls back to lexicon",
				"language", cfg.Language,
				"model_path", cfg.ModelPath,
				"error", err)
			continue
		}
		byLang[cfg.Language] = p
		slog.Info("Emotion model loaded", "language", cfg.Language)
	}
	return &Models{byLanguage: byLang}
}

// NewModels builds a registry from already-constructed predictors. Intended
// for tests and custom wiring.
func NewModels(predictors ...*Predictor) *Models {
	byLang := make(map[mood.Language]*Predictor, len(predictors))
	for _, p := range predictors {
		if p != nil {
			byLang[p.Language()] = p
		}
	}
	return &Models{byLanguage: byLang}
}

// Active reports whether any language has a loaded model.
func (m *Models) Active() bool {
	return m != nil && len(m.byLanguage) > 0
}

// For returns the predictor for a language, if one loaded.
func (m *Models) For(lang mood.Language) (*Predictor, bool) {
	if m == nil {
		return nil, false
	}
	p, ok := m.byLanguage[lang]
	return p, ok
}

// Languages lists the languages with loaded models.
func (m *Models) Languages() []mood.Language {
	if m == nil {
		return nil
	}
	langs := make([]mood.Language, 0, len(m.byLanguage))
	for _, lang := range []mood.Language{mood.English, mood.Persian} {
		if _, ok := m.byLanguage[lang]; ok {
			langs = append(langs, lang)
		}
	}
	return langs
}

// Close releases all loaded predictors.
func (m *Models) Close() {
	if m == nil {
		return
	}
	for _, p := range m.byLanguage {
		p.Close()
	}
	m.byLanguage = nil
}
