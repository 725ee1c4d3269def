// Package emotion predicts a mood for free-text notes. Two independent
// predictors contribute: an always-available keyword lexicon and an optional
// per-language ONNX model. The classifier arbitrates between them with a
// fixed precedence policy.
package emotion

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Alireza013/Mood-Playlist/internal/lexicon"
	"github.com/Alireza013/Mood-Playlist/internal/mood"
)

// Source identifies which predictor produced the final mood.
type Source string

const (
	SourceFallback           Source = "fallback"
	SourceLexicon            Source = "lexicon"
	SourceTransformer        Source = "transformer"
	SourceLexiconOverrideNeg Source = "lexicon_override_neg"
	SourceLexiconOverridePos Source = "lexicon_override_pos"
)

// Prediction is the immutable result of classifying one text.
type Prediction struct {
	Label  string    `json:"label"`
	Mood   mood.Mood `json:"mood"`
	Source Source    `json:"source"`
}

// ModelPredictor is the model side of the classifier. *Predictor implements
// it; tests substitute stubs.
type ModelPredictor interface {
	Predict(ctx context.Context, text string) (Output, error)
	Labels() LabelTable
}

// Classifier combines the lexicon and model predictors.
type Classifier struct {
	predictors map[mood.Language]ModelPredictor
}

// NewClassifier creates a classifier over the loaded model registry. A nil
// or empty registry yields a lexicon-only classifier.
func NewClassifier(m *Models) *Classifier {
	predictors := make(map[mood.Language]ModelPredictor)
	if m != nil {
		for _, lang := range m.Languages() {
			if p, ok := m.For(lang); ok {
				predictors[lang] = p
			}
		}
	}
	return &Classifier{predictors: predictors}
}

// NewClassifierWith creates a classifier from explicit per-language model
// predictors.
func NewClassifierWith(predictors map[mood.Language]ModelPredictor) *Classifier {
	if predictors == nil {
		predictors = make(map[mood.Language]ModelPredictor)
	}
	return &Classifier{predictors: predictors}
}

// ModelActive reports whether a model predictor is available for lang.
func (c *Classifier) ModelActive(lang mood.Language) bool {
	_, ok := c.predictors[lang]
	return ok
}

// Predict classifies text written in lang. Blank text short-circuits to a
// neutral fallback. The lexicon prediction is always computed as the safety
// net; when a model is available its result is arbitrated against the
// lexicon's. Every path returns a valid Prediction.
func (c *Classifier) Predict(ctx context.Context, text string, lang mood.Language) Prediction {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return Prediction{Label: string(mood.Neutral), Mood: mood.Neutral, Source: SourceFallback}
	}

	lexLabel := lexicon.Label(cleaned, lang)
	lexMood := mood.MapLabel(lexLabel)

	if predictor, ok := c.predictors[lang]; ok {
		if pred, ok := c.predictWithModel(ctx, predictor, cleaned, lang, lexLabel, lexMood); ok {
			return pred
		}
	}

	return Prediction{Label: lexLabel, Mood: lexMood, Source: SourceLexicon}
}

// predictWithModel runs model inference and arbitrates against the lexicon
// result. A false return means the model failed for this request and the
// caller should fall back to the lexicon.
func (c *Classifier) predictWithModel(
	ctx context.Context,
	predictor ModelPredictor,
	text string,
	lang mood.Language,
	lexLabel string,
	lexMood mood.Mood,
) (Prediction, bool) {
	out, err := predictor.Predict(ctx, text)
	if err != nil {
		slog.Debug("Model prediction failed, using lexicon", "language", lang, "error", err)
		return Prediction{}, false
	}

	top, ok := out.Top()
	if !ok {
		return Prediction{}, false
	}

	resolved, _ := ResolveLabel(top.Label, predictor.Labels())
	tfMood := mood.MapLabel(resolved)

	label, chosenMood, source := resolveWithLexicon(resolved, tfMood, lexLabel, lexMood)
	return Prediction{Label: label, Mood: chosenMood, Source: source}, true
}

// resolveWithLexicon arbitrates between the model (tf) and lexicon (lex)
// results. Agreement goes to the model. Negative-affect lexicon signals
// override a model that stayed neutral/positive, and positive-affect lexicon
// signals override a model that went negative/neutral; under-flagging either
// direction is worse than trusting the keyword hit. Anything else defaults
// to the model result.
func resolveWithLexicon(tfLabel string, tfMood mood.Mood, lexLabel string, lexMood mood.Mood) (string, mood.Mood, Source) {
	if tfMood == lexMood {
		return tfLabel, tfMood, SourceTransformer
	}

	if isNegative(lexMood) && (tfMood == mood.Neutral || isPositive(tfMood)) {
		return lexLabel, lexMood, SourceLexiconOverrideNeg
	}

	if isPositive(lexMood) && (isNegative(tfMood) || tfMood == mood.Neutral) {
		return lexLabel, lexMood, SourceLexiconOverridePos
	}

	return tfLabel, tfMood, SourceTransformer
}

func isNegative(m mood.Mood) bool {
	return m == mood.Anger || m == mood.Sadness || m == mood.Fear
}

func isPositive(m mood.Mood) bool {
	return m == mood.Joy || m == mood.Excitement
}
