// Package service wires language detection, emotion classification and the
// recommender into one analysis pipeline behind a fluent builder.
package service

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/Alireza013/Mood-Playlist/internal/emotion"
	"github.com/Alireza013/Mood-Playlist/internal/langdetect"
	"github.com/Alireza013/Mood-Playlist/internal/models"
	"github.com/Alireza013/Mood-Playlist/internal/mood"
	"github.com/Alireza013/Mood-Playlist/internal/recommend"
)

// Config holds configuration for the analysis service and its components.
type Config struct {
	ModelsDir    string
	CatalogPath  string
	EnableModels bool // load ONNX predictors; false keeps the service lexicon-only
	Predictors   []emotion.PredictorConfig
	Workers      int   // worker count for batch analysis (0 = runtime.NumCPU())
	RandSeed     int64 // 0 = non-deterministic recommendation ordering
}

// DefaultConfig returns a default service config with component defaults.
func DefaultConfig() Config {
	return Config{
		ModelsDir:    models.GetModelsDir(""),
		CatalogPath:  "",
		EnableModels: true,
		Predictors: []emotion.PredictorConfig{
			emotion.DefaultPredictorConfig(mood.English),
			emotion.DefaultPredictorConfig(mood.Persian),
		},
		Workers:  runtime.NumCPU(),
		RandSeed: 0,
	}
}

// Builder constructs a Service with fluent configuration.
type Builder struct {
	cfg Config
}

// NewBuilder creates a new service builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithModelsDir sets the models directory and updates predictor paths.
func (b *Builder) WithModelsDir(dir string) *Builder {
	if dir != "" {
		b.cfg.ModelsDir = dir
	}
	for i := range b.cfg.Predictors {
		b.cfg.Predictors[i].UpdateModelPath(b.cfg.ModelsDir)
	}
	return b
}

// WithCatalogPath sets an explicit catalog file path.
func (b *Builder) WithCatalogPath(path string) *Builder {
	b.cfg.CatalogPath = path
	return b
}

// WithModels enables or disables loading of the ONNX predictors. With models
// disabled the classifier runs on the lexicon alone.
func (b *Builder) WithModels(enabled bool) *Builder {
	b.cfg.EnableModels = enabled
	return b
}

// WithThreads sets intra-op thread count for model inference.
func (b *Builder) WithThreads(n int) *Builder {
	if n > 0 {
		for i := range b.cfg.Predictors {
			b.cfg.Predictors[i].NumThreads = n
		}
	}
	return b
}

// WithWorkers sets the number of parallel workers for batch analysis.
func (b *Builder) WithWorkers(n int) *Builder {
	if n > 0 {
		b.cfg.Workers = n
	}
	return b
}

// WithRandSeed pins the recommendation shuffle to a fixed seed. Zero keeps
// the default non-deterministic ordering. The seeded source is mutex-guarded,
// so concurrent analysis stays race-free; the shuffle sequence is only
// reproducible when requests arrive in a fixed order.
func (b *Builder) WithRandSeed(seed int64) *Builder {
	b.cfg.RandSeed = seed
	return b
}

// Service answers analysis requests. It is safe for concurrent use once
// built; all of its components are read-only after Build.
type Service struct {
	cfg         Config
	detector    *langdetect.Detector
	classifier  *emotion.Classifier
	models      *emotion.Models
	recommender *recommend.Recommender
}

// Build initializes the service components. Missing model artifacts and a
// missing catalog degrade the service rather than failing the build; only a
// malformed catalog file is an error.
func (b *Builder) Build() (*Service, error) {
	for i := range b.cfg.Predictors {
		b.cfg.Predictors[i].UpdateModelPath(b.cfg.ModelsDir)
	}

	var registry *emotion.Models
	if b.cfg.EnableModels {
		registry = emotion.LoadModels(b.cfg.Predictors...)
	}
	if registry == nil || !registry.Active() {
		slog.Warn("No emotion models active, classifier runs lexicon-only")
	}

	catalog, err := recommend.LoadCatalog(b.cfg.CatalogPath)
	if err != nil {
		if registry != nil {
			registry.Close()
		}
		return nil, err
	}

	var shuffle recommend.ShuffleFunc
	if b.cfg.RandSeed != 0 {
		shuffle = recommend.SeededShuffle(b.cfg.RandSeed)
	}

	return &Service{
		cfg:         b.cfg,
		detector:    langdetect.NewDetector(),
		classifier:  emotion.NewClassifier(registry),
		models:      registry,
		recommender: recommend.NewRecommenderWithShuffle(catalog, shuffle),
	}, nil
}

// Request is a single analysis request.
type Request struct {
	Text      string `json:"text"`
	MediaType string `json:"media_type,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Language  string `json:"language,omitempty"` // catalog language filter, not the text language
}

// Result is the outcome of analyzing one request.
type Result struct {
	Language        mood.Language              `json:"language"`
	Prediction      emotion.Prediction         `json:"prediction"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// AnalyzeAndRecommend detects the text language, predicts its mood and
// returns matching catalog items. The only error it returns is context
// cancellation; every analysis path has a fallback.
func (s *Service) AnalyzeAndRecommend(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	lang := s.detector.Detect(req.Text)

	// Classification runs on its own goroutine so a cancelled caller can
	// return immediately; the abandoned result is dropped when it arrives.
	predCh := make(chan emotion.Prediction, 1)
	go func() {
		predCh <- s.classifier.Predict(ctx, req.Text, lang)
	}()

	var pred emotion.Prediction
	select {
	case pred = <-predCh:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	recs := s.recommender.Recommend(recommend.Query{
		Mood:      string(pred.Mood),
		MediaType: req.MediaType,
		Limit:     normalizeLimit(req.Limit),
		Language:  req.Language,
	})

	return Result{Language: lang, Prediction: pred, Recommendations: recs}, nil
}

// normalizeLimit maps the request wire value onto query semantics: absent
// (zero) means the default count, negative means none.
func normalizeLimit(limit int) int {
	switch {
	case limit == 0:
		return recommend.DefaultLimit
	case limit < 0:
		return 0
	default:
		return limit
	}
}

// Stats returns catalog distribution counts.
func (s *Service) Stats() recommend.Stats { return s.recommender.Stats() }

// CatalogSize returns the number of loaded catalog items.
func (s *Service) CatalogSize() int { return s.recommender.Size() }

// ModelActive reports whether an ONNX predictor serves the language.
func (s *Service) ModelActive(lang mood.Language) bool {
	return s.classifier.ModelActive(lang)
}

// ModelLanguages returns the languages with active predictors.
func (s *Service) ModelLanguages() []mood.Language {
	if s.models == nil {
		return nil
	}
	return s.models.Languages()
}

// Info returns a map with key service properties for diagnostics.
func (s *Service) Info() map[string]interface{} {
	langs := make([]string, 0, 2)
	for _, l := range s.ModelLanguages() {
		langs = append(langs, string(l))
	}
	return map[string]interface{}{
		"models_dir":      s.cfg.ModelsDir,
		"models_enabled":  s.cfg.EnableModels,
		"model_languages": langs,
		"catalog_size":    s.CatalogSize(),
		"workers":         s.cfg.Workers,
	}
}

// Close releases model resources.
func (s *Service) Close() {
	if s.models != nil {
		s.models.Close()
		s.models = nil
	}
}
