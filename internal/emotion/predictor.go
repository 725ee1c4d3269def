package emotion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	onnxrt "github.com/yalue/onnxruntime_go"

	"github.com/Alireza013/Mood-Playlist/internal/models"
	"github.com/Alireza013/Mood-Playlist/internal/mood"
)

const (
	// DefaultMaxSeqLen is the default token capacity per input text.
	DefaultMaxSeqLen = 128

	// MinSeqLen is the smallest usable sequence length ([CLS], one token, [SEP]).
	MinSeqLen = 3
)

// PredictorConfig controls a single language's model predictor.
type PredictorConfig struct {
	Language   mood.Language
	ModelPath  string
	VocabPath  string
	LabelsPath string // optional; built-in table used when missing
	MaxSeqLen  int
	NumThreads int
	Lowercase  bool // lowercase input before tokenization (uncased models)
}

// DefaultPredictorConfig provides sensible defaults for a language.
func DefaultPredictorConfig(lang mood.Language) PredictorConfig {
	return PredictorConfig{
		Language:   lang,
		ModelPath:  models.GetEmotionModelPath("", string(lang)),
		VocabPath:  models.GetVocabPath("", string(lang)),
		LabelsPath: models.GetLabelsPath("", string(lang)),
		MaxSeqLen:  DefaultMaxSeqLen,
		NumThreads: 0,
		Lowercase:  lang == mood.English,
	}
}

// UpdateModelPath relocates the artifact paths under the provided models dir.
func (c *PredictorConfig) UpdateModelPath(modelsDir string) {
	c.ModelPath = models.GetEmotionModelPath(modelsDir, string(c.Language))
	c.VocabPath = models.GetVocabPath(modelsDir, string(c.Language))
	c.LabelsPath = models.GetLabelsPath(modelsDir, string(c.Language))
}

// Predictor performs emotion classification for one language using ONNX
// Runtime. Weights are immutable shared state loaded once; Predict is safe
// for concurrent use.
type Predictor struct {
	cfg        PredictorConfig
	session    *onnxrt.DynamicAdvancedSession
	inputNames []string
	tokenizer  *Tokenizer
	labels     LabelTable
	mu         sync.RWMutex
}

// NewPredictor creates a model predictor for one language. Any failure here
// means the language runs lexicon-only; callers treat the error as a
// degraded-capability signal, not a fatal one.
func NewPredictor(cfg PredictorConfig) (*Predictor, error) {
	if err := models.ValidateModelExists(cfg.ModelPath); err != nil {
		return nil, err
	}

	vocab, err := LoadVocab(cfg.VocabPath)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	tokenizer, err := NewTokenizer(vocab, cfg.MaxSeqLen, cfg.Lowercase)
	if err != nil {
		return nil, fmt.Errorf("init tokenizer: %w", err)
	}

	labels := builtinLabelTable(cfg.Language)
	if cfg.LabelsPath != "" {
		if _, err := os.Stat(cfg.LabelsPath); err == nil {
			loaded, err := LoadLabelTable(cfg.LabelsPath)
			if err != nil {
				return nil, fmt.Errorf("load labels: %w", err)
			}
			labels = loaded
		}
	}

	if err := initializeONNXEnvironment(); err != nil {
		return nil, err
	}

	session, inputNames, err := createSession(cfg)
	if err != nil {
		return nil, err
	}

	slog.Debug("Emotion predictor initialized",
		"language", cfg.Language,
		"model_path", cfg.ModelPath,
		"max_seq_len", cfg.MaxSeqLen)

	return &Predictor{
		cfg:        cfg,
		session:    session,
		inputNames: inputNames,
		tokenizer:  tokenizer,
		labels:     labels,
	}, nil
}

// createSession validates the model IO signature and opens an ONNX session.
func createSession(cfg PredictorConfig) (*onnxrt.DynamicAdvancedSession, []string, error) {
	inputs, outputs, err := onnxrt.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("io info: %w", err)
	}
	if len(inputs) == 0 || len(outputs) != 1 {
		return nil, nil, fmt.Errorf("unexpected io (in:%d out:%d)", len(inputs), len(outputs))
	}

	// Text classification models take input_ids plus optional attention_mask.
	inputNames := make([]string, 0, len(inputs))
	for _, in := range inputs {
		inputNames = append(inputNames, in.Name)
	}
	if len(inputNames) > 2 {
		return nil, nil, fmt.Errorf("expected at most 2 inputs, got %d", len(inputNames))
	}

	opts, err := onnxrt.NewSessionOptions()
	if err != nil {
		return nil, nil, fmt.Errorf("session opts: %w", err)
	}
	defer func() {
		if err := opts.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying session options: %v\n", err)
		}
	}()

	if cfg.NumThreads > 0 {
		_ = opts.SetIntraOpNumThreads(cfg.NumThreads)
	}

	session, err := onnxrt.NewDynamicAdvancedSession(cfg.ModelPath, inputNames, []string{outputs[0].Name}, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("session: %w", err)
	}
	return session, inputNames, nil
}

// Close releases the ONNX session.
func (p *Predictor) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session != nil {
		if err := p.session.Destroy(); err != nil {
			fmt.Fprintf(os.Stderr, "Error destroying session: %v\n", err)
		}
		p.session = nil
	}
}

// Language returns the language this predictor serves.
func (p *Predictor) Language() mood.Language { return p.cfg.Language }

// Labels returns the index-to-label table in use.
func (p *Predictor) Labels() LabelTable { return p.labels }

// Predict runs inference on text and returns ranked raw labels, best first.
// The context is only consulted before the (short) inference call; callers
// that need cancellation mid-flight discard the result instead.
func (p *Predictor) Predict(ctx context.Context, text string) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	p.mu.RLock()
	session := p.session
	p.mu.RUnlock()
	if session == nil {
		return Output{}, errors.New("predictor session is closed")
	}

	ids, mask := p.tokenizer.Encode(text)
	probs, err := p.runInference(session, ids, mask)
	if err != nil {
		return Output{}, err
	}

	ranked := make([]ScoredLabel, 0, len(probs))
	for idx, prob := range probs {
		label := fmt.Sprintf("%s%d", indexPrefix, idx)
		if named, ok := p.labels[idx]; ok {
			label = named
		}
		ranked = append(ranked, ScoredLabel{Label: label, Score: prob})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	return Output{Ranked: ranked}, nil
}

// runInference feeds the encoded sequence through the session and returns
// class probabilities.
func (p *Predictor) runInference(session *onnxrt.DynamicAdvancedSession, ids, mask []int64) ([]float64, error) {
	shape := onnxrt.NewShape(1, int64(len(ids)))

	idsTensor, err := onnxrt.NewTensor(shape, ids)
	if err != nil {
		return nil, fmt.Errorf("input tensor: %w", err)
	}
	defer destroyValue(idsTensor)

	inputs := []onnxrt.Value{idsTensor}
	if len(p.inputNames) == 2 {
		maskTensor, err := onnxrt.NewTensor(shape, mask)
		if err != nil {
			return nil, fmt.Errorf("mask tensor: %w", err)
		}
		defer destroyValue(maskTensor)
		inputs = append(inputs, maskTensor)
	}

	outputs := []onnxrt.Value{nil}
	if err := session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	defer destroyValue(outputs[0])

	logitsTensor, ok := outputs[0].(*onnxrt.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("expected float32 tensor, got %T", outputs[0])
	}

	logits := logitsTensor.GetData()
	if len(logits) == 0 {
		return nil, errors.New("empty logits")
	}
	return softmax(logits), nil
}

func destroyValue(v onnxrt.Value) {
	if v == nil {
		return
	}
	if err := v.Destroy(); err != nil {
		fmt.Fprintf(os.Stderr, "Error destroying tensor: %v\n", err)
	}
}

// initializeONNXEnvironment locates the runtime library and initializes the
// ONNX environment once per process.
func initializeONNXEnvironment() error {
	if err := setONNXLibraryPath(); err != nil {
		return fmt.Errorf("onnx lib path: %w", err)
	}
	if !onnxrt.IsInitialized() {
		if err := onnxrt.InitializeEnvironment(); err != nil {
			return fmt.Errorf("init onnx: %w", err)
		}
	}
	return nil
}

// getONNXLibName returns the appropriate library filename for the current OS.
func getONNXLibName() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return "libonnxruntime.so", nil
	case "darwin":
		return "libonnxruntime.dylib", nil
	case "windows":
		return "onnxruntime.dll", nil
	default:
		return "", fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}

// setONNXLibraryPath attempts to locate the ONNX Runtime shared library.
func setONNXLibraryPath() error {
	system := []string{
		"/usr/local/lib/libonnxruntime.so",
		"/usr/lib/libonnxruntime.so",
		"/opt/onnxruntime/cpu/lib/libonnxruntime.so",
	}
	for _, p := range system {
		if _, err := os.Stat(p); err == nil {
			onnxrt.SetSharedLibraryPath(p)
			return nil
		}
	}

	libName, err := getONNXLibName()
	if err != nil {
		return err
	}

	p := filepath.Join(models.GetModelsDir(""), "..", "onnxruntime", "lib", libName)
	if _, err := os.Stat(p); err != nil {
		return fmt.Errorf("ONNX Runtime library not found at %s", p)
	}
	onnxrt.SetSharedLibraryPath(p)
	return nil
}

func softmax(logits []float32) []float64 {
	if len(logits) == 0 {
		return nil
	}

	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}

	var sum float64
	probs := make([]float64, len(logits))
	for i, v := range logits {
		exp := math.Exp(float64(v - maxLogit))
		probs[i] = exp
		sum += exp
	}

	for i := range probs {
		probs[i] /= sum
	}

	return probs
}
