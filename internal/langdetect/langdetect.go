// Package langdetect classifies input text as English or Persian using a
// cheap script-range heuristic with a statistical fallback.
package langdetect

import (
	"log/slog"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/Alireza013/Mood-Playlist/internal/mood"
)

// Arabic-script block used by Persian.
const (
	arabicBlockStart = 0x0600
	arabicBlockEnd   = 0x06FF
)

// Detector classifies text into one of the supported content languages.
// The statistical detector is restricted to the supported languages and is
// deterministic, so repeated calls on the same text give the same answer.
type Detector struct {
	statistical lingua.LanguageDetector
}

// NewDetector creates a detector backed by lingua restricted to English and
// Persian.
func NewDetector() *Detector {
	statistical := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Persian).
		Build()

	slog.Debug("Language detector initialized", "languages", []string{"en", "fa"})
	return &Detector{statistical: statistical}
}

// Detect returns the language of text. Empty or whitespace-only text is
// English. Any Arabic-script character makes the text Persian immediately;
// script detection is cheap and reliable for this domain, so it takes
// precedence over the statistical detector. Statistical results outside the
// supported set coerce to English.
func (d *Detector) Detect(text string) mood.Language {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return mood.English
	}

	if containsArabicScript(cleaned) {
		return mood.Persian
	}

	detected, ok := d.statistical.DetectLanguageOf(cleaned)
	if !ok {
		return mood.English
	}

	switch detected {
	case lingua.Persian:
		return mood.Persian
	case lingua.English:
		return mood.English
	default:
		return mood.English
	}
}

func containsArabicScript(s string) bool {
	for _, r := range s {
		if r >= arabicBlockStart && r <= arabicBlockEnd {
			return true
		}
	}
	return false
}
