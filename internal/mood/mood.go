// Package mood defines the closed sets of moods and content languages used
// throughout the recommendation pipeline, plus the label normalizer that maps
// free-form emotion labels onto the canonical moods.
package mood

// Mood is one of the six canonical moods every prediction and catalog item
// must resolve to.
type Mood string

const (
	Joy        Mood = "joy"
	Sadness    Mood = "sadness"
	Anger      Mood = "anger"
	Fear       Mood = "fear"
	Neutral    Mood = "neutral"
	Excitement Mood = "excitement"
)

// All lists the supported moods in a fixed order. The order matters: the
// lexicon predictor iterates moods in this order and breaks score ties by
// first occurrence.
func All() []Mood {
	return []Mood{Joy, Sadness, Anger, Fear, Neutral, Excitement}
}

// Parse returns the Mood for s if it names one of the supported moods.
func Parse(s string) (Mood, bool) {
	switch Mood(s) {
	case Joy, Sadness, Anger, Fear, Neutral, Excitement:
		return Mood(s), true
	}
	return "", false
}

// Coerce maps any string onto a supported mood, defaulting to Neutral for
// values outside the closed set. Unsupported moods are never an error.
func Coerce(s string) Mood {
	if m, ok := Parse(s); ok {
		return m
	}
	return Neutral
}

// Language is a supported content language code.
type Language string

const (
	English Language = "en"
	Persian Language = "fa"
)

// ParseLanguage returns the Language for s if it is a supported code.
func ParseLanguage(s string) (Language, bool) {
	switch Language(s) {
	case English, Persian:
		return Language(s), true
	}
	return "", false
}

// CoerceLanguage maps any string onto a supported language, defaulting to
// English for unknown codes.
func CoerceLanguage(s string) Language {
	if l, ok := ParseLanguage(s); ok {
		return l
	}
	return English
}
