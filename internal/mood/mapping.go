package mood

import "strings"

// labelMapping pairs a synonym label with its canonical mood. The table is a
// slice rather than a map because the substring fallback in MapLabel depends
// on iteration order: some keys are substrings of each other and the first
// match wins, so declaration order must be stable.
type labelMapping struct {
	label string
	mood  Mood
}

var labelTable = []labelMapping{
	// Joy / happiness
	{"joy", Joy},
	{"happy", Joy},
	{"happiness", Joy},
	{"love", Joy},
	{"cheerful", Joy},
	{"delighted", Joy},
	{"admiration", Joy},

	// Sadness
	{"sad", Sadness},
	{"sadness", Sadness},
	{"grief", Sadness},
	{"sorrow", Sadness},
	{"disappointment", Sadness},

	// Anger / hatred
	{"anger", Anger},
	{"angry", Anger},
	{"rage", Anger},
	{"hatred", Anger},
	{"hate", Anger},
	{"annoyance", Anger},
	{"furious", Anger},

	// Fear
	{"fear", Fear},
	{"scared", Fear},
	{"frightened", Fear},
	{"anxious", Fear},
	{"nervous", Fear},

	// Excitement / wonder / surprise
	{"excitement", Excitement},
	{"excited", Excitement},
	{"surprise", Excitement},
	{"surprised", Excitement},
	{"wonder", Excitement},
	{"amazed", Excitement},
	{"enthusiasm", Excitement},

	// Neutral / other
	{"neutral", Neutral},
	{"no emotion", Neutral},
	{"other", Neutral},
}

// MapLabel maps an arbitrary emotion label onto one of the canonical moods.
// It first tries an exact match against the synonym table, then falls back to
// substring containment in declaration order, and finally to Neutral.
// Deterministic and side-effect-free.
func MapLabel(label string) Mood {
	norm := strings.ToLower(strings.TrimSpace(label))
	if norm == "" {
		return Neutral
	}

	for _, m := range labelTable {
		if m.label == norm {
			return m.mood
		}
	}

	for _, m := range labelTable {
		if strings.Contains(norm, m.label) {
			return m.mood
		}
	}

	return Neutral
}
