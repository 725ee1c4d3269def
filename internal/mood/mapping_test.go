package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapLabelExactMatches(t *testing.T) {
	tests := []struct {
		label    string
		expected Mood
	}{
		{"happy", Joy},
		{"love", Joy},
		{"admiration", Joy},
		{"grief", Sadness},
		{"disappointment", Sadness},
		{"rage", Anger},
		{"hatred", Anger},
		{"annoyance", Anger},
		{"scared", Fear},
		{"anxious", Fear},
		{"surprise", Excitement},
		{"wonder", Excitement},
		{"no emotion", Neutral},
		{"other", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapLabel(tt.label))
		})
	}
}

// Mapping a canonical mood name must return that same mood.
func TestMapLabelIdempotentOnMoodNames(t *testing.T) {
	for _, m := range All() {
		assert.Equal(t, m, MapLabel(string(m)))
	}
}

func TestMapLabelNormalization(t *testing.T) {
	assert.Equal(t, Joy, MapLabel("  HAPPY  "))
	assert.Equal(t, Fear, MapLabel("Anxious"))
}

func TestMapLabelSubstringFallback(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected Mood
	}{
		{"label containing a key", "very happy today", Joy},
		{"dataset-style compound label", "anger/disgust", Anger},
		// "sad" precedes "anger" in the table, so the first substring wins.
		{"multiple keys present, declaration order wins", "sadness-anger", Sadness},
		// "joy" is declared before "sad": "overjoyed" contains "joy".
		{"embedded key", "overjoyed", Joy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapLabel(tt.label))
		})
	}
}

func TestMapLabelUnknown(t *testing.T) {
	assert.Equal(t, Neutral, MapLabel("contempt"))
	assert.Equal(t, Neutral, MapLabel(""))
	assert.Equal(t, Neutral, MapLabel("   "))
}
