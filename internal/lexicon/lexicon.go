// Package lexicon implements the keyword-count emotion predictor. It is the
// always-available safety net: two independent keyword tables, one per
// supported language, each mapping the six moods to representative words and
// phrases in that language's script.
package lexicon

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Alireza013/Mood-Playlist/internal/mood"
)

// englishKeywords maps each mood to English indicator words.
var englishKeywords = map[mood.Mood][]string{
	mood.Joy:        {"happy", "joy", "grateful", "great", "awesome", "good", "love"},
	mood.Sadness:    {"sad", "down", "blue", "upset", "depressed", "cry"},
	mood.Anger:      {"angry", "mad", "furious", "irritated", "rage", "hate"},
	mood.Fear:       {"afraid", "scared", "anxious", "worried", "nervous"},
	mood.Neutral:    {"ok", "fine", "meh", "normal"},
	mood.Excitement: {"excited", "hyped", "stoked", "thrilled", "pumped"},
}

// persianKeywords maps each mood to Persian indicator words.
var persianKeywords = map[mood.Mood][]string{
	mood.Joy:        {"خوشحال", "شاد", "خوب", "عالی", "راضی", "عشق", "خنده"},
	mood.Sadness:    {"غمگین", "ناراحت", "بی حوصله", "دلگیر", "گریه", "غصه", "بدبخت"},
	mood.Anger:      {"عصبانی", "خشم", "حرص", "کلافه", "متنفر", "دعوا"},
	mood.Fear:       {"می ترسم", "ترس", "استرس", "نگران", "وحشت"},
	mood.Neutral:    {"معمولی", "بد نیست", "اوکی", "نرمال", "سلام"},
	mood.Excitement: {"هیجان", "متحمس", "ذوق", "انرژی", "باحال"},
}

// Label predicts an emotion label for text by counting keyword occurrences in
// the language's table. The mood with the highest count wins; ties break by
// the fixed mood order of mood.All(). A zero best score yields "neutral".
func Label(text string, lang mood.Language) string {
	// NFC keeps composed Persian characters comparable to the table entries.
	normalized := strings.ToLower(norm.NFC.String(text))

	keywords := englishKeywords
	if lang == mood.Persian {
		keywords = persianKeywords
	}

	best := mood.Neutral
	bestScore := -1
	for _, m := range mood.All() {
		score := 0
		for _, word := range keywords[m] {
			if strings.Contains(normalized, word) {
				score++
			}
		}
		if score > bestScore {
			best = m
			bestScore = score
		}
	}

	if bestScore <= 0 {
		return string(mood.Neutral)
	}
	return string(best)
}
