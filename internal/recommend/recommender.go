package recommend

import (
	"math/rand"
	"sync"

	"github.com/Alireza013/Mood-Playlist/internal/mood"
)

// DefaultLimit is the number of recommendations returned when the caller
// does not ask for a specific count.
const DefaultLimit = 6

// Recommendation is a catalog item returned to the caller. It has no
// identity beyond the request that produced it.
type Recommendation struct {
	Title    string        `json:"title"`
	Creator  string        `json:"creator"`
	Type     MediaType     `json:"type"`
	Mood     mood.Mood     `json:"mood"`
	Language mood.Language `json:"language"`
}

// Query selects and bounds a recommendation set. Zero values mean
// "unfiltered" for MediaType and Language; a negative Limit means
// DefaultLimit, and zero means no results.
type Query struct {
	Mood      string
	MediaType string
	Limit     int
	Language  string
}

// DefaultQuery returns a query for a mood with the default limit and no
// media-type or language filter.
func DefaultQuery(m string) Query {
	return Query{Mood: m, Limit: DefaultLimit}
}

// ShuffleFunc shuffles n elements using swap. Injected so tests can pin the
// ordering while production keeps true randomness.
type ShuffleFunc func(n int, swap func(i, j int))

// SeededShuffle returns a ShuffleFunc drawing from a fixed-seed source. A
// bare rand.Rand is not synchronized, so the source is guarded by a mutex
// and the returned func is safe for concurrent recommenders.
func SeededShuffle(seed int64) ShuffleFunc {
	var mu sync.Mutex
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // G404: reproducible ordering, not cryptography
	return func(n int, swap func(i, j int)) {
		mu.Lock()
		defer mu.Unlock()
		rng.Shuffle(n, swap)
	}
}

// Recommender serves mood-filtered randomized subsets of the catalog.
// The catalog is read-only; Recommend and Stats are safe for concurrent use
// as long as the shuffle source is (the default global source is locked).
type Recommender struct {
	catalog []CatalogItem
	shuffle ShuffleFunc
}

// NewRecommender creates a recommender over catalog using the locked global
// shuffle source.
func NewRecommender(catalog []CatalogItem) *Recommender {
	return NewRecommenderWithShuffle(catalog, nil)
}

// NewRecommenderWithShuffle creates a recommender with an explicit shuffle
// source, e.g. a seeded rand.Rand's Shuffle for deterministic tests. A nil
// shuffle uses the locked global source.
func NewRecommenderWithShuffle(catalog []CatalogItem, shuffle ShuffleFunc) *Recommender {
	if shuffle == nil {
		shuffle = rand.Shuffle //nolint:gosec // G404: shuffle variety, not cryptography
	}
	return &Recommender{catalog: catalog, shuffle: shuffle}
}

// Recommend returns at most q.Limit catalog items matching the query, in
// random order. Unsupported moods coerce to neutral; unsupported media types
// and languages leave that filter off. Never fails: the worst case is an
// empty result.
func (r *Recommender) Recommend(q Query) []Recommendation {
	m := mood.Coerce(q.Mood)

	mediaType, filterType := ParseMediaType(q.MediaType)
	lang, filterLang := mood.ParseLanguage(q.Language)

	filtered := make([]CatalogItem, 0, len(r.catalog))
	for _, item := range r.catalog {
		if item.Mood != m {
			continue
		}
		if filterType && item.Type != mediaType {
			continue
		}
		if filterLang && item.Language != lang {
			continue
		}
		filtered = append(filtered, item)
	}

	r.shuffle(len(filtered), func(i, j int) {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	})

	limit := q.Limit
	if limit < 0 {
		limit = DefaultLimit
	}
	if limit > len(filtered) {
		limit = len(filtered)
	}

	picks := make([]Recommendation, 0, limit)
	for _, item := range filtered[:limit] {
		picks = append(picks, Recommendation{
			Title:    item.Title,
			Creator:  item.Creator,
			Type:     item.Type,
			Mood:     item.Mood,
			Language: item.Language,
		})
	}
	return picks
}

// Stats holds catalog distribution counts for dashboard display.
type Stats struct {
	Moods     map[mood.Mood]int     `json:"moods"`
	Languages map[mood.Language]int `json:"languages"`
}

// Stats recomputes per-mood and per-language counts over the full catalog.
// Not cached; the catalog is small and read-only.
func (r *Recommender) Stats() Stats {
	s := Stats{
		Moods:     make(map[mood.Mood]int),
		Languages: make(map[mood.Language]int),
	}
	for _, item := range r.catalog {
		s.Moods[item.Mood]++
		s.Languages[item.Language]++
	}
	return s
}

// Size returns the total catalog size.
func (r *Recommender) Size() int { return len(r.catalog) }
