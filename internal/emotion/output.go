package emotion

// ScoredLabel is one raw model label with its probability.
type ScoredLabel struct {
	Label string
	Score float64
}

// Output is the normalized shape of a model prediction: a ranked list of
// scored labels, best first. Model adapters normalize their native output
// (single label or ranked list) into this shape at the boundary so the rest
// of the pipeline handles exactly one form.
type Output struct {
	Ranked []ScoredLabel
}

// Top returns the best-scoring label, if any.
func (o Output) Top() (ScoredLabel, bool) {
	if len(o.Ranked) == 0 {
		return ScoredLabel{}, false
	}
	return o.Ranked[0], true
}

// SingleOutput wraps one label as a normalized Output.
func SingleOutput(label string, score float64) Output {
	return Output{Ranked: []ScoredLabel{{Label: label, Score: score}}}
}
