package emotion

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Alireza013/Mood-Playlist/internal/mood"
)

// indexPrefix marks index-coded model outputs with no inherent semantic name,
// e.g. "LABEL_3".
const indexPrefix = "LABEL_"

// LabelTable maps model output indices to canonical label strings for one
// language's model.
type LabelTable map[int]string

// armanEmoLabels is the label set of the Persian ArmanEmo model. The model
// config ships without semantic names, so indices are decoded here. Index 3
// (hatred) folds into anger.
var armanEmoLabels = LabelTable{
	0: "anger",
	1: "fear",
	2: "joy",
	3: "anger",
	4: "neutral",
	5: "sadness",
	6: "excitement",
}

// englishEmotionLabels is the label set of the English emotion model.
var englishEmotionLabels = LabelTable{
	0: "sadness",
	1: "joy",
	2: "love",
	3: "anger",
	4: "fear",
	5: "surprise",
}

// builtinLabelTable returns the built-in index table for a language.
func builtinLabelTable(lang mood.Language) LabelTable {
	if lang == mood.Persian {
		return armanEmoLabels
	}
	return englishEmotionLabels
}

// LoadLabelTable reads an index-to-label table from a file with one label per
// line; the line number (zero-based) is the index. Used to override the
// built-in tables when a model ships its own labels.txt.
func LoadLabelTable(path string) (LabelTable, error) {
	f, err := os.Open(path) //nolint:gosec // G304: opening a configured labels file is expected
	if err != nil {
		return nil, fmt.Errorf("failed to open labels file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing labels file: %v\n", err)
		}
	}()

	table := make(LabelTable)
	scanner := bufio.NewScanner(f)
	idx := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if idx == 0 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		if line == "" {
			continue
		}
		table[idx] = line
		idx++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading labels file: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("labels file is empty: %s", path)
	}
	return table, nil
}

// ResolveLabel decodes an index-coded model label ("LABEL_<n>") through the
// table. The second return reports whether decoding happened: labels without
// the index prefix, with a non-numeric suffix, or with an index missing from
// the table are kept unchanged and reported as unresolved.
func ResolveLabel(raw string, table LabelTable) (string, bool) {
	upper := strings.ToUpper(raw)
	if !strings.HasPrefix(upper, indexPrefix) || table == nil {
		return raw, false
	}

	suffix := upper[strings.LastIndex(upper, "_")+1:]
	idx, err := strconv.Atoi(suffix)
	if err != nil {
		return raw, false
	}

	label, ok := table[idx]
	if !ok {
		return raw, false
	}
	return label, true
}
