package emotion

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Special wordpiece tokens expected in the vocabulary file.
const (
	tokenCLS = "[CLS]"
	tokenSEP = "[SEP]"
	tokenUNK = "[UNK]"
	tokenPAD = "[PAD]"

	continuationPrefix = "##"
)

// maxWordChars guards the wordpiece loop against pathological inputs.
const maxWordChars = 100

// Vocab is a tokenizer vocabulary loaded from a file where each non-empty
// line is one token and the line number is its id.
type Vocab struct {
	Tokens    []string
	TokenToID map[string]int
}

// LoadVocab loads a vocabulary file. Leading/trailing whitespace is trimmed
// and a UTF-8 BOM on the first line is removed. Duplicate tokens keep the
// first occurrence.
func LoadVocab(path string) (*Vocab, error) {
	if path == "" {
		return nil, errors.New("vocabulary path cannot be empty")
	}
	f, err := os.Open(path) //nolint:gosec // G304: opening a configured vocabulary file is expected
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing vocabulary file: %v\n", err)
		}
	}()

	scanner := bufio.NewScanner(f)
	tokens := make([]string, 0, 1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		if line == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading vocabulary: %w", err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("vocabulary is empty: %s", path)
	}

	toID := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		if _, ok := toID[tok]; !ok {
			toID[tok] = i
		}
	}

	return &Vocab{Tokens: tokens, TokenToID: toID}, nil
}

// Tokenizer converts text into model input ids using greedy longest-match
// wordpiece over a vocabulary.
type Tokenizer struct {
	vocab     *Vocab
	maxSeqLen int
	lowercase bool
}

// NewTokenizer creates a tokenizer. maxSeqLen bounds the encoded sequence
// including the [CLS] and [SEP] markers.
func NewTokenizer(vocab *Vocab, maxSeqLen int, lowercase bool) (*Tokenizer, error) {
	if vocab == nil {
		return nil, errors.New("vocabulary is nil")
	}
	for _, special := range []string{tokenCLS, tokenSEP, tokenUNK} {
		if _, ok := vocab.TokenToID[special]; !ok {
			return nil, fmt.Errorf("vocabulary is missing required token %s", special)
		}
	}
	if maxSeqLen < MinSeqLen {
		return nil, fmt.Errorf("max sequence length too small: %d", maxSeqLen)
	}
	return &Tokenizer{vocab: vocab, maxSeqLen: maxSeqLen, lowercase: lowercase}, nil
}

// Encode produces token ids and an attention mask for text, truncated to the
// configured maximum sequence length.
func (t *Tokenizer) Encode(text string) (ids, mask []int64) {
	cleaned := norm.NFC.String(text)
	if t.lowercase {
		cleaned = strings.ToLower(cleaned)
	}

	ids = make([]int64, 0, t.maxSeqLen)
	ids = append(ids, int64(t.vocab.TokenToID[tokenCLS]))

	for _, word := range splitWords(cleaned) {
		for _, id := range t.wordpiece(word) {
			if len(ids) >= t.maxSeqLen-1 {
				break
			}
			ids = append(ids, id)
		}
		if len(ids) >= t.maxSeqLen-1 {
			break
		}
	}

	ids = append(ids, int64(t.vocab.TokenToID[tokenSEP]))

	mask = make([]int64, len(ids))
	for i := range mask {
		mask[i] = 1
	}
	return ids, mask
}

// wordpiece splits a single word into vocabulary pieces using greedy
// longest-match. Words with no matching prefix become [UNK].
func (t *Tokenizer) wordpiece(word string) []int64 {
	runes := []rune(word)
	if len(runes) > maxWordChars {
		return []int64{int64(t.vocab.TokenToID[tokenUNK])}
	}

	pieces := make([]int64, 0, 4)
	start := 0
	for start < len(runes) {
		end := len(runes)
		matched := -1
		for end > start {
			candidate := string(runes[start:end])
			if start > 0 {
				candidate = continuationPrefix + candidate
			}
			if id, ok := t.vocab.TokenToID[candidate]; ok {
				matched = id
				break
			}
			end--
		}
		if matched < 0 {
			// No piece matches anywhere in this word.
			return []int64{int64(t.vocab.TokenToID[tokenUNK])}
		}
		pieces = append(pieces, int64(matched))
		start = end
	}
	return pieces
}

// splitWords breaks text on whitespace and splits punctuation into separate
// words, the way BERT-style pre-tokenization does.
func splitWords(text string) []string {
	words := make([]string, 0, 16)
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			words = append(words, string(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}
