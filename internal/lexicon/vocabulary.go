package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Vocabulary is the in-memory form of a persisted dictionary: parallel
// word and count slices in file order, plus a membership set for O(1)
// containment checks.
//
// A Vocabulary is built once and never mutated afterwards, so it is safe
// for concurrent readers. Generation code takes request-local copies of
// anything it needs to modify (see Weights).
type Vocabulary struct {
	Words  []string
	Counts []int

	// members maps each word to its index in Words.
	members map[string]int
}

// New creates a Vocabulary from parallel word and count slices. Counts
// shorter than words are padded with 1. Mostly useful for fixtures.
func New(words []string, counts []int) *Vocabulary {
	v := &Vocabulary{
		Words:   words,
		Counts:  counts,
		members: make(map[string]int, len(words)),
	}
	for len(v.Counts) < len(v.Words) {
		v.Counts = append(v.Counts, 1)
	}
	for i, w := range words {
		if _, ok := v.members[w]; !ok {
			v.members[w] = i
		}
	}
	return v
}

// Load reads a serialized dictionary from path.
//
// If the file cannot be read, the returned error marks the vocabulary as
// unavailable; generation must not proceed without one.
func Load(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary %s: %w", path, err)
	}
	defer f.Close()

	v, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	return v, nil
}

// Read parses dictionary lines from r.
//
// Blank lines and lines starting with '#' are skipped. Data lines are
// "word<TAB>count"; a count that fails to parse defaults to 1, and lines
// without a tab or without a word are skipped rather than failing the
// whole load.
func Read(r io.Reader) (*Vocabulary, error) {
	var (
		words  []string
		counts []int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, countText, ok := strings.Cut(line, "\t")
		if !ok || word == "" {
			continue
		}

		count, err := strconv.Atoi(strings.TrimSpace(countText))
		if err != nil || count < 1 {
			count = 1
		}

		words = append(words, word)
		counts = append(counts, count)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return New(words, counts), nil
}

// Len returns the number of vocabulary words.
func (v *Vocabulary) Len() int {
	return len(v.Words)
}

// Contains reports whether word is part of the vocabulary.
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.members[word]
	return ok
}

// Weights returns a fresh float64 copy of the counts, suitable for
// request-local mutation by the sampler.
func (v *Vocabulary) Weights() []float64 {
	weights := make([]float64, len(v.Counts))
	for i, c := range v.Counts {
		weights[i] = float64(c)
	}
	return weights
}

// Index returns the position of word in the vocabulary, or -1.
func (v *Vocabulary) Index(word string) int {
	if i, ok := v.members[word]; ok {
		return i
	}
	return -1
}
