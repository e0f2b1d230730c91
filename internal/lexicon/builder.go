// Package lexicon builds, serializes and loads word-frequency dictionaries.
//
// A dictionary is built once from a reference corpus and persisted as a
// tab-separated text file. At run time it is loaded back into a read-only
// Vocabulary that constrains sentence generation.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sibyl-nlp/sibyl/internal/parallel"
	"github.com/sibyl-nlp/sibyl/internal/tokenizer"
)

// DefaultMinCount is the occurrence threshold below which words are
// dropped from a built dictionary.
const DefaultMinCount = 10

// Entry is a single word-frequency pair.
type Entry struct {
	Word  string
	Count int
}

// Dictionary is an ordered word-frequency table built from a corpus.
//
// Entries are ordered by descending count, ties broken by ascending word,
// and words are unique. Warning is non-empty when the corpus was too
// sparse to produce any entries at the requested threshold.
type Dictionary struct {
	Entries []Entry
	Warning string
}

// Build tokenizes corpus, tallies word occurrences and returns a
// Dictionary of the words seen at least minCount times. minCount < 1 is
// treated as DefaultMinCount.
//
// A sparse corpus is not an error: the result is an empty dictionary
// carrying a warning, so callers can decide how loudly to complain.
func Build(corpus string, minCount int) *Dictionary {
	if minCount < 1 {
		minCount = DefaultMinCount
	}

	words := tokenizer.Words(corpus)
	counts := tally(words)

	entries := make([]Entry, 0, len(counts))
	for word, count := range counts {
		if count >= minCount {
			entries = append(entries, Entry{Word: word, Count: count})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})

	d := &Dictionary{Entries: entries}
	if len(entries) == 0 {
		if len(words) == 0 {
			d.Warning = "corpus contains no words"
		} else {
			d.Warning = fmt.Sprintf("no word occurs at least %d times in corpus of %d tokens", minCount, len(words))
		}
	}

	return d
}

// tally counts word occurrences, sharding large corpora across workers
// and merging the per-shard tables afterwards.
func tally(words []string) map[string]int {
	cfg := parallel.DefaultConfig()

	shards := make([]map[string]int, cfg.NumWorkers)
	n := parallel.ForChunks(len(words), cfg, func(chunk, start, end int) {
		m := make(map[string]int, (end-start)/4+1)
		for _, w := range words[start:end] {
			m[w]++
		}
		shards[chunk] = m
	})

	if n == 1 {
		return shards[0]
	}

	merged := make(map[string]int)
	for _, m := range shards[:n] {
		for w, c := range m {
			merged[w] += c
		}
	}
	return merged
}

// WriteTo serializes the dictionary as UTF-8 text: a comment header
// recording the entry count, then one "word<TAB>count" line per entry.
// Words never contain tabs or newlines because the tokenizer only emits
// letter runs.
func (d *Dictionary) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)

	var written int64
	n, err := fmt.Fprintf(bw, "# sibyl dictionary\n# entries: %d\n", len(d.Entries))
	written += int64(n)
	if err != nil {
		return written, err
	}

	for _, e := range d.Entries {
		n, err = fmt.Fprintf(bw, "%s\t%d\n", e.Word, e.Count)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	if err := bw.Flush(); err != nil {
		return written, err
	}
	return written, nil
}

// Save writes the serialized dictionary to path.
func (d *Dictionary) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dictionary file: %w", err)
	}

	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write dictionary: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close dictionary file: %w", err)
	}
	return nil
}
