// Package lexicon provides word-frequency dictionaries for Sibyl.
//
// This package wraps the internal lexicon implementation and provides a
// clean public API for building, saving and loading the dictionaries
// that constrain generation.
//
// Example usage:
//
//	import "github.com/sibyl-nlp/sibyl/lexicon"
//
//	// Build a dictionary from a corpus and persist it.
//	d := lexicon.Build(corpusText, lexicon.DefaultMinCount)
//	if d.Warning != "" {
//	    log.Println(d.Warning)
//	}
//	if err := d.Save("iliad.dict"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load it back as a runtime vocabulary.
//	vocab, err := lexicon.Load("iliad.dict")
//	if err != nil {
//	    log.Fatal(err)
//	}
package lexicon

import (
	"io"

	"github.com/sibyl-nlp/sibyl/internal/lexicon"
)

// DefaultMinCount is the occurrence threshold below which words are
// dropped from a built dictionary.
const DefaultMinCount = lexicon.DefaultMinCount

// Entry is a single word-frequency pair.
type Entry = lexicon.Entry

// Dictionary is an ordered word-frequency table built from a corpus.
type Dictionary = lexicon.Dictionary

// Vocabulary is the immutable runtime form of a dictionary: parallel
// word and count slices plus a membership set.
type Vocabulary = lexicon.Vocabulary

// Build tokenizes corpus and returns a Dictionary of the words seen at
// least minCount times.
func Build(corpus string, minCount int) *Dictionary {
	return lexicon.Build(corpus, minCount)
}

// New creates a Vocabulary from parallel word and count slices.
func New(words []string, counts []int) *Vocabulary {
	return lexicon.New(words, counts)
}

// Load reads a serialized dictionary from path.
func Load(path string) (*Vocabulary, error) {
	return lexicon.Load(path)
}

// Read parses dictionary lines from r, skipping comments, blanks and
// malformed lines.
func Read(r io.Reader) (*Vocabulary, error) {
	return lexicon.Read(r)
}
