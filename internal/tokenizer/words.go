// Package tokenizer provides word-level text tokenization for Sibyl.
//
// This package implements the corpus tokenizer used to build frequency
// dictionaries and to validate generated sentences, plus a token-budget
// estimator for prompts sent to external language models.
package tokenizer

import (
	"strings"
	"unicode"
)

// Words splits text into lowercase words.
//
// A word is a maximal run of Unicode letters. Digits, punctuation and
// symbols act as separators and never appear in the output. Accented and
// non-Latin letters are kept. The function is pure: identical input
// always yields identical output, and no empty words are produced.
func Words(text string) []string {
	var words []string
	var b strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		words = append(words, b.String())
	}

	return words
}

// Unique returns the distinct words of text in first-occurrence order.
func Unique(text string) []string {
	words := Words(text)
	seen := make(map[string]bool, len(words))
	unique := words[:0]
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		unique = append(unique, w)
	}
	return unique
}
