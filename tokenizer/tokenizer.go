// Package tokenizer provides word-level tokenization for Sibyl.
//
// This package wraps the internal tokenizer implementation and provides
// a clean public API for splitting text into the lowercase words used
// throughout dictionary building and generation.
//
// Example usage:
//
//	import "github.com/sibyl-nlp/sibyl/tokenizer"
//
//	words := tokenizer.Words("Tell me, O muse!")
//	// ["tell", "me", "o", "muse"]
package tokenizer

import (
	"github.com/sibyl-nlp/sibyl/internal/tokenizer"
)

// Words splits text into lowercase words: maximal runs of Unicode
// letters, with everything else acting as a separator.
func Words(text string) []string {
	return tokenizer.Words(text)
}

// Unique returns the distinct words of text in first-occurrence order.
func Unique(text string) []string {
	return tokenizer.Unique(text)
}

// Budget estimates how many model tokens a piece of prompt text costs.
type Budget = tokenizer.Budget

// NewBudget creates a Budget for the named tiktoken encoding, e.g.
// "cl100k_base".
func NewBudget(encodingName string) (*Budget, error) {
	return tokenizer.NewBudget(encodingName)
}
