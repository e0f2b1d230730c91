package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// encodingCL100kBase is a reasonable default for current chat models.
const encodingCL100kBase = "cl100k_base"

// Budget estimates how many model tokens a piece of prompt text costs.
//
// It wraps the pkoukk/tiktoken-go BPE encodings so prompt builders can
// trim long vocabulary listings to fit a model's context window.
type Budget struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewBudget creates a Budget for the named tiktoken encoding.
//
// Supported encodings include "cl100k_base" and "p50k_base". An empty
// name selects cl100k_base.
func NewBudget(encodingName string) (*Budget, error) {
	if encodingName == "" {
		encodingName = encodingCL100kBase
	}

	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiktoken encoding %q: %w", encodingName, err)
	}

	return &Budget{
		encoding: encoding,
		name:     encodingName,
	}, nil
}

// Count returns the number of tokens text encodes to.
func (b *Budget) Count(text string) int {
	return len(b.encoding.Encode(text, nil, nil))
}

// Name returns the encoding name.
func (b *Budget) Name() string {
	return b.name
}
