// Package oracle provides constrained sentence generation for Sibyl.
//
// This package wraps the internal oracle implementation and provides a
// clean public API for vocabulary-constrained generation.
//
// Generation strategies:
//   - Ranked: deterministic, highest-frequency vocabulary words first
//   - Sampled: temperature-weighted sampling without replacement
//   - Delegated: an external text model composes the sentence, validated
//     against the vocabulary with retry and sampled fallback
//
// Example usage:
//
//	import (
//	    "github.com/sibyl-nlp/sibyl/lexicon"
//	    "github.com/sibyl-nlp/sibyl/oracle"
//	)
//
//	vocab, err := lexicon.Load("iliad.dict")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	o := oracle.New(vocab, oracle.WithModel(llm.NewClient("")))
//	res, err := o.Predict(ctx, "tell of doom", oracle.Options{
//	    Length:      8,
//	    Mode:        oracle.ModeSampled,
//	    Temperature: 0.8,
//	})
package oracle

import (
	"github.com/sibyl-nlp/sibyl/internal/lexicon"
	"github.com/sibyl-nlp/sibyl/internal/oracle"
	"github.com/sibyl-nlp/sibyl/internal/tokenizer"
)

// ErrVocabularyUnavailable reports that generation was attempted without
// a loaded, non-empty vocabulary.
var ErrVocabularyUnavailable = oracle.ErrVocabularyUnavailable

// Mode selects a generation strategy.
type Mode = oracle.Mode

const (
	// ModeRanked composes deterministically from the highest-frequency words.
	ModeRanked = oracle.ModeRanked
	// ModeSampled draws words by temperature-weighted sampling without replacement.
	ModeSampled = oracle.ModeSampled
	// ModeDelegated asks an external text model and validates its output.
	ModeDelegated = oracle.ModeDelegated
)

// TextModel is the external generator capability consumed by delegated
// mode: prompt in, free-form text out, fallible.
type TextModel = oracle.TextModel

// Options configures a single Predict call.
type Options = oracle.Options

// DefaultOptions returns sensible defaults for generation.
func DefaultOptions() Options {
	return oracle.DefaultOptions()
}

// Result is one generated sentence with its tokens and an optional
// warning describing a degraded path.
type Result = oracle.Result

// Oracle generates vocabulary-constrained sentences.
type Oracle = oracle.Oracle

// Option configures an Oracle.
type Option = oracle.Option

// WithModel injects the external text model used by delegated mode.
func WithModel(model TextModel) Option {
	return oracle.WithModel(model)
}

// WithPersona overrides the style framing included in delegated prompts.
func WithPersona(persona string) Option {
	return oracle.WithPersona(persona)
}

// WithSeed fixes the sampling seed for reproducible sampled output.
func WithSeed(seed int64) Option {
	return oracle.WithSeed(seed)
}

// WithPromptBudget caps delegated prompts at maxTokens model tokens,
// measured by budget.
func WithPromptBudget(budget *tokenizer.Budget, maxTokens int) Option {
	return oracle.WithPromptBudget(budget, maxTokens)
}

// New creates an Oracle over vocab.
func New(vocab *lexicon.Vocabulary, opts ...Option) *Oracle {
	return oracle.New(vocab, opts...)
}
