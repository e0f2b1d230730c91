// Package oracle implements constrained sentence generation.
//
// An Oracle owns a read-only Vocabulary and composes short sentences from
// it, always honoring the caller's seed phrase. Three strategies are
// supported:
//   - ranked: deterministic, highest-frequency words first
//   - sampled: temperature-weighted sampling without replacement
//   - delegated: an external text model generates the sentence, which is
//     validated against the vocabulary and retried or replaced by a
//     sampled fallback when it misbehaves
package oracle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sibyl-nlp/sibyl/internal/lexicon"
	"github.com/sibyl-nlp/sibyl/internal/sample"
	"github.com/sibyl-nlp/sibyl/internal/tokenizer"
)

// ErrVocabularyUnavailable reports that no vocabulary was loaded, or it
// is empty. Generation cannot proceed without one; callers must treat
// this as a request failure, never as an empty sentence.
var ErrVocabularyUnavailable = errors.New("vocabulary unavailable")

// maxDelegatedAttempts bounds how often the external model is asked
// before giving up on delegated mode for one request.
const maxDelegatedAttempts = 3

// Mode selects a generation strategy.
type Mode string

const (
	// ModeRanked composes deterministically from the highest-frequency words.
	ModeRanked Mode = "ranked"
	// ModeSampled draws words by temperature-weighted sampling without replacement.
	ModeSampled Mode = "sampled"
	// ModeDelegated asks an external text model and validates its output.
	ModeDelegated Mode = "delegated"
)

// TextModel is the capability the delegated mode consumes: prompt in,
// free-form text out, fallible. Implementations make no promise about
// obeying the prompt's vocabulary instructions; the oracle validates.
type TextModel interface {
	Generate(ctx context.Context, model, prompt string, temperature float64) (string, error)
}

// Options configures a single Predict call.
type Options struct {
	// Length is the requested number of output words. Prompt words are
	// always kept even when they alone exceed Length.
	Length int

	// Mode is the generation strategy. Empty selects ModeDelegated.
	Mode Mode

	// Temperature reshapes sampling weights and is forwarded to the
	// external model in delegated mode. Non-positive values reset to 1.
	Temperature float64

	// Model identifies the external model for delegated mode.
	Model string
}

// DefaultOptions returns sensible defaults for generation.
func DefaultOptions() Options {
	return Options{
		Length:      8,
		Mode:        ModeDelegated,
		Temperature: 1.0,
	}
}

// Result is one generated sentence.
type Result struct {
	// Text is the final sentence: words joined by single spaces, first
	// letter upper-cased, terminated with a period.
	Text string

	// Tokens are the words composing Text, in order.
	Tokens []string

	// Mode is the strategy that actually produced the tokens. A
	// delegated request that fell back reports ModeSampled here.
	Mode Mode

	// Warning is set only when a degraded path was taken, and explains
	// why (external model error vs. constraint violation).
	Warning string
}

// Oracle generates vocabulary-constrained sentences.
//
// The vocabulary is read-only after construction, so one Oracle may
// serve concurrent requests; all mutable state is request-local.
type Oracle struct {
	vocab   *lexicon.Vocabulary
	model   TextModel
	persona string
	seed    int64

	budget    *tokenizer.Budget
	maxPrompt int
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithModel injects the external text model used by delegated mode.
func WithModel(model TextModel) Option {
	return func(o *Oracle) {
		o.model = model
	}
}

// WithPersona overrides the style framing included in delegated prompts.
func WithPersona(persona string) Option {
	return func(o *Oracle) {
		o.persona = persona
	}
}

// WithSeed fixes the sampling seed for reproducible sampled output.
// Negative seeds (the default) keep sampling random per request.
func WithSeed(seed int64) Option {
	return func(o *Oracle) {
		o.seed = seed
	}
}

// WithPromptBudget caps delegated prompts at maxTokens model tokens,
// measured by budget. Without one, the allowed-word listing is capped by
// word count instead.
func WithPromptBudget(budget *tokenizer.Budget, maxTokens int) Option {
	return func(o *Oracle) {
		o.budget = budget
		o.maxPrompt = maxTokens
	}
}

// New creates an Oracle over vocab.
func New(vocab *lexicon.Vocabulary, opts ...Option) *Oracle {
	o := &Oracle{
		vocab:     vocab,
		persona:   defaultPersona,
		seed:      -1,
		maxPrompt: defaultMaxPromptTokens,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Predict composes one sentence from seedPhrase and the vocabulary.
//
// Words found in seedPhrase are always permitted and always precede
// vocabulary filler in ranked and sampled output; they represent user
// intent and are never silently dropped. Returns
// ErrVocabularyUnavailable when no vocabulary is loaded.
func (o *Oracle) Predict(ctx context.Context, seedPhrase string, opts Options) (Result, error) {
	if o.vocab == nil || o.vocab.Len() == 0 {
		return Result{}, ErrVocabularyUnavailable
	}

	if opts.Length <= 0 {
		opts.Length = DefaultOptions().Length
	}
	if opts.Temperature <= 0 {
		opts.Temperature = 1.0
	}
	if opts.Mode == "" {
		opts.Mode = ModeDelegated
	}

	promptUnique := tokenizer.Unique(seedPhrase)

	var res Result
	switch opts.Mode {
	case ModeRanked:
		res = o.ranked(promptUnique, opts.Length)
	case ModeSampled:
		res = o.sampled(promptUnique, opts.Length, opts.Temperature)
	case ModeDelegated:
		res = o.delegated(ctx, seedPhrase, promptUnique, opts)
	default:
		return Result{}, fmt.Errorf("unknown generation mode %q", opts.Mode)
	}

	res.Text = sentence(res.Tokens)
	return res, nil
}

// ranked starts with every prompt word in original order, then appends
// vocabulary words by descending frequency until length is reached.
// Fully deterministic for fixed inputs.
func (o *Oracle) ranked(promptUnique []string, length int) Result {
	tokens := append([]string(nil), promptUnique...)
	placed := make(map[string]bool, len(tokens))
	for _, w := range tokens {
		placed[w] = true
	}

	// Stable sort keeps dictionary order (word asc) within equal counts.
	order := make([]int, o.vocab.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return o.vocab.Counts[order[a]] > o.vocab.Counts[order[b]]
	})

	for _, idx := range order {
		if len(tokens) >= length {
			break
		}
		w := o.vocab.Words[idx]
		if placed[w] {
			continue
		}
		placed[w] = true
		tokens = append(tokens, w)
	}

	return Result{Tokens: tokens, Mode: ModeRanked}
}

// sampled anchors the output on the first prompt word (kept verbatim
// even when outside the vocabulary), then the remaining prompt words in
// order, then temperature-weighted draws from the vocabulary.
func (o *Oracle) sampled(promptUnique []string, length int, temperature float64) Result {
	weights := o.vocab.Weights() // request-local copy

	tokens := make([]string, 0, length)
	for _, w := range promptUnique {
		tokens = append(tokens, w)
		if i := o.vocab.Index(w); i >= 0 {
			weights[i] = 0 // Placed words must not be drawn again.
		}
	}

	if remainder := length - len(tokens); remainder > 0 {
		sampler := sample.NewSampler(sample.Config{Temperature: temperature, Seed: o.seed})
		for _, idx := range sampler.WithoutReplacement(weights, remainder) {
			tokens = append(tokens, o.vocab.Words[idx])
		}
	}

	return Result{Tokens: tokens, Mode: ModeSampled}
}

// delegated asks the external model for a sentence and validates every
// word of the reply against the base vocabulary. Constraint violations
// are retried up to maxDelegatedAttempts; a model error aborts the
// delegation immediately. Either way the request still succeeds through
// a sampled fallback carrying a warning.
func (o *Oracle) delegated(ctx context.Context, seedPhrase string, promptUnique []string, opts Options) Result {
	if o.model == nil {
		return o.fallback(promptUnique, opts, "no external model configured")
	}

	prompt := o.buildPrompt(seedPhrase, promptUnique)

	for attempt := 1; attempt <= maxDelegatedAttempts; attempt++ {
		reply, err := o.model.Generate(ctx, opts.Model, prompt, opts.Temperature)
		if err != nil {
			return o.fallback(promptUnique, opts, fmt.Sprintf("external model error: %v", err))
		}

		words := tokenizer.Words(reply)
		if len(words) > 0 && o.allInVocabulary(words) {
			return Result{Tokens: words, Mode: ModeDelegated}
		}
	}

	return o.fallback(promptUnique, opts,
		fmt.Sprintf("external model violated vocabulary constraints in %d attempts", maxDelegatedAttempts))
}

// fallback produces the sampled rendition of a failed delegated request.
func (o *Oracle) fallback(promptUnique []string, opts Options, cause string) Result {
	res := o.sampled(promptUnique, opts.Length, opts.Temperature)
	res.Warning = cause + "; fell back to sampled mode"
	return res
}

// allInVocabulary reports whether every word is in the base vocabulary.
// Prompt-only seed words are deliberately not accepted here: the merged
// list is only a hint to the model, and accepting echoes of
// out-of-vocabulary words would let the model smuggle arbitrary text.
func (o *Oracle) allInVocabulary(words []string) bool {
	for _, w := range words {
		if !o.vocab.Contains(w) {
			return false
		}
	}
	return true
}

// sentence joins tokens into the final text: single spaces, first letter
// upper-cased, trailing period. A fresh Caser per call: cases.Caser
// carries state and must not be shared across concurrent requests.
func sentence(tokens []string) string {
	joined := strings.Join(tokens, " ")
	if joined == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(joined)
	return cases.Upper(language.Und).String(string(r)) + joined[size:] + "."
}
