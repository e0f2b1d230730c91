package oracle

import (
	"strings"
)

// defaultPersona is the style framing sent with every delegated prompt.
const defaultPersona = "You are a laconic oracle. You answer in brief, prophetic utterances."

// defaultMaxPromptTokens caps the delegated prompt size. Vocabulary
// listings easily outgrow a model's context window, so the allowed-word
// list is trimmed to fit; trimming drops the rarest words first because
// the list is ordered prompt-words-then-frequency-rank.
const defaultMaxPromptTokens = 2048

// defaultMaxListWords caps the allowed-word listing when no token
// budget is configured.
const defaultMaxListWords = 1024

// mergedAllowedList returns the words the external model may use:
// prompt words first, so the model sees them as salient, then the
// vocabulary words in dictionary order, duplicates skipped.
func (o *Oracle) mergedAllowedList(promptUnique []string) []string {
	merged := make([]string, 0, len(promptUnique)+o.vocab.Len())
	merged = append(merged, promptUnique...)

	inPrompt := make(map[string]bool, len(promptUnique))
	for _, w := range promptUnique {
		inPrompt[w] = true
	}
	for _, w := range o.vocab.Words {
		if !inPrompt[w] {
			merged = append(merged, w)
		}
	}
	return merged
}

// buildPrompt assembles the instruction for the external model: the
// task (one concise sentence), the allowed vocabulary, the persona, the
// seed words to try to include, and the literal seed phrase as context.
func (o *Oracle) buildPrompt(seedPhrase string, promptUnique []string) string {
	allowed := o.trimToBudget(o.mergedAllowedList(promptUnique))

	var b strings.Builder
	b.WriteString(o.persona)
	b.WriteString("\nCompose exactly one concise sentence.\n")
	b.WriteString("Use only the following words, with no punctuation or symbols:\n")
	b.WriteString(strings.Join(allowed, " "))
	b.WriteString("\n")

	if len(promptUnique) > 0 {
		b.WriteString("Try to include these words: ")
		b.WriteString(strings.Join(promptUnique, " "))
		b.WriteString("\n")
	}

	b.WriteString("Context: \"")
	b.WriteString(seedPhrase)
	b.WriteString("\"\n")

	return b.String()
}

// trimToBudget shortens the allowed-word list so the final prompt stays
// within the configured token budget. Prompt words are never trimmed:
// they sit at the front of the list and the cap never drops below their
// count plus one vocabulary word.
func (o *Oracle) trimToBudget(allowed []string) []string {
	if o.budget == nil {
		if len(allowed) > defaultMaxListWords {
			return allowed[:defaultMaxListWords]
		}
		return allowed
	}

	// Everything but the listing is small; reserve a slice of the budget
	// for it and spend the rest on words.
	const overheadTokens = 128
	remaining := o.maxPrompt - overheadTokens

	n := 0
	for _, w := range allowed {
		remaining -= o.budget.Count(w + " ")
		if remaining < 0 {
			break
		}
		n++
	}
	if n < 1 && len(allowed) > 0 {
		n = 1
	}
	return allowed[:n]
}
