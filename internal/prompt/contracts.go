package prompt

import (
	"fmt"
	"strings"
)

// Formatting contracts are templated strings selected from a small table
// rather than built with conditional logic inline in the composer
// (SPEC_FULL.md §9: "keep them data-driven ... so they can be revised
// without touching composer logic").

var styleContracts = map[string]string{
	"professional_concise": `STYLE: professional and concise.
- Use precise, businesslike language. Avoid filler.
- Substitutions: "we're" -> "we are", "great" -> "comprehensive".
Correct: "We are pleased to offer a comprehensive set of volunteer programs."
Wrong: "We're so excited, it's great!"
Checklist: [ ] No contractions [ ] No exclamation points [ ] Direct sentence openers`,

	"warm_conversational": `STYLE: warm and conversational.
- Write like a caring, knowledgeable friend. Contractions are welcome.
- Substitutions: "utilize" -> "use", "individuals" -> "people".
Correct: "We'd love to have you join us — here's how it works."
Wrong: "Utilize the following procedure to initiate your application."
Checklist: [ ] Reads naturally aloud [ ] No corporate jargon [ ] Addresses the reader directly`,

	"structured_detailed": `STYLE: structured and detailed.
- Organize the answer with clear structure (short paragraphs or a list) and cover the topic thoroughly.
- Substitutions: "a lot of" -> "many", "stuff" -> "details".
Correct: "There are three requirements: age, availability, and a background check."
Wrong: "There's a lot of stuff you need before you can join."
Checklist: [ ] Logical ordering [ ] No vague quantifiers [ ] Every claim is concrete`,
}

var lengthContracts = map[string]string{
	"concise":       "LENGTH: 2-3 sentences. Answer the question and stop.",
	"balanced":      "LENGTH: 4-6 sentences. Enough room for context, not a lecture.",
	"comprehensive": "LENGTH: 8 or more sentences, using headings or a list where that helps the visitor scan the answer.",
}

// emojiContract returns the emoji rule for the given usage level, honoring
// an explicit max_emojis_per_response override.
func emojiContract(usage string, maxEmojis int) string {
	switch usage {
	case "minimal":
		if maxEmojis > 0 {
			return fmt.Sprintf("EMOJI: use at most %d emoji in the entire response.", maxEmojis)
		}
		return "EMOJI: use at most one emoji in the entire response."
	case "moderate":
		n := maxEmojis
		if n <= 0 {
			n = 3
		}
		return fmt.Sprintf("EMOJI: use at most %d emoji, placed naturally, never more than one per sentence.", n)
	default: // "none" and unrecognized values
		return "EMOJI: do not use any emoji."
	}
}

// BuildFormattingContract assembles the final section of the prompt from a
// tenant's formatting_preferences (spec.md §4.3, step 8).
func BuildFormattingContract(style, detail, emojiUsage string, maxEmojis int) string {
	style = fallback(style, "professional_concise", styleContracts)
	detail = fallback(detail, "balanced", lengthContracts)

	var b strings.Builder
	b.WriteString("FORMATTING CONTRACT (apply this above all else, it is the final word on style):\n\n")
	b.WriteString(styleContracts[style])
	b.WriteString("\n\n")
	b.WriteString(lengthContracts[detail])
	b.WriteString("\n\n")
	b.WriteString(emojiContract(emojiUsage, maxEmojis))
	return b.String()
}

func fallback[T any](key, def string, table map[string]T) string {
	if _, ok := table[key]; ok {
		return key
	}
	return def
}
