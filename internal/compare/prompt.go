package compare

import (
	"fmt"
	"strings"
)

// ComparisonPrompt instructs the model to judge one filled document against
// one template section and answer in labeled lines the parser understands.
const ComparisonPrompt = `You are a document comparison expert. A document template defines an expected section; a filled document should contain content satisfying it. Judge whether the filled document adequately covers the section below.

Classify the coverage as one of: 'Sufficient', 'Missing', 'Lacking Information', or 'Other Issue'.
Then explain your reasoning in 1-2 sentences.
If the status is not 'Sufficient', provide a specific remediation suggestion.
Finally, estimate a match percentage (0-100) for how well the filled document covers this section, where 100 means a perfect match and 0 means no alignment at all.

Respond in exactly this format:
Status: <Sufficient/Missing/Lacking Information/Other Issue>
Reason: <your explanation>
Remediation: <your suggestion or 'None needed'>
Match Percentage: <number between 0 and 100>`

// DefaultMaxPromptTokens bounds the estimated prompt size. Filled-document
// text beyond the budget is truncated tail-first.
const DefaultMaxPromptTokens = 12000

// BuildSectionPrompt assembles the full prompt for one section: the section
// title, the expected content as the completeness rubric, and the complete
// filled-document text (the filled document may not share the template's
// structure, so the model sees all of it).
func BuildSectionPrompt(title, expected, filled string, maxTokens int) string {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxPromptTokens
	}

	var sb strings.Builder
	sb.WriteString(ComparisonPrompt)
	sb.WriteString("\n\n---\n")
	sb.WriteString(fmt.Sprintf("Section: %q\n", title))
	sb.WriteString("Expected content:\n")
	sb.WriteString(expected)
	sb.WriteString("\n---\nFilled document:\n")

	budget := maxTokens - EstimateTokens(sb.String())
	sb.WriteString(truncateToTokens(filled, budget))
	return sb.String()
}

// EstimateTokens gives a rough token count using a words heuristic.
// Exact tokenization is not required for prompt budgeting.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	// Roughly 1.33 tokens per word for English text.
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// truncateToTokens keeps approximately the first targetTokens worth of text.
func truncateToTokens(text string, targetTokens int) string {
	if targetTokens <= 0 {
		return ""
	}
	if EstimateTokens(text) <= targetTokens {
		return text
	}
	words := strings.Fields(text)
	targetWords := int(float64(targetTokens) / 1.33)
	if targetWords >= len(words) {
		return text
	}
	return strings.Join(words[:targetWords], " ")
}
