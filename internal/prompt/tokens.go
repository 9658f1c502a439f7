package prompt

import "strings"

// EstimateTokens gives a rough token count at ~1.33 tokens per word.
// Used for logging prompt size only.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
