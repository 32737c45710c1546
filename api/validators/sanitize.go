package validators

import "strings"

// SanitizeString normalizes free-text filter input (search queries,
// category names) before it reaches the catalog layer: surrounding
// whitespace and control characters are dropped and the result is
// truncated to maxRunes without splitting a multi-byte character.
func SanitizeString(input string, maxRunes int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, input)
	cleaned = strings.TrimSpace(cleaned)
	if maxRunes <= 0 {
		return cleaned
	}
	runes := []rune(cleaned)
	if len(runes) > maxRunes {
		return strings.TrimSpace(string(runes[:maxRunes]))
	}
	return cleaned
}
