package nlp

import (
	"strings"
	"unicode"
)

// IsNonsense reports whether an utterance is noise rather than language:
// a character repeated five or more times in a row, a vowel-less string
// longer than six characters, a single token shorter than three
// characters, or pure digits.
func IsNonsense(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}

	// Repeated character run >= 5.
	var prev rune
	run := 0
	for _, r := range trimmed {
		if r == prev {
			run++
			if run >= 5 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}

	lower := strings.ToLower(trimmed)

	if len(lower) > 6 && !strings.ContainsAny(lower, "aeiou") {
		return true
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 1 && len(fields[0]) < 3 {
		return true
	}

	numeric := true
	hasDigit := false
	for _, r := range trimmed {
		if unicode.IsDigit(r) {
			hasDigit = true
			continue
		}
		if unicode.IsSpace(r) || r == '.' || r == ',' || r == '$' {
			continue
		}
		numeric = false
		break
	}
	return numeric && hasDigit
}
