package nlp

import (
	"regexp"
	"strings"
)

// Comparison names the two products the user wants compared.
type Comparison struct {
	Left  string
	Right string
}

// comparisonTriggers gate comparison detection: without one of these the
// structural patterns are never consulted, so "chairs and tables" alone
// is not a comparison.
var comparisonTriggers = []string{
	"compare", "comparison", "vs", "versus", "difference",
	"which is better", "which one is better", "better between",
}

// comparisonPatterns are tried in order; the first structural match with
// two usable captures wins.
var comparisonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bcompare\s+(.+?)\s+(?:and|with|to|vs\.?|versus)\s+(.+)`),
	regexp.MustCompile(`(?i)\bdifference\s+between\s+(.+?)\s+and\s+(.+)`),
	regexp.MustCompile(`(?i)\bwhich(?:\s+one)?\s+is\s+better[,:]?\s+(.+?)\s+(?:or|and)\s+(.+)`),
	regexp.MustCompile(`(?i)(.+?)\s+(?:vs\.?|versus)\s+(.+)`),
	regexp.MustCompile(`(?i)(.+?)\s+or\s+(.+)`),
	regexp.MustCompile(`(?i)(.+?)\s+and\s+(.+)`),
}

// DetectComparison returns the two compared product names, or nil when
// the text is not a comparison query. Requires both a trigger keyword
// and a structural separator.
func DetectComparison(text string) *Comparison {
	lower := strings.ToLower(text)

	triggered := false
	for _, t := range comparisonTriggers {
		if strings.Contains(t, " ") {
			if strings.Contains(lower, t) {
				triggered = true
				break
			}
		} else if containsWord(lower, t) {
			triggered = true
			break
		}
	}
	if !triggered {
		return nil
	}

	for _, re := range comparisonPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		left := cleanComparand(m[1])
		right := cleanComparand(m[2])
		if len(left) > 1 && len(right) > 1 {
			return &Comparison{Left: left, Right: right}
		}
	}
	return nil
}

// cleanComparand trims punctuation, leading articles and comparison
// framing from a captured product name.
func cleanComparand(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "?!.,:;\"'")
	lower := strings.ToLower(s)
	for _, prefix := range []string{
		"compare ", "the difference between ", "which is better ",
		"a ", "an ", "the ",
	} {
		if strings.HasPrefix(lower, prefix) {
			s = s[len(prefix):]
			lower = strings.ToLower(s)
		}
	}
	return strings.TrimSpace(s)
}

// containsWord reports whether lower contains w as a whole word.
func containsWord(lower, w string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], w)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isWordChar(lower[i-1])
		afterIdx := i + len(w)
		after := afterIdx >= len(lower) || !isWordChar(lower[afterIdx])
		if before && after {
			return true
		}
		idx = i + len(w)
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
