package nlp

import (
	"strings"
)

// vagueRequests is the catalog of generic "show me products" phrasings.
// Matching is whole-string, not substring, so "show me something in blue"
// is not vague.
var vagueRequests = map[string]struct{}{
	"show me products":               {},
	"show me some products":          {},
	"show me your products":          {},
	"show me what you have":          {},
	"show me everything":             {},
	"show me what you sell":          {},
	"what do you have":               {},
	"what do you sell":               {},
	"what do you offer":              {},
	"what products do you have":      {},
	"what products do you sell":      {},
	"what can i buy":                 {},
	"what can i buy here":            {},
	"what is available":              {},
	"what's available":               {},
	"i want to buy something":        {},
	"i want to shop":                 {},
	"i want something":               {},
	"i need something":               {},
	"i'm looking for something":      {},
	"im looking for something":       {},
	"looking for something":          {},
	"recommend something":            {},
	"recommend me something":         {},
	"recommend a product":            {},
	"suggest something":              {},
	"suggest a product":              {},
	"suggest me something":           {},
	"give me a recommendation":       {},
	"give me some recommendations":   {},
	"any recommendations":            {},
	"got any recommendations":        {},
	"do you have any recommendations": {},
	"help me find something":         {},
	"help me shop":                   {},
	"i want to see your products":    {},
	"let me see your products":       {},
	"browse products":                {},
	"show products":                  {},
}

// IsVagueProductRequest reports whether the whole utterance is a generic
// product ask with nothing to scope a search by.
func IsVagueProductRequest(text string) bool {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = strings.TrimRight(normalized, "!?. ")
	normalized = strings.Join(strings.Fields(normalized), " ")
	_, ok := vagueRequests[normalized]
	return ok
}
