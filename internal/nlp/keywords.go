package nlp

import (
	"strings"
	"unicode"
)

// stopWords are tokens that never carry product meaning. Shopping verbs
// and price qualifiers live here so that "I want to buy a cheap chair"
// reduces to just "chair".
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "you": {}, "your": {}, "are": {},
	"can": {}, "could": {}, "would": {}, "should": {}, "please": {},
	"want": {}, "need": {}, "show": {}, "find": {}, "looking": {},
	"some": {}, "any": {}, "with": {}, "have": {}, "has": {}, "get": {},
	"buy": {}, "purchase": {}, "recommend": {}, "suggest": {}, "like": {},
	"what": {}, "which": {}, "how": {}, "much": {}, "there": {},
	"price": {}, "cost": {}, "costs": {}, "dollar": {}, "dollars": {},
	"under": {}, "over": {}, "around": {}, "about": {}, "between": {},
	"cheap": {}, "cheapest": {}, "best": {}, "good": {}, "nice": {},
	"something": {}, "anything": {}, "thing": {}, "things": {},
	"products": {}, "product": {}, "items": {}, "item": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "them": {},
	"not": {}, "but": {}, "than": {}, "from": {}, "more": {}, "less": {},
	"usd": {}, "me": {}, "my": {}, "do": {}, "does": {}, "sell": {},
	"compare": {}, "versus": {}, "difference": {}, "better": {},
}

// ExtractProductKeywords tokenizes an utterance into product-bearing
// keywords: price phrases and stop words are stripped, tokens shorter
// than three characters are dropped, and duplicates are removed while
// preserving first-occurrence order. Always returns a non-nil slice.
func ExtractProductKeywords(text string) []string {
	cleaned := strings.ToLower(StripPricePhrases(text))

	keywords := []string{}
	seen := make(map[string]struct{})
	for _, field := range strings.Fields(cleaned) {
		token := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
	}
	return keywords
}
