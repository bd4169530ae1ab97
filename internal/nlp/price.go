// Package nlp provides the lexical extractors that turn raw utterances
// into structured signals. Every function here is pure and deterministic;
// matching is case-insensitive.
package nlp

import (
	"regexp"
	"strconv"

	"github.com/cartline-ai/shop-assistant/internal/model"
)

// priceRule pairs a pattern with the range it produces. Rules are tried
// in order and only the first match is applied; this precedence is part
// of the extractor's contract.
type priceRule struct {
	re    *regexp.Regexp
	build func(m []string) *model.PriceRange
}

var priceRules = []priceRule{
	{
		// "between $10 and $50", "from 10 to 50"
		re: regexp.MustCompile(`(?i)\b(?:between|from)\s*\$?(\d+(?:\.\d+)?)\s*(?:and|to|-)\s*\$?(\d+(?:\.\d+)?)`),
		build: func(m []string) *model.PriceRange {
			lo := mustParse(m[1])
			hi := mustParse(m[2])
			if hi < lo {
				lo, hi = hi, lo
			}
			return &model.PriceRange{Min: &lo, Max: &hi}
		},
	},
	{
		// "under $20", "below 20", "less than $20"
		re: regexp.MustCompile(`(?i)\b(?:under|below|less than|cheaper than|at most|no more than|max(?:imum)?(?:\s+of)?)\s*\$?(\d+(?:\.\d+)?)`),
		build: func(m []string) *model.PriceRange {
			hi := mustParse(m[1])
			return &model.PriceRange{Max: &hi}
		},
	},
	{
		// "over $50", "above 50", "more than $50"
		re: regexp.MustCompile(`(?i)\b(?:over|above|more than|at least|no less than|min(?:imum)?(?:\s+of)?)\s*\$?(\d+(?:\.\d+)?)`),
		build: func(m []string) *model.PriceRange {
			lo := mustParse(m[1])
			return &model.PriceRange{Min: &lo}
		},
	},
	{
		// "around $100", "about 100" -> +/-20%
		re: regexp.MustCompile(`(?i)\b(?:around|about|approximately|roughly|close to)\s*\$?(\d+(?:\.\d+)?)`),
		build: func(m []string) *model.PriceRange {
			v := mustParse(m[1])
			lo := v * 0.8
			hi := v * 1.2
			return &model.PriceRange{Min: &lo, Max: &hi}
		},
	},
	{
		// "exactly $50", "for $50", bare "$50" -> +/-5%
		re: regexp.MustCompile(`(?i)\b(?:exactly|precisely|for|at|costing)\s*\$?(\d+(?:\.\d+)?)|\$(\d+(?:\.\d+)?)`),
		build: func(m []string) *model.PriceRange {
			raw := m[1]
			if raw == "" {
				raw = m[2]
			}
			v := mustParse(raw)
			lo := v * 0.95
			hi := v * 1.05
			return &model.PriceRange{Min: &lo, Max: &hi}
		},
	},
}

// DetectPriceRange extracts a price constraint from text, or nil when no
// recognized phrasing is present.
func DetectPriceRange(text string) *model.PriceRange {
	for _, rule := range priceRules {
		if m := rule.re.FindStringSubmatch(text); m != nil {
			return rule.build(m)
		}
	}
	return nil
}

// StripPricePhrases removes every recognized price phrasing from text so
// that keyword extraction does not pick up range words and amounts.
func StripPricePhrases(text string) string {
	for _, rule := range priceRules {
		text = rule.re.ReplaceAllString(text, " ")
	}
	return text
}

func mustParse(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
