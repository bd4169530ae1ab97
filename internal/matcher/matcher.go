// Package matcher scores and filters catalog products against the
// signals extracted from an utterance.
package matcher

import (
	"sort"
	"strings"

	"github.com/cartline-ai/shop-assistant/internal/model"
	"github.com/cartline-ai/shop-assistant/internal/nlp"
)

// MaxResults caps every ranked result set.
const MaxResults = 6

// semanticCategories widens keyword matching beyond literal substrings:
// a keyword belonging to a category matches products whose combined text
// mentions any synonym from the same category.
var semanticCategories = map[string][]string{
	"seating":     {"chair", "sofa", "couch", "stool", "bench", "armchair", "recliner", "seat"},
	"tables":      {"table", "desk", "workstation", "nightstand"},
	"storage":     {"shelf", "shelves", "cabinet", "drawer", "wardrobe", "bookcase", "dresser"},
	"bedroom":     {"bed", "mattress", "pillow", "duvet", "headboard"},
	"lighting":    {"lamp", "light", "chandelier", "sconce", "lantern"},
	"electronics": {"laptop", "computer", "phone", "tablet", "monitor", "keyboard", "mouse"},
	"audio":       {"headphones", "earbuds", "speaker", "soundbar", "microphone"},
	"apparel":     {"shirt", "tshirt", "pants", "jacket", "hoodie", "dress", "sweater", "jeans"},
	"footwear":    {"shoes", "sneakers", "boots", "sandals", "slippers"},
	"kitchen":     {"mug", "kettle", "blender", "pan", "knife", "cookware", "toaster"},
	"fitness":     {"yoga", "dumbbell", "treadmill", "weights", "mat"},
	"bags":        {"bag", "backpack", "tote", "suitcase", "luggage", "wallet"},
	"outdoors":    {"tent", "grill", "hammock", "umbrella", "cooler"},
}

type scoredProduct struct {
	product model.Product
	score   float64
}

// FindMatching returns up to MaxResults products relevant to the query,
// ordered by descending score with catalog order as the tie-break. An
// active price range is a hard filter; a query with no product keywords
// returns an empty set, never the whole catalog.
func FindMatching(query string, products []model.Product) []model.Product {
	priceRange := nlp.DetectPriceRange(query)
	if priceRange != nil {
		filtered := make([]model.Product, 0, len(products))
		for _, p := range products {
			if priceRange.Contains(p.Price) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	keywords := nlp.ExtractProductKeywords(query)
	if len(keywords) == 0 {
		return nil
	}
	phrase := strings.Join(keywords, " ")

	scored := make([]scoredProduct, 0, len(products))
	for _, p := range products {
		title := strings.ToLower(p.Title)
		combined := strings.ToLower(p.Title + " " + p.Description + " " + p.Category)

		qualified := false
		score := 0.0
		for _, kw := range keywords {
			switch {
			case titleContains(title, kw):
				// Strong signal: keyword weight grows with its length.
				qualified = true
				score += float64(len(kw)) * 2
			case semanticMatch(kw, combined):
				qualified = true
				score += float64(len(kw))
			}
		}
		if !qualified {
			continue
		}

		if strings.Contains(title, phrase) {
			score += 10
		}
		if p.Inventory > 0 {
			score++
		}
		if p.ImageURL != "" {
			score += 0.5
		}

		scored = append(scored, scoredProduct{product: p, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > MaxResults {
		scored = scored[:MaxResults]
	}
	result := make([]model.Product, len(scored))
	for i, s := range scored {
		result[i] = s.product
	}
	return result
}

// FindBest resolves a single product name, for comparison and direct
// actions. Substring containment in either direction wins outright;
// otherwise the product with the highest token-overlap score is
// returned, or nil when nothing overlaps.
func FindBest(name string, products []model.Product) *model.Product {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}

	for i := range products {
		title := strings.ToLower(products[i].Title)
		if strings.Contains(title, needle) || strings.Contains(needle, title) {
			return &products[i]
		}
	}

	tokens := []string{}
	for _, t := range strings.Fields(needle) {
		if len(t) > 1 {
			tokens = append(tokens, t)
		}
	}

	var best *model.Product
	bestScore := 0
	for i := range products {
		haystack := strings.ToLower(products[i].Title + " " + products[i].Description)
		score := 0
		for _, t := range tokens {
			if strings.Contains(haystack, t) {
				score += len(t)
			}
		}
		if score > bestScore {
			bestScore = score
			best = &products[i]
		}
	}
	return best
}

// titleContains matches a keyword or its naive singular form against the
// title, so "chairs" still finds "Oak Dining Chair".
func titleContains(title, kw string) bool {
	if strings.Contains(title, kw) {
		return true
	}
	if stem := singularize(kw); stem != kw && strings.Contains(title, stem) {
		return true
	}
	return false
}

func singularize(w string) string {
	switch {
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case len(w) > 4 && strings.HasSuffix(w, "es"):
		return w[:len(w)-2]
	case len(w) > 3 && strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	}
	return w
}

// semanticMatch reports whether kw belongs to a category whose synonyms
// show up in the product's combined text.
func semanticMatch(kw, combined string) bool {
	stem := singularize(kw)
	for _, synonyms := range semanticCategories {
		member := false
		for _, s := range synonyms {
			if s == kw || s == stem {
				member = true
				break
			}
		}
		if !member {
			continue
		}
		for _, s := range synonyms {
			if strings.Contains(combined, s) {
				return true
			}
		}
	}
	return false
}
