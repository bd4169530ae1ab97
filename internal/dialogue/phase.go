package dialogue

import (
	"strings"

	"github.com/cartline-ai/shop-assistant/internal/model"
	"github.com/cartline-ai/shop-assistant/internal/nlp"
)

// generalSignals route an utterance to the general path: greetings,
// small talk, and store-information questions. Single words are matched
// as whole words, phrases as substrings.
var generalSignals = []string{
	"hello", "hi", "hey", "howdy", "greetings",
	"thanks", "thank you", "appreciate",
	"bye", "goodbye", "see you",
	"help", "who are you", "what are you", "are you a bot",
	"shipping", "delivery", "return policy", "returns", "refund",
	"warranty", "store hours", "opening hours", "payment", "pay with",
	"track my order", "order status", "about the store", "about you",
}

// recommendationTriggers mark an utterance as a shopping ask. Direct
// action verbs are included so "buy"/"view"/"add to cart" requests
// classify as recommendation and reach the action branch downstream.
var recommendationTriggers = []string{
	"recommend", "suggest", "suggestion", "looking for", "look for",
	"show me", "show", "find", "search", "browse", "shopping", "shop",
	"need", "want", "interested in", "do you have", "got any", "any",
	"buy", "purchase", "order", "view", "see", "add", "cart",
	"cheaper", "cheapest", "price", "under", "over", "around", "between",
}

// classifierRule is one ordered step of the phase classifier.
type classifierRule struct {
	name  string
	match func(q, lower string, ctx *model.ConversationContext) (model.Phase, bool)
}

// classifierRules is the classifier's precedence order. The order is a
// contract: a pending confirmation must never be reclassified as a fresh
// comparison, and comparison must be checked before greeting words so
// "which is better, X or Y" is not swallowed by a "help" collision.
var classifierRules = []classifierRule{
	{"pending-confirmation", func(q, lower string, ctx *model.ConversationContext) (model.Phase, bool) {
		if ctx != nil && ctx.HasPending() && nlp.DetectConfirmation(q) != nlp.ConfirmNone {
			return model.PhaseRecommendation, true
		}
		return "", false
	}},
	{"comparison", func(q, lower string, ctx *model.ConversationContext) (model.Phase, bool) {
		if nlp.DetectComparison(q) != nil {
			return model.PhaseComparison, true
		}
		return "", false
	}},
	{"noise", func(q, lower string, ctx *model.ConversationContext) (model.Phase, bool) {
		if strings.TrimSpace(q) == "" || nlp.IsNonsense(q) {
			return model.PhaseGeneral, true
		}
		return "", false
	}},
	{"general-signal", func(q, lower string, ctx *model.ConversationContext) (model.Phase, bool) {
		if containsAnySignal(lower, generalSignals) {
			return model.PhaseGeneral, true
		}
		return "", false
	}},
	{"recommendation-trigger", func(q, lower string, ctx *model.ConversationContext) (model.Phase, bool) {
		if containsAnySignal(lower, recommendationTriggers) {
			return model.PhaseRecommendation, true
		}
		return "", false
	}},
	{"bare-product-mention", func(q, lower string, ctx *model.ConversationContext) (model.Phase, bool) {
		// A product name with no ask is informational, not a request
		// to shop.
		if len(nlp.ExtractProductKeywords(q)) > 0 {
			return model.PhaseGeneral, true
		}
		return "", false
	}},
}

// DetectPhase classifies an utterance into general, recommendation or
// comparison, evaluating the rules in order; first match wins.
func DetectPhase(query string, history []model.ChatMessage, ctx *model.ConversationContext) model.Phase {
	lower := strings.ToLower(query)
	for _, rule := range classifierRules {
		if phase, ok := rule.match(query, lower, ctx); ok {
			return phase
		}
	}
	return model.PhaseGeneral
}

// IsRecommendationStyled reports whether the utterance carries an
// explicit shopping ask.
func IsRecommendationStyled(query string) bool {
	return containsAnySignal(strings.ToLower(query), recommendationTriggers)
}

func containsAnySignal(lower string, signals []string) bool {
	for _, s := range signals {
		if strings.Contains(s, " ") {
			if strings.Contains(lower, s) {
				return true
			}
		} else if containsWholeWord(lower, s) {
			return true
		}
	}
	return false
}

func containsWholeWord(lower, w string) bool {
	idx := 0
	for {
		i := strings.Index(lower[idx:], w)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isAlnum(lower[i-1])
		afterIdx := i + len(w)
		after := afterIdx >= len(lower) || !isAlnum(lower[afterIdx])
		if before && after {
			return true
		}
		idx = i + len(w)
	}
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
