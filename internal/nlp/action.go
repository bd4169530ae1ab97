package nlp

import (
	"regexp"
	"strings"

	"github.com/cartline-ai/shop-assistant/internal/model"
)

// ActionRequest is a recognized buy/view/cart request. Vague is set when
// the verb had no target or only a pronoun ("buy it", "add this to cart");
// Target is empty in that case.
type ActionRequest struct {
	Action model.Action
	Target string
	Vague  bool
}

// fillers are pronouns and placeholders that cannot name a product.
var fillers = map[string]struct{}{
	"it": {}, "this": {}, "that": {}, "one": {}, "them": {},
	"these": {}, "those": {}, "this one": {}, "that one": {},
	"some": {}, "something": {}, "anything": {},
}

type actionPattern struct {
	action model.Action
	re     *regexp.Regexp
}

// Cart is matched first so that "add X to cart" is never read as a bare
// verb with "X to cart" as the target.
var actionPatterns = []actionPattern{
	{model.ActionCart, regexp.MustCompile(`(?i)^(?:please\s+)?(?:add|put)\s+(?:(.+?)\s+)?(?:to|in|into)\s+(?:my\s+|the\s+)?(?:cart|basket)\s*[?!.]*$`)},
	{model.ActionCart, regexp.MustCompile(`(?i)^(?:please\s+)?(?:add to cart|cart)\s*(.*?)\s*[?!.]*$`)},
	{model.ActionBuy, regexp.MustCompile(`(?i)^(?:i(?:'d| would)?\s+(?:like|want)\s+to\s+|can\s+i\s+|i'll\s+|please\s+|let me\s+)?(?:buy|purchase|order)\s*(.*?)\s*[?!.]*$`)},
	{model.ActionView, regexp.MustCompile(`(?i)^(?:i(?:'d| would)?\s+(?:like|want)\s+to\s+|can\s+i\s+|please\s+)?(?:view|see)\s+(?:the\s+)?(?:details?\s+(?:for|of|on)\s+|more\s+(?:about|on)\s+)?(.*?)\s*[?!.]*$`)},
}

// DetectAction recognizes a direct shopping action and its target, or
// returns nil when the utterance is not an action request.
func DetectAction(text string) *ActionRequest {
	trimmed := strings.TrimSpace(text)
	for _, p := range actionPatterns {
		m := p.re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		target := cleanTarget(m[1])
		if target == "" {
			return &ActionRequest{Action: p.action, Vague: true}
		}
		return &ActionRequest{Action: p.action, Target: target}
	}
	return nil
}

var leadingArticle = regexp.MustCompile(`(?i)^(?:a|an|the)\s+`)

// cleanTarget normalizes a captured target phrase; fillers collapse to "".
func cleanTarget(s string) string {
	s = strings.TrimSpace(s)
	s = leadingArticle.ReplaceAllString(s, "")
	s = strings.Trim(s, "\"'")
	if _, filler := fillers[strings.ToLower(s)]; filler {
		return ""
	}
	return s
}
