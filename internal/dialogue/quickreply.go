package dialogue

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cartline-ai/shop-assistant/internal/model"
)

// quickReply is one entry of the canned small-talk table. Entries are
// tried in order; the first match answers the turn without touching the
// catalog or the completion service.
type quickReply struct {
	re    *regexp.Regexp
	reply string
}

var quickReplies = []quickReply{
	{
		regexp.MustCompile(`(?i)^(?:hi|hello|hey|howdy|good (?:morning|afternoon|evening))[\s!.,]*$`),
		"Hi there! I'm your shopping assistant. Ask me for product recommendations, comparisons, or anything about the store.",
	},
	{
		regexp.MustCompile(`(?i)^(?:thanks|thank you|thx|ty)(?:\s+(?:so|very)\s+much)?[\s!.,]*$`),
		"You're welcome! Anything else I can help you find?",
	},
	{
		regexp.MustCompile(`(?i)^(?:bye|goodbye|see you|later|good night)[\s!.,]*$`),
		"Goodbye! Come back any time you want to shop.",
	},
	{
		regexp.MustCompile(`(?i)\b(?:who|what) are you\b|\bare you (?:a )?(?:bot|robot|human|ai)\b`),
		"I'm this store's shopping assistant. I can recommend products, compare items, and help you buy.",
	},
	{
		regexp.MustCompile(`(?i)^(?:help|what can you do)[\s!?.]*$`),
		"I can recommend products, compare two items, answer store questions, and take you to checkout. Try \"show me chairs under $100\".",
	},
	{
		regexp.MustCompile(`(?i)\b(?:shipping|delivery)\b`),
		"We ship within 3-5 business days, and orders over $50 ship free.",
	},
	{
		regexp.MustCompile(`(?i)\b(?:return policy|returns?|refunds?)\b`),
		"You can return any unused item within 30 days for a full refund.",
	},
	{
		regexp.MustCompile(`(?i)\b(?:store hours|opening hours|when are you open)\b`),
		"The online store is open 24/7. Support is available 9am-6pm on weekdays.",
	},
	{
		regexp.MustCompile(`(?i)\b(?:payment|pay with|credit card|paypal)\b`),
		"We accept all major credit cards and PayPal at checkout.",
	},
}

// QuickReply answers common small talk from a fixed table, bypassing the
// catalog and the completion service entirely.
func QuickReply(query string) (string, bool) {
	trimmed := strings.TrimSpace(query)
	for _, qr := range quickReplies {
		if qr.re.MatchString(trimmed) {
			return qr.reply, true
		}
	}
	return "", false
}

var reWhatDoYouSell = regexp.MustCompile(`(?i)\b(?:what (?:do you|products do you) (?:sell|have|offer|carry)|what kinds? of products|what categories)\b`)

// QuickReplyWithCatalog is the second quick-reply pass, run once the
// catalog is loaded, for store-info answers that need category data.
func QuickReplyWithCatalog(query string, products []model.Product) (string, bool) {
	if !reWhatDoYouSell.MatchString(query) {
		return "", false
	}

	seen := make(map[string]struct{})
	categories := []string{}
	for _, p := range products {
		c := strings.TrimSpace(p.Category)
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		categories = append(categories, c)
	}
	sort.Strings(categories)

	if len(categories) == 0 {
		if len(products) == 0 {
			return "We don't have anything in stock right now — please check back soon!", true
		}
		return "We carry a little bit of everything. Tell me what you're looking for and I'll find it.", true
	}
	return "We carry " + strings.Join(categories, ", ") + ". What are you interested in?", true
}
