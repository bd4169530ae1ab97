// Package dialogue is the dialogue state and intent-resolution engine:
// context extraction, phase classification, and the per-turn resolver.
package dialogue

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cartline-ai/shop-assistant/internal/model"
)

// Confirmation prompts are both emitted and parsed in this package so
// the wording and the recovery regexes cannot drift apart. Context
// reconstruction depends on these exact templates.

// PurchasePrompt is the buy-confirmation question the assistant asks.
func PurchasePrompt(title string, price float64) string {
	return fmt.Sprintf("Would you like to proceed with purchasing %s for $%.2f?", title, price)
}

// ViewPrompt is the view-details confirmation question.
func ViewPrompt(title string) string {
	return fmt.Sprintf("Would you like to view details for %s?", title)
}

// CartPrompt is the add-to-cart confirmation question.
func CartPrompt(title string, price float64) string {
	return fmt.Sprintf("Would you like to add %s ($%.2f) to your cart?", title, price)
}

var (
	rePurchasePrompt = regexp.MustCompile(`Would you like to proceed with purchasing (.+?) for \$([0-9]+(?:\.[0-9]+)?)\?`)
	reViewPrompt     = regexp.MustCompile(`Would you like to view details for (.+?)\?`)
	reCartPrompt     = regexp.MustCompile(`Would you like to add (.+?) \(\$([0-9]+(?:\.[0-9]+)?)\) to your cart\?`)
)

// ExtractContext reconstructs pending conversational state by reading
// only the last message in history, and only when it came from the
// assistant. A history that is too short, ends on a user message, or
// matches no template yields an empty context; that is the safe default,
// never an error.
func ExtractContext(history []model.ChatMessage, lastShown []model.Product) *model.ConversationContext {
	ctx := &model.ConversationContext{LastShownProducts: lastShown}

	if len(history) < 2 {
		return ctx
	}
	last := history[len(history)-1]
	if last.Role != model.RoleAssistant {
		return ctx
	}

	if m := rePurchasePrompt.FindStringSubmatch(last.Content); m != nil {
		title := strings.TrimSpace(m[1])
		price, _ := strconv.ParseFloat(m[2], 64)

		pending := &model.PendingPurchase{Title: title, Price: price}
		for _, p := range lastShown {
			if strings.EqualFold(p.Title, title) {
				pending.ProductID = p.ID
				pending.Slug = p.Slug
				break
			}
		}
		ctx.PendingPurchase = pending
		ctx.PendingAction = model.ActionBuy
		return ctx
	}

	if reViewPrompt.MatchString(last.Content) {
		ctx.PendingAction = model.ActionView
		return ctx
	}

	if reCartPrompt.MatchString(last.Content) {
		ctx.PendingAction = model.ActionCart
		return ctx
	}

	return ctx
}
