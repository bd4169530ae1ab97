package llm

import (
	"fmt"
	"strings"

	"github.com/cartline-ai/shop-assistant/internal/model"
)

// storePersona constrains the assistant to the storefront domain.
const storePersona = `You are a friendly shopping assistant for an online store.
Answer briefly and helpfully. Stay on the topics of the store, its products,
shipping, returns, and shopping advice. Politely refuse abusive or
off-topic requests. If the customer mentions a product the store carries,
you may acknowledge it by name but do not invent prices, stock levels, or
details you were not given.`

// BuildGeneralRequest builds a constrained completion request for a
// general question. Products the utterance happens to name are listed so
// the model can acknowledge them without fabricating details.
func BuildGeneralRequest(query string, history []model.ChatMessage, mentioned []model.Product) *CompletionRequest {
	system := storePersona
	if len(mentioned) > 0 {
		names := make([]string, len(mentioned))
		for i, p := range mentioned {
			names[i] = p.Title
		}
		system += "\nProducts the customer may be referring to: " + strings.Join(names, ", ") + "."
	}

	msgs := make([]ChatMessage, 0, len(history)+1)
	for _, m := range history {
		msgs = append(msgs, ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	msgs = append(msgs, ChatMessage{Role: string(model.RoleUser), Content: query})

	return &CompletionRequest{
		System:      system,
		Messages:    msgs,
		MaxTokens:   300,
		Temperature: 0.7,
	}
}

// BuildComparisonRequest builds a strict comparison prompt: neutral tone,
// price and value focus, bounded length.
func BuildComparisonRequest(a, b model.Product) *CompletionRequest {
	prompt := fmt.Sprintf(
		`Compare these two products for a customer in at most 120 words.
Be neutral; do not declare an absolute winner. Focus on price and value.

Product A: %s - $%.2f. %s
Product B: %s - $%.2f. %s`,
		a.Title, a.Price, a.Description,
		b.Title, b.Price, b.Description,
	)

	return &CompletionRequest{
		System:      storePersona,
		Messages:    []ChatMessage{{Role: string(model.RoleUser), Content: prompt}},
		MaxTokens:   250,
		Temperature: 0.4,
	}
}
