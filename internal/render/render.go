// Package render turns the resolver's structured decisions into the
// markup embedded in chat replies. No decision logic lives here.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/cartline-ai/shop-assistant/internal/model"
)

// ProductCards renders a product listing as HTML cards.
func ProductCards(products []model.Product) string {
	if len(products) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="product-grid">`)
	for _, p := range products {
		writeCard(&b, p, "")
	}
	b.WriteString(`</div>`)
	return b.String()
}

// ActionCards renders up to three candidate products for a vague action
// request, each tagged with the requested action.
func ActionCards(products []model.Product, action model.Action) string {
	if len(products) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="product-grid product-grid-action">`)
	for _, p := range products {
		writeCard(&b, p, string(action))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func writeCard(b *strings.Builder, p model.Product, action string) {
	b.WriteString(`<div class="product-card" data-product-id="` + html.EscapeString(p.ID) + `"`)
	if action != "" {
		b.WriteString(` data-action="` + html.EscapeString(action) + `"`)
	}
	b.WriteString(`>`)
	if p.ImageURL != "" {
		fmt.Fprintf(b, `<img src="%s" alt="%s"/>`, html.EscapeString(p.ImageURL), html.EscapeString(p.Title))
	}
	fmt.Fprintf(b, `<span class="product-title">%s</span>`, html.EscapeString(p.Title))
	fmt.Fprintf(b, `<span class="product-price">$%.2f</span>`, p.Price)
	b.WriteString(`</div>`)
}

// ComparisonFallback is the deterministic comparison used whenever the
// completion service fails or times out.
func ComparisonFallback(a, b model.Product) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s is $%.2f and %s is $%.2f. ", a.Title, a.Price, b.Title, b.Price)

	diff := a.Price - b.Price
	switch {
	case diff > 0:
		fmt.Fprintf(&sb, "%s costs $%.2f less. ", b.Title, diff)
	case diff < 0:
		fmt.Fprintf(&sb, "%s costs $%.2f less. ", a.Title, -diff)
	default:
		sb.WriteString("They are the same price. ")
	}

	if s := snippet(a.Description); s != "" {
		fmt.Fprintf(&sb, "%s: %s ", a.Title, s)
	}
	if s := snippet(b.Description); s != "" {
		fmt.Fprintf(&sb, "%s: %s", b.Title, s)
	}
	return strings.TrimSpace(sb.String())
}

func snippet(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return ""
	}
	if len(desc) > 90 {
		desc = strings.TrimSpace(desc[:90]) + "..."
	}
	if !strings.HasSuffix(desc, ".") && !strings.HasSuffix(desc, "...") {
		desc += "."
	}
	return desc
}
