package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cartline-ai/shop-assistant/internal/model"
)

func TestQuickReply(t *testing.T) {
	tests := []struct {
		query   string
		handled bool
		want    string
	}{
		{"hello!", true, "Hi there! I'm your shopping assistant. Ask me for product recommendations, comparisons, or anything about the store."},
		{"Thanks so much!", true, "You're welcome! Anything else I can help you find?"},
		{"goodbye", true, "Goodbye! Come back any time you want to shop."},
		{"are you a bot?", true, "I'm this store's shopping assistant. I can recommend products, compare items, and help you buy."},
		{"do you offer free shipping?", true, "We ship within 3-5 business days, and orders over $50 ship free."},
		{"can I pay with paypal", true, "We accept all major credit cards and PayPal at checkout."},
		{"show me chairs", false, ""},
		{"hello, do you have chairs under $100?", false, ""},
	}

	for _, tt := range tests {
		reply, ok := QuickReply(tt.query)
		assert.Equal(t, tt.handled, ok, "query=%q", tt.query)
		if tt.handled {
			assert.Equal(t, tt.want, reply, "query=%q", tt.query)
		}
	}
}

func TestQuickReplyWithCatalog(t *testing.T) {
	products := []model.Product{
		{Title: "Oak Dining Chair", Category: "Furniture"},
		{Title: "Brass Desk Lamp", Category: "Lighting"},
		{Title: "Velvet Armchair", Category: "furniture"},
		{Title: "Mystery Box", Category: ""},
	}

	reply, ok := QuickReplyWithCatalog("what do you sell?", products)
	assert.True(t, ok)
	// Categories are deduped case-insensitively and sorted.
	assert.Equal(t, "We carry Furniture, Lighting. What are you interested in?", reply)

	reply, ok = QuickReplyWithCatalog("what kind of products do you carry", products)
	assert.True(t, ok)
	assert.NotEmpty(t, reply)

	_, ok = QuickReplyWithCatalog("show me chairs", products)
	assert.False(t, ok)

	reply, ok = QuickReplyWithCatalog("what do you sell?", nil)
	assert.True(t, ok)
	assert.Contains(t, reply, "check back soon")
}
