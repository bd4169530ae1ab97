package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cartline-ai/shop-assistant/internal/model"
)

func TestProductCards(t *testing.T) {
	assert.Empty(t, ProductCards(nil))

	out := ProductCards([]model.Product{
		{ID: "p1", Title: "Oak <Chair>", Price: 89.99, ImageURL: "https://img/p1.jpg"},
		{ID: "p2", Title: "Brass Lamp", Price: 59.50},
	})
	assert.Contains(t, out, `data-product-id="p1"`)
	assert.Contains(t, out, `data-product-id="p2"`)
	assert.Contains(t, out, "$89.99")
	// Titles are escaped.
	assert.Contains(t, out, "Oak &lt;Chair&gt;")
	assert.NotContains(t, out, "Oak <Chair>")
	// No image tag for products without one.
	assert.Contains(t, out, `src="https://img/p1.jpg"`)
}

func TestActionCards(t *testing.T) {
	out := ActionCards([]model.Product{{ID: "p1", Title: "Oak Chair", Price: 89.99}}, model.ActionCart)
	assert.Contains(t, out, `data-action="cart"`)
}

func TestComparisonFallback(t *testing.T) {
	a := model.Product{Title: "Oak Chair", Price: 89.99, Description: "Solid oak dining chair"}
	b := model.Product{Title: "Brass Lamp", Price: 59.50, Description: "Adjustable brass lamp"}

	out := ComparisonFallback(a, b)
	assert.Contains(t, out, "Oak Chair is $89.99")
	assert.Contains(t, out, "Brass Lamp is $59.50")
	assert.Contains(t, out, "Brass Lamp costs $30.49 less.")
	assert.Contains(t, out, "Solid oak dining chair.")

	samePrice := ComparisonFallback(
		model.Product{Title: "A", Price: 10},
		model.Product{Title: "B", Price: 10},
	)
	assert.Contains(t, samePrice, "They are the same price.")
}
