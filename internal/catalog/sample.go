package catalog

import (
	"github.com/cartline-ai/shop-assistant/internal/model"
)

// SampleProducts is the catalog served when no database is configured,
// for local development and demos.
func SampleProducts() []model.Product {
	return []model.Product{
		{ID: "p-1001", Title: "Oak Dining Chair", Price: 79.99, Description: "Solid oak chair with a curved backrest and linen seat cushion.", Category: "Furniture", ImageURL: "/img/oak-chair.jpg", Inventory: 12, Slug: "oak-dining-chair"},
		{ID: "p-1002", Title: "Ergonomic Office Chair", Price: 189.00, Description: "Mesh-back office chair with lumbar support and adjustable armrests.", Category: "Furniture", ImageURL: "/img/office-chair.jpg", Inventory: 7, Slug: "ergonomic-office-chair"},
		{ID: "p-1003", Title: "Walnut Coffee Table", Price: 249.50, Description: "Mid-century walnut coffee table with hairpin legs.", Category: "Furniture", ImageURL: "/img/coffee-table.jpg", Inventory: 4, Slug: "walnut-coffee-table"},
		{ID: "p-1004", Title: "Brass Floor Lamp", Price: 119.00, Description: "Arc floor lamp with a brass finish and fabric drum shade.", Category: "Lighting", ImageURL: "/img/floor-lamp.jpg", Inventory: 9, Slug: "brass-floor-lamp"},
		{ID: "p-1005", Title: "Ceramic Desk Lamp", Price: 45.00, Description: "Compact ceramic lamp with a warm LED bulb, great for desks.", Category: "Lighting", ImageURL: "/img/desk-lamp.jpg", Inventory: 20, Slug: "ceramic-desk-lamp"},
		{ID: "p-1006", Title: "Wireless Headphones", Price: 149.99, Description: "Over-ear wireless headphones with active noise cancelling.", Category: "Electronics", ImageURL: "/img/headphones.jpg", Inventory: 15, Slug: "wireless-headphones"},
		{ID: "p-1007", Title: "Portable Bluetooth Speaker", Price: 59.99, Description: "Water-resistant speaker with 12-hour battery life.", Category: "Electronics", ImageURL: "/img/speaker.jpg", Inventory: 25, Slug: "portable-bluetooth-speaker"},
		{ID: "p-1008", Title: "Bookcase with Five Shelves", Price: 139.00, Description: "Tall laminate bookcase with five adjustable shelves.", Category: "Furniture", ImageURL: "/img/bookcase.jpg", Inventory: 6, Slug: "bookcase-five-shelves"},
	}
}
