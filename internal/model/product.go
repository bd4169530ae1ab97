// Package model defines data structures for the shopping assistant.
package model

// Product is an immutable catalog snapshot for one item. Identity is ID.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Inventory   int     `json:"inventory"`
	Slug        string  `json:"slug"`
}

// PriceRange is a transient price constraint extracted from text.
// A nil bound means that side is open. Both bounds are inclusive.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Contains reports whether price satisfies the range.
func (r *PriceRange) Contains(price float64) bool {
	if r == nil {
		return true
	}
	if r.Min != nil && price < *r.Min {
		return false
	}
	if r.Max != nil && price > *r.Max {
		return false
	}
	return true
}
