package domain

import "time"

// Service categories
const (
	CategoryService = "service"
	CategoryProduct = "product"
)

// Service is a catalog entry used to auto-fill invoice line items.
// Editing a service never changes existing invoice items: items keep
// their own copy of description and price.
type Service struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Price       Number    `json:"price"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// ValidCategory reports whether c is one of the known catalog categories
func ValidCategory(c string) bool {
	return c == CategoryService || c == CategoryProduct
}
