package domain

import "time"

// Product is a catalog entry.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Quantity  *float64  `json:"quantity,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductInput carries a full product body (create or replace).
// Quantity is nil when the caller did not send it.
type ProductInput struct {
	Name     string
	Price    float64
	Category string
	Quantity *float64
}

// ProductPatch carries only the fields present in a partial update.
type ProductPatch struct {
	Name     *string
	Price    *float64
	Category *string
	Quantity *float64
}

// IsEmpty reports whether the patch would change nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Category == nil && p.Quantity == nil
}

// ProductFilter narrows a product listing. Zero values mean "no constraint".
type ProductFilter struct {
	Category string
	Page     int
	Limit    int
}
