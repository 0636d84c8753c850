package types

import "time"

// Category groups products in the catalog. A category owns zero or more products.
type Category struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Product is a sellable catalog item.
//
// Price, Quantity and CategoryID are pointers so that an absent value can be
// told apart from zero.
type Product struct {
	// ID is the unique identifier of the product.
	ID int `json:"id" db:"id"`

	// Name is the display name of the product.
	Name string `json:"name" db:"name"`

	// Description is free-form marketing copy.
	Description string `json:"description" db:"description"`

	// Image is the object storage key of the product image, if any.
	Image string `json:"image,omitempty" db:"image"`

	// Price is expressed in cents.
	Price *int64 `json:"price" db:"price_cents"`

	// Quantity is the number of units in stock.
	Quantity *int `json:"quantity" db:"quantity"`

	// CategoryID references the owning category.
	CategoryID *int `json:"category_id" db:"category_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CategoryCount is the number of products attached to a category.
type CategoryCount struct {
	CategoryID int    `json:"category_id" db:"category_id"`
	Name       string `json:"name" db:"name"`
	Count      int    `json:"count" db:"count"`
}

// DashboardStats is the aggregate view shown on the admin dashboard.
type DashboardStats struct {
	ProductCount       int             `json:"product_count"`
	CategoryCount      int             `json:"category_count"`
	ProductsByCategory []CategoryCount `json:"products_by_category"`
}
