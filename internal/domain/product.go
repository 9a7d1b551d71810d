package domain

import "context"

// Product is the subset of the remote catalog product the cart core needs to
// build a LineItem at add time. Price is in paise. Stock is the purchasable
// quantity as known when the product was fetched; it is not re-validated
// locally afterwards.
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Thumbnail   string `json:"thumbnail"`
	Category    string `json:"category"`
	IsActive    bool   `json:"isActive"`
}

// ProductSource supplies product data (including stock) from the remote
// catalog. It is the only place the cart core learns about stock levels.
type ProductSource interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
}
