package domain

import "context"

// Collection keys understood by the CollectionStore. The full storage key is
// the collection name joined with the cart session ID, e.g. "cart:<session>".
const (
	CollectionCart     = "cart"
	CollectionWishlist = "wishlist"
)

// LineItem is one distinct product held in the cart or wishlist. ID identifies
// the cart entry itself; ProductID identifies the product and is unique within
// a collection. UnitPrice is in paise. Stock is the maximum purchasable
// quantity known at the time the item was added.
type LineItem struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	Name        string `json:"name"`
	UnitPrice   int64  `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Stock       int    `json:"stock"`
}

// CartSnapshot is a derived view of the cart collection. It is recomputed on
// every read and never cached.
type CartSnapshot struct {
	Items    []LineItem `json:"items"`
	Subtotal int64      `json:"subtotal"`
	Count    int        `json:"count"`
}

// CollectionStore persists line item collections. Implementations must treat
// a missing key as an empty collection, not an error. The in-memory ledger is
// authoritative during a session; the store is a recovery snapshot read once
// at session start, so store failures must never block cart operations.
type CollectionStore interface {
	LoadCollection(ctx context.Context, key string) ([]LineItem, error)
	SaveCollection(ctx context.Context, key string, items []LineItem) error
}
