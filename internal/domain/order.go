package domain

import "context"

// Order statuses as reported by the remote commerce API.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// ShippingAddress holds the checkout form fields exactly as the remote
// CreateOrder mutation expects them.
type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// OrderDraftItem is one {product, quantity} pair submitted at checkout.
type OrderDraftItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderDraft is the payload assembled from the cart snapshot at submission
// time. It is immutable once constructed and is not persisted locally.
type OrderDraft struct {
	Items    []OrderDraftItem `json:"items"`
	Shipping ShippingAddress  `json:"shipping"`
}

// PlacedOrder is the remote API's answer to a successful order submission.
type PlacedOrder struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"totalAmount"`
}

// OrderPlacer submits an order draft to the remote order-creation endpoint.
// The call is made exactly once per checkout attempt; implementations must
// not retry on their own.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, draft OrderDraft) (*PlacedOrder, error)
}
