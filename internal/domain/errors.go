package domain

import (
	"errors"
	"fmt"
)

// Checkout and cart failure modes. Everything else in the core either clamps
// its input or absorbs the failure internally; nothing panics or throws past
// a component boundary.
var (
	// ErrEmptyCart: checkout attempted with no line items. Resolved locally,
	// no external call is made.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrAuthRequired: checkout attempted while unauthenticated. The cart is
	// preserved so checkout can resume after sign-in.
	ErrAuthRequired = errors.New("authentication required")

	// ErrCheckoutInFlight: a second checkout was triggered while one is
	// already awaiting order submission. Rejected, never queued.
	ErrCheckoutInFlight = errors.New("checkout already in progress")

	// ErrItemNotFound: an entry ID did not match anything in the collection.
	// Ledger mutations treat this as a no-op; only lookups surface it.
	ErrItemNotFound = errors.New("cart item not found")

	// ErrProductNotFound: the remote catalog has no such product (or it is
	// inactive), so nothing can be added to the cart for it.
	ErrProductNotFound = errors.New("product not found")

	// ErrOutOfStock: the product exists but has zero purchasable stock, so
	// there is no quantity in [1, stock] to clamp to.
	ErrOutOfStock = errors.New("product out of stock")
)

// SubmissionError wraps any failure from the remote order-creation endpoint:
// validation errors, transport failures, server errors. The cart is never
// cleared on this path, so the user can retry without data loss.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("order submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
