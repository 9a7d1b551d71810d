package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"upasana-backend/internal/domain"
	"upasana-backend/pkg/logger"
	"upasana-backend/pkg/utils"
)

// CheckoutState names the phases of one checkout attempt. An attempt always
// starts from idle and ends in succeeded or failed; nothing carries over to
// the next attempt, which re-validates cart and auth from scratch.
type CheckoutState string

const (
	StateIdle               CheckoutState = "idle"
	StateValidatingCart     CheckoutState = "validating_cart"
	StateValidatingAuth     CheckoutState = "validating_auth"
	StateAwaitingSubmission CheckoutState = "awaiting_order_submission"
	StateSucceeded          CheckoutState = "succeeded"
	StateFailed             CheckoutState = "failed"
)

// CheckoutUsecase sequences a checkout attempt: cart validation, auth
// validation, exactly-once order submission, and ledger clearing on success.
type CheckoutUsecase struct {
	carts   *CartUsecase
	auth    domain.AuthChecker
	orders  domain.OrderPlacer
	pricing Pricing

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewCheckoutUsecase(carts *CartUsecase, auth domain.AuthChecker, orders domain.OrderPlacer, pricing Pricing) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:    carts,
		auth:     auth,
		orders:   orders,
		pricing:  pricing,
		inflight: make(map[string]struct{}),
	}
}

// begin registers an in-flight attempt for the session. A second trigger
// while one is active is rejected, not queued: this is the double-submit
// guard.
func (u *CheckoutUsecase) begin(sessionID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, active := u.inflight[sessionID]; active {
		return false
	}
	u.inflight[sessionID] = struct{}{}
	return true
}

func (u *CheckoutUsecase) finish(sessionID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.inflight, sessionID)
}

// Checkout runs one attempt for the session. On success the cart collection
// is cleared (the wishlist is untouched) and the placed order is returned.
// On any failure the cart is left exactly as it was.
func (u *CheckoutUsecase) Checkout(ctx context.Context, sessionID string, shipping domain.ShippingAddress) (*domain.PlacedOrder, error) {
	log := logger.WithSession(sessionID)

	if !u.begin(sessionID) {
		log.Warn().Msg("Checkout rejected: attempt already in flight")
		return nil, domain.ErrCheckoutInFlight
	}
	defer u.finish(sessionID)

	state := StateValidatingCart
	ledger := u.carts.Session(ctx, sessionID)
	snapshot := ledger.Snapshot()
	if len(snapshot.Items) == 0 {
		u.fail(&log, state, domain.ErrEmptyCart)
		return nil, domain.ErrEmptyCart
	}

	state = u.advance(&log, state, StateValidatingAuth)
	if !u.auth.IsAuthenticated(ctx) {
		u.fail(&log, state, domain.ErrAuthRequired)
		return nil, domain.ErrAuthRequired
	}

	// The draft is built from the snapshot taken in this attempt; a stale
	// snapshot from an earlier attempt can never be submitted.
	draft := domain.OrderDraft{
		Items:    make([]domain.OrderDraftItem, 0, len(snapshot.Items)),
		Shipping: shipping,
	}
	for _, item := range snapshot.Items {
		draft.Items = append(draft.Items, domain.OrderDraftItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	state = u.advance(&log, state, StateAwaitingSubmission)
	placed, err := u.orders.CreateOrder(ctx, draft)
	if err != nil {
		submission := &domain.SubmissionError{Err: err}
		u.fail(&log, state, submission)
		return nil, submission
	}

	ledger.Clear(ctx)
	u.advance(&log, state, StateSucceeded)

	quote := u.pricing.Quote(snapshot.Subtotal)
	log.Info().
		Str("order_id", placed.ID).
		Str("order_number", placed.OrderNumber).
		Int("items", len(snapshot.Items)).
		Int64("subtotal", quote.Subtotal).
		Int64("shipping", quote.ShippingCharge).
		Int64("tax", quote.Tax).
		Int64("total", quote.Total).
		Str("total_display", utils.FormatPaise(quote.Total)).
		Msg("Order placed")

	return placed, nil
}

func (u *CheckoutUsecase) advance(log *zerolog.Logger, from, to CheckoutState) CheckoutState {
	log.Debug().Str("from", string(from)).Str("to", string(to)).Msg("Checkout transition")
	return to
}

func (u *CheckoutUsecase) fail(log *zerolog.Logger, from CheckoutState, cause error) {
	log.Debug().Str("from", string(from)).Str("to", string(StateFailed)).Err(cause).Msg("Checkout transition")
}
