package usecase

import (
	"context"
	"fmt"
	"sync"

	"upasana-backend/internal/domain"
	"upasana-backend/pkg/logger"
	"upasana-backend/pkg/utils"
)

// CartUsecase keeps one Ledger per cart session and translates UI-facing
// operations into ledger mutations. Products are resolved through the
// catalog at add time; that is the only moment stock is consulted.
type CartUsecase struct {
	store    domain.CollectionStore
	products domain.ProductSource
	pricing  Pricing
	maxQty   int

	mu      sync.Mutex
	ledgers map[string]*Ledger
}

func NewCartUsecase(store domain.CollectionStore, products domain.ProductSource, pricing Pricing, maxQty int) *CartUsecase {
	return &CartUsecase{
		store:    store,
		products: products,
		pricing:  pricing,
		maxQty:   maxQty,
		ledgers:  make(map[string]*Ledger),
	}
}

// Session returns the ledger for sessionID, creating it on first touch. The
// persisted collections are read exactly once per session; load failures
// degrade to an empty, session-only cart.
func (u *CartUsecase) Session(ctx context.Context, sessionID string) *Ledger {
	u.mu.Lock()
	defer u.mu.Unlock()

	if l, ok := u.ledgers[sessionID]; ok {
		return l
	}

	cartKey := domain.CollectionCart + ":" + sessionID
	wishKey := domain.CollectionWishlist + ":" + sessionID

	cart, err := u.store.LoadCollection(ctx, cartKey)
	logger.StoreOp("load", cartKey, err)
	if err != nil {
		cart = nil
	}
	wishlist, err := u.store.LoadCollection(ctx, wishKey)
	logger.StoreOp("load", wishKey, err)
	if err != nil {
		wishlist = nil
	}

	l := NewLedger(sessionID, u.store, cart, wishlist)
	u.ledgers[sessionID] = l
	return l
}

// CartView is the response shape for cart reads: the snapshot plus the
// derived totals and free-shipping progress.
type CartView struct {
	domain.CartSnapshot
	Quote                Quote   `json:"quote"`
	FreeShippingProgress float64 `json:"freeShippingProgress"`
}

// MutationResult reports the outcome of an add/update so the UI can tell the
// user when their requested quantity was reduced to available stock.
type MutationResult struct {
	CartView
	EntryID string `json:"entryId"`
	Applied int    `json:"applied"`
	Clamped bool   `json:"clamped"`
}

func (u *CartUsecase) view(ledger *Ledger) CartView {
	snap := ledger.Snapshot()
	return CartView{
		CartSnapshot:         snap,
		Quote:                u.pricing.Quote(snap.Subtotal),
		FreeShippingProgress: u.pricing.FreeShippingProgress(snap.Subtotal),
	}
}

// GetCart returns the current snapshot and quote for the session.
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) CartView {
	return u.view(u.Session(ctx, sessionID))
}

// GetWishlist returns the session's saved-for-later entries.
func (u *CartUsecase) GetWishlist(ctx context.Context, sessionID string) []domain.LineItem {
	return u.Session(ctx, sessionID).WishlistItems()
}

// AddToCart resolves the product, builds a line item carrying the stock known
// right now, and adds it to the ledger with clamping.
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID, productID string, quantity int) (*MutationResult, error) {
	if quantity < 1 {
		quantity = 1
	}
	if quantity > u.maxQty {
		quantity = u.maxQty
	}

	product, err := u.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("resolve product %s: %w", productID, err)
	}
	if product == nil || !product.IsActive {
		return nil, domain.ErrProductNotFound
	}
	if product.Stock < 1 {
		return nil, domain.ErrOutOfStock
	}

	item := domain.LineItem{
		ID:          utils.GenerateUUID(),
		ProductID:   product.ID,
		Name:        product.Title,
		UnitPrice:   product.Price,
		Image:       product.Thumbnail,
		Category:    product.Category,
		Description: product.Description,
		Stock:       product.Stock,
	}

	ledger := u.Session(ctx, sessionID)
	applied := ledger.AddItem(ctx, item, quantity)

	entryID := item.ID
	for _, it := range ledger.Snapshot().Items {
		if it.ProductID == product.ID {
			entryID = it.ID
			break
		}
	}

	return &MutationResult{
		CartView: u.view(ledger),
		EntryID:  entryID,
		Applied:  applied,
		Clamped:  applied < quantity,
	}, nil
}

// UpdateQuantity sets an entry's quantity, clamped to its stock.
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID, entryID string, quantity int) (*MutationResult, error) {
	if quantity > u.maxQty {
		quantity = u.maxQty
	}

	ledger := u.Session(ctx, sessionID)
	applied, found := ledger.UpdateQuantity(ctx, entryID, quantity)
	if !found {
		return nil, domain.ErrItemNotFound
	}

	return &MutationResult{
		CartView: u.view(ledger),
		EntryID:  entryID,
		Applied:  applied,
		Clamped:  applied != quantity,
	}, nil
}

// RemoveItem deletes a cart entry. Removing an entry that is already gone is
// not an error.
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID, entryID string) CartView {
	ledger := u.Session(ctx, sessionID)
	ledger.RemoveItem(ctx, entryID)
	return u.view(ledger)
}

// SaveForLater moves a cart entry to the wishlist.
func (u *CartUsecase) SaveForLater(ctx context.Context, sessionID, entryID string) (CartView, error) {
	ledger := u.Session(ctx, sessionID)
	if !ledger.SaveToWishlist(ctx, entryID) {
		return CartView{}, domain.ErrItemNotFound
	}
	return u.view(ledger), nil
}

// MoveToCart brings a wishlist entry back into the cart.
func (u *CartUsecase) MoveToCart(ctx context.Context, sessionID, entryID string) (*MutationResult, error) {
	ledger := u.Session(ctx, sessionID)
	applied, found := ledger.MoveToCart(ctx, entryID)
	if !found {
		return nil, domain.ErrItemNotFound
	}
	return &MutationResult{
		CartView: u.view(ledger),
		EntryID:  entryID,
		Applied:  applied,
	}, nil
}
