package usecase

import (
	"context"
	"sync"

	"upasana-backend/internal/domain"
	"upasana-backend/pkg/logger"
)

// Ledger owns the cart and wishlist collections for one cart session. It is
// the single writer of both; everything else reads derived snapshots. All
// mutations clamp or ignore out-of-range input rather than failing, and every
// mutation writes the affected collection through the store. Store failures
// are logged and absorbed: the in-memory state stays authoritative for the
// session.
type Ledger struct {
	sessionID string
	store     domain.CollectionStore

	mu       sync.Mutex
	cart     []domain.LineItem
	wishlist []domain.LineItem
}

// NewLedger builds a ledger over collections already loaded from the store.
func NewLedger(sessionID string, store domain.CollectionStore, cart, wishlist []domain.LineItem) *Ledger {
	return &Ledger{
		sessionID: sessionID,
		store:     store,
		cart:      cart,
		wishlist:  wishlist,
	}
}

func clampQuantity(quantity, stock int) int {
	if quantity > stock {
		quantity = stock
	}
	if quantity < 1 {
		quantity = 1
	}
	return quantity
}

// AddItem inserts item into the cart, or increments the existing entry for
// the same product. The resulting quantity is clamped to [1, item.Stock] and
// returned, so callers can tell when a request was reduced to available
// stock. item.Stock and item.UnitPrice refresh any existing entry: the
// incoming product data is newer than what the entry was created with.
func (l *Ledger) AddItem(ctx context.Context, item domain.LineItem, quantity int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.cart {
		if l.cart[i].ProductID == item.ProductID {
			l.cart[i].Stock = item.Stock
			l.cart[i].UnitPrice = item.UnitPrice
			l.cart[i].Quantity = clampQuantity(l.cart[i].Quantity+quantity, item.Stock)
			l.persistCart(ctx)
			return l.cart[i].Quantity
		}
	}

	item.Quantity = clampQuantity(quantity, item.Stock)
	l.cart = append(l.cart, item)
	l.persistCart(ctx)
	return item.Quantity
}

// RemoveItem deletes the cart entry with the given ID. Removing an absent
// entry is a no-op; the bool reports whether anything was removed.
func (l *Ledger) RemoveItem(ctx context.Context, entryID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.cart {
		if l.cart[i].ID == entryID {
			l.cart = append(l.cart[:i], l.cart[i+1:]...)
			l.persistCart(ctx)
			return true
		}
	}
	return false
}

// UpdateQuantity sets the entry's quantity, clamped to [1, stock]. Quantity
// cannot be driven below 1 here; RemoveItem deletes. Returns the applied
// quantity and whether the entry exists.
func (l *Ledger) UpdateQuantity(ctx context.Context, entryID string, quantity int) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.cart {
		if l.cart[i].ID == entryID {
			l.cart[i].Quantity = clampQuantity(quantity, l.cart[i].Stock)
			l.persistCart(ctx)
			return l.cart[i].Quantity, true
		}
	}
	return 0, false
}

// Clear empties the cart collection. The wishlist is untouched. This is the
// sole way checkout destroys cart state, and only after a successful order.
func (l *Ledger) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cart = nil
	l.persistCart(ctx)
}

// SaveToWishlist relocates a cart entry out of the purchase flow. If the
// wishlist already holds that product the cart entry is simply removed and
// its quantity discarded; no duplicate is created. Returns false when the
// entry is not in the cart.
func (l *Ledger) SaveToWishlist(ctx context.Context, entryID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.cart {
		if l.cart[i].ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	entry := l.cart[idx]
	l.cart = append(l.cart[:idx], l.cart[idx+1:]...)

	duplicate := false
	for i := range l.wishlist {
		if l.wishlist[i].ProductID == entry.ProductID {
			duplicate = true
			break
		}
	}
	if !duplicate {
		l.wishlist = append(l.wishlist, entry)
		l.persistWishlist(ctx)
	}
	l.persistCart(ctx)
	return true
}

// MoveToCart is the inverse of SaveToWishlist: the entry leaves the wishlist
// and re-enters the cart through the same clamped add as AddItem, using its
// stored quantity. Returns the applied quantity and whether the entry was in
// the wishlist.
func (l *Ledger) MoveToCart(ctx context.Context, entryID string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.wishlist {
		if l.wishlist[i].ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, false
	}

	entry := l.wishlist[idx]
	l.wishlist = append(l.wishlist[:idx], l.wishlist[idx+1:]...)
	l.persistWishlist(ctx)

	for i := range l.cart {
		if l.cart[i].ProductID == entry.ProductID {
			l.cart[i].Quantity = clampQuantity(l.cart[i].Quantity+entry.Quantity, l.cart[i].Stock)
			l.persistCart(ctx)
			return l.cart[i].Quantity, true
		}
	}

	entry.Quantity = clampQuantity(entry.Quantity, entry.Stock)
	l.cart = append(l.cart, entry)
	l.persistCart(ctx)
	return entry.Quantity, true
}

// Snapshot derives the current cart view. Subtotal and count are recomputed
// on every call; nothing is cached.
func (l *Ledger) Snapshot() domain.CartSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := domain.CartSnapshot{
		Items: make([]domain.LineItem, len(l.cart)),
	}
	copy(snap.Items, l.cart)
	for _, item := range l.cart {
		snap.Subtotal += item.UnitPrice * int64(item.Quantity)
		snap.Count += item.Quantity
	}
	return snap
}

// Total returns the cart subtotal in paise.
func (l *Ledger) Total() int64 {
	return l.Snapshot().Subtotal
}

// Count returns the summed quantity over the cart.
func (l *Ledger) Count() int {
	return l.Snapshot().Count
}

// WishlistItems returns a copy of the wishlist collection.
func (l *Ledger) WishlistItems() []domain.LineItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]domain.LineItem, len(l.wishlist))
	copy(items, l.wishlist)
	return items
}

// persistCart and persistWishlist must be called with l.mu held.

func (l *Ledger) persistCart(ctx context.Context) {
	key := domain.CollectionCart + ":" + l.sessionID
	items := make([]domain.LineItem, len(l.cart))
	copy(items, l.cart)
	logger.StoreOp("save", key, l.store.SaveCollection(ctx, key, items))
}

func (l *Ledger) persistWishlist(ctx context.Context) {
	key := domain.CollectionWishlist + ":" + l.sessionID
	items := make([]domain.LineItem, len(l.wishlist))
	copy(items, l.wishlist)
	logger.StoreOp("save", key, l.store.SaveCollection(ctx, key, items))
}
