package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upasana-backend/internal/domain"
	"upasana-backend/internal/repository/memstore"
	"upasana-backend/internal/usecase"
)

type fakeProducts struct {
	products map[string]*domain.Product
}

func (f *fakeProducts) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	return f.products[id], nil
}

type fakeOrders struct {
	placed *domain.PlacedOrder
	err    error
	calls  int
}

func (f *fakeOrders) CreateOrder(context.Context, domain.OrderDraft) (*domain.PlacedOrder, error) {
	f.calls += 1
	if f.err != nil {
		return nil, f.err
	}
	return f.placed, nil
}

type fakeAuth struct {
	authenticated bool
}

func (f fakeAuth) IsAuthenticated(context.Context) bool { return f.authenticated }

type fixture struct {
	mux    *http.ServeMux
	orders *fakeOrders
}

func newFixture(authenticated bool) *fixture {
	pricing := usecase.Pricing{
		FreeShippingThreshold: 50000,
		ShippingFlatRate:      2500,
		TaxRateBasisPoints:    800,
	}
	products := &fakeProducts{products: map[string]*domain.Product{
		"p1": {ID: "p1", Title: "Handloom Saree", Price: 20000, Stock: 5, IsActive: true},
	}}
	orders := &fakeOrders{placed: &domain.PlacedOrder{ID: "ord-1", OrderNumber: "UPA-1001", Status: domain.OrderStatusPending}}

	cartUC := usecase.NewCartUsecase(memstore.New(), products, pricing, 1000)
	checkoutUC := usecase.NewCheckoutUsecase(cartUC, fakeAuth{authenticated: authenticated}, orders, pricing)

	cartHandler := NewCartHandler(cartUC)
	wishlistHandler := NewWishlistHandler(cartUC)
	checkoutHandler := NewCheckoutHandler(checkoutUC)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart)
	mux.HandleFunc("POST /api/v1/cart", cartHandler.AddToCart)
	mux.HandleFunc("PUT /api/v1/cart/{entryId}", cartHandler.UpdateQuantity)
	mux.HandleFunc("DELETE /api/v1/cart/{entryId}", cartHandler.RemoveItem)
	mux.HandleFunc("POST /api/v1/cart/{entryId}/save", wishlistHandler.SaveForLater)
	mux.HandleFunc("GET /api/v1/wishlist", wishlistHandler.GetWishlist)
	mux.HandleFunc("POST /api/v1/wishlist/{entryId}/move", wishlistHandler.MoveToCart)
	mux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Checkout)

	return &fixture{mux: mux, orders: orders}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req = req.WithContext(context.WithValue(req.Context(), domain.SessionContextKey, "s1"))

	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

const checkoutBody = `{"name":"Asha Rao","phone":"9876543210","line1":"14 MG Road","city":"Bengaluru","state":"Karnataka","pincode":"560001","country":"India"}`

func TestGetCart_EmptySession(t *testing.T) {
	f := newFixture(true)

	rec := f.do(t, http.MethodGet, "/api/v1/cart", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, float64(0), payload["count"])
	assert.Equal(t, float64(0), payload["subtotal"])
}

func TestAddToCart_ReturnsMutationResult(t *testing.T) {
	f := newFixture(true)

	rec := f.do(t, http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":2}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, float64(2), payload["applied"])
	assert.Equal(t, false, payload["clamped"])
	assert.NotEmpty(t, payload["entryId"])
	assert.Equal(t, float64(40000), payload["subtotal"])
}

func TestAddToCart_ClampedToStock(t *testing.T) {
	f := newFixture(true)

	rec := f.do(t, http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":9}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	payload := decode(t, rec)
	assert.Equal(t, float64(5), payload["applied"])
	assert.Equal(t, true, payload["clamped"])
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	f := newFixture(true)

	rec := f.do(t, http.MethodPost, "/api/v1/cart", `{"productId":"ghost"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddToCart_MissingProductID(t *testing.T) {
	f := newFixture(true)

	rec := f.do(t, http.MethodPost, "/api/v1/cart", `{"quantity":2}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateQuantity_UnknownEntry(t *testing.T) {
	f := newFixture(true)

	rec := f.do(t, http.MethodPut, "/api/v1/cart/nope", `{"quantity":3}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateQuantity_ZeroRejected(t *testing.T) {
	f := newFixture(true)

	rec := f.do(t, http.MethodPut, "/api/v1/cart/anything", `{"quantity":0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveItem_TwiceIsOK(t *testing.T) {
	f := newFixture(true)

	added := decode(t, f.do(t, http.MethodPost, "/api/v1/cart", `{"productId":"p1"}`))
	entryID := added["entryId"].(string)

	rec := f.do(t, http.MethodDelete, "/api/v1/cart/"+entryID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/v1/cart/"+entryID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["count"])
}

func TestWishlistFlow(t *testing.T) {
	f := newFixture(true)

	added := decode(t, f.do(t, http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":2}`))
	entryID := added["entryId"].(string)

	rec := f.do(t, http.MethodPost, "/api/v1/cart/"+entryID+"/save", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["count"])

	rec = f.do(t, http.MethodGet, "/api/v1/wishlist", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	rec = f.do(t, http.MethodPost, "/api/v1/wishlist/"+entryID+"/move", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["applied"])

	rec = f.do(t, http.MethodGet, "/api/v1/wishlist", "")
	assert.Equal(t, float64(0), decode(t, rec)["count"])
}

func TestCheckout_EmptyCartConflict(t *testing.T) {
	f := newFixture(true)

	rec := f.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 0, f.orders.calls)
}

func TestCheckout_Unauthenticated(t *testing.T) {
	f := newFixture(false)
	f.do(t, http.MethodPost, "/api/v1/cart", `{"productId":"p1"}`)

	rec := f.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, f.orders.calls)

	// The cart survives for after sign-in.
	assert.Equal(t, float64(1), decode(t, f.do(t, http.MethodGet, "/api/v1/cart", ""))["count"])
}

func TestCheckout_MissingShippingField(t *testing.T) {
	f := newFixture(true)
	f.do(t, http.MethodPost, "/api/v1/cart", `{"productId":"p1"}`)

	rec := f.do(t, http.MethodPost, "/api/v1/checkout", `{"name":"Asha Rao"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, f.orders.calls)
}

func TestCheckout_Success(t *testing.T) {
	f := newFixture(true)
	f.do(t, http.MethodPost, "/api/v1/cart", `{"productId":"p1","quantity":2}`)

	rec := f.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	payload := decode(t, rec)
	order := payload["order"].(map[string]interface{})
	assert.Equal(t, "UPA-1001", order["orderNumber"])

	// The cart is empty after a placed order.
	assert.Equal(t, float64(0), decode(t, f.do(t, http.MethodGet, "/api/v1/cart", ""))["count"])
}

func TestCheckout_UpstreamFailure(t *testing.T) {
	f := newFixture(true)
	f.orders.err = errors.New("upstream timeout")
	f.do(t, http.MethodPost, "/api/v1/cart", `{"productId":"p1"}`)

	rec := f.do(t, http.MethodPost, "/api/v1/checkout", checkoutBody)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, float64(1), decode(t, f.do(t, http.MethodGet, "/api/v1/cart", ""))["count"])
}
