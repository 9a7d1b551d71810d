package v1

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"upasana-backend/internal/domain"
	"upasana-backend/internal/usecase"
	"upasana-backend/pkg/logger"
	"upasana-backend/pkg/utils"
)

type CartHandler struct {
	cartUC *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUC: uc}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionFromContext(r.Context())
	utils.WriteJSON(w, http.StatusOK, h.cartUC.GetCart(r.Context(), sessionID))
}

type addToCartReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionFromContext(r.Context())

	var req addToCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		utils.WriteError(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	result, err := h.cartUC.AddToCart(r.Context(), sessionID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			utils.WriteError(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, domain.ErrOutOfStock):
			utils.WriteError(w, http.StatusConflict, "Product is out of stock")
		default:
			logger.WithContext(r.Context()).Error().Err(err).Str("product_id", req.ProductID).Msg("AddToCart failed")
			utils.WriteError(w, http.StatusBadGateway, "Unable to reach the catalog, try again")
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

type updateQuantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionFromContext(r.Context())
	entryID := r.PathValue("entryId")

	var req updateQuantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity < 1 {
		utils.WriteError(w, http.StatusBadRequest, "Quantity must be at least 1; delete the entry to remove it")
		return
	}

	result, err := h.cartUC.UpdateQuantity(r.Context(), sessionID, entryID, req.Quantity)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Cart item not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionFromContext(r.Context())
	entryID := r.PathValue("entryId")

	// Removing twice is the same as removing once; both answer the fresh view.
	utils.WriteJSON(w, http.StatusOK, h.cartUC.RemoveItem(r.Context(), sessionID, entryID))
}
