package v1

import (
	"net/http"

	"upasana-backend/internal/domain"
	"upasana-backend/internal/usecase"
	"upasana-backend/pkg/utils"
)

type WishlistHandler struct {
	cartUC *usecase.CartUsecase
}

func NewWishlistHandler(uc *usecase.CartUsecase) *WishlistHandler {
	return &WishlistHandler{cartUC: uc}
}

func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionFromContext(r.Context())
	items := h.cartUC.GetWishlist(r.Context(), sessionID)
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

func (h *WishlistHandler) SaveForLater(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionFromContext(r.Context())
	entryID := r.PathValue("entryId")

	view, err := h.cartUC.SaveForLater(r.Context(), sessionID, entryID)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Cart item not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, view)
}

func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionFromContext(r.Context())
	entryID := r.PathValue("entryId")

	result, err := h.cartUC.MoveToCart(r.Context(), sessionID, entryID)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Wishlist item not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}
