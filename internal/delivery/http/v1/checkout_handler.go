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

type CheckoutHandler struct {
	checkoutUC *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{checkoutUC: uc}
}

type checkoutReq struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

func (req *checkoutReq) validate() string {
	switch {
	case req.Name == "":
		return "name is required"
	case req.Phone == "":
		return "phone is required"
	case req.Line1 == "":
		return "line1 is required"
	case req.City == "":
		return "city is required"
	case req.State == "":
		return "state is required"
	case req.Pincode == "":
		return "pincode is required"
	case req.Country == "":
		return "country is required"
	}
	return ""
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := domain.SessionFromContext(r.Context())

	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		utils.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	shipping := domain.ShippingAddress{
		Name:    req.Name,
		Phone:   req.Phone,
		Line1:   req.Line1,
		Line2:   req.Line2,
		City:    req.City,
		State:   req.State,
		Pincode: req.Pincode,
		Country: req.Country,
	}

	order, err := h.checkoutUC.Checkout(r.Context(), sessionID, shipping)
	if err != nil {
		var subErr *domain.SubmissionError
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			utils.WriteError(w, http.StatusConflict, "Cart is empty")
		case errors.Is(err, domain.ErrAuthRequired):
			utils.WriteError(w, http.StatusUnauthorized, "Sign in to place an order")
		case errors.Is(err, domain.ErrCheckoutInFlight):
			utils.WriteError(w, http.StatusConflict, "A checkout is already in progress for this cart")
		case errors.As(err, &subErr):
			logger.WithContext(r.Context()).Error().Err(subErr.Err).Msg("order submission failed")
			utils.WriteError(w, http.StatusBadGateway, "Order could not be placed, your cart is unchanged")
		default:
			logger.WithContext(r.Context()).Error().Err(err).Msg("checkout failed")
			utils.WriteError(w, http.StatusInternalServerError, "Checkout failed")
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"order": order,
	})
}
