package httpapi

import (
	"net/http"

	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/service"
)

type checkoutRequest struct {
	Customer customerJSON `json:"customer"`
	Shipping shippingJSON `json:"shipping"`
	Notes    *string      `json:"notes,omitempty"`
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	owner, err := h.cartOwner(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), owner, service.CheckoutRequest{
		Customer: domain.Customer(req.Customer),
		Shipping: domain.ShippingAddress(req.Shipping),
		Notes:    req.Notes,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrder(order))
}

func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	state, _ := stateFrom(r.Context())

	orders, err := h.checkout.Orders(r.Context(), state.Session.User.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrders(orders))
}
