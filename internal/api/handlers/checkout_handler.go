package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Cheertaboi/storefront-service/internal/identity"
	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/service"
)

type InspectCardRequest struct {
	CardNumber string `json:"card_number"`
}

type CheckoutHandler struct {
	checkout *service.CheckoutService
	payments *service.PaymentService
}

func NewCheckoutHandler(checkout *service.CheckoutService, payments *service.PaymentService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, payments: payments}
}

// PlaceOrder handles POST /checkout/orders. An empty body means no address is selected.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var choice service.AddressChoice
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&choice); err != nil {
			invalidBody(w)
			return
		}
	}

	p := identity.FromContext(r.Context())
	draft, err := h.checkout.PlaceOrder(r.Context(), p.UserID, p.SessionID, choice)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"order":    draft,
		"redirect": "/checkout/payment",
	})
}

// BeginPayment handles GET /checkout/payment
func (h *CheckoutHandler) BeginPayment(w http.ResponseWriter, r *http.Request) {
	p := identity.FromContext(r.Context())
	state, err := h.payments.Begin(r.Context(), p.UserID, p.SessionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// SubmitPayment handles POST /checkout/payment
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var form models.CardForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		invalidBody(w)
		return
	}

	p := identity.FromContext(r.Context())
	state, err := h.payments.Submit(r.Context(), p.UserID, p.SessionID, form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// InspectCard handles POST /payment/card/inspect
func (h *CheckoutHandler) InspectCard(w http.ResponseWriter, r *http.Request) {
	var req InspectCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		invalidBody(w)
		return
	}
	writeJSON(w, http.StatusOK, h.payments.Inspect(r.Context(), req.CardNumber))
}
