package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/storefront-service/internal/identity"
	"github.com/Cheertaboi/storefront-service/internal/service"
)

type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) session(r *http.Request) *service.CartSession {
	return h.carts.Session(identity.FromContext(r.Context()).UserID)
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.session(r).Refresh(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// AddItem handles POST /cart/items/{productID}
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	summary, err := h.session(r).Add(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// SetQuantity handles PUT /cart/items/{productID}; a quantity of 0 or less removes the item.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		writeError(w, r, service.ErrBadQuantity)
		return
	}

	summary, err := h.session(r).SetQuantity(r.Context(), chi.URLParam(r, "productID"), *req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// RemoveItem handles DELETE /cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	summary, err := h.session(r).Remove(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
