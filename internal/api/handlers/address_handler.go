package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/storefront-service/internal/identity"
	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/service"
)

type AddressHandler struct {
	addresses *service.AddressService
}

func NewAddressHandler(addresses *service.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// ListAddresses handles GET /addresses
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	list, err := h.addresses.List(r.Context(), identity.FromContext(r.Context()).UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []models.Address{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"addresses": list})
}

// CreateAddress handles POST /addresses
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req models.NewAddress
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		invalidBody(w)
		return
	}

	addr, err := h.addresses.Save(r.Context(), identity.FromContext(r.Context()).UserID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, addr)
}

// DeleteAddress handles DELETE /addresses/{id}
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	err := h.addresses.Delete(r.Context(), identity.FromContext(r.Context()).UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
