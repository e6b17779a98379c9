package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Cheertaboi/storefront-service/internal/identity"
	"github.com/Cheertaboi/storefront-service/internal/media"
	"github.com/Cheertaboi/storefront-service/internal/service"
)

const imagesField = "images"

type ProductHandler struct {
	catalog        *service.CatalogService
	maxUploadBytes int64
}

func NewProductHandler(catalog *service.CatalogService, maxUploadBytes int64) *ProductHandler {
	return &ProductHandler{catalog: catalog, maxUploadBytes: maxUploadBytes}
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProduct handles POST /admin/products (multipart form, files under "images")
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "upload_too_large", Message: "Upload exceeds the allowed size"})
			return
		}
		invalidBody(w)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	form := service.ProductForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Price:       r.FormValue("price"),
		OfferPrice:  r.FormValue("offer_price"),
	}

	headers := r.MultipartForm.File[imagesField]
	images := make([]media.Image, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			invalidBody(w)
			return
		}
		defer func(f multipart.File) { _ = f.Close() }(f)
		images = append(images, media.Image{Filename: fh.Filename, Body: f})
	}

	p, err := h.catalog.CreateProduct(r.Context(), identity.FromContext(r.Context()).UserID, form, images)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product added successfully",
		"product": p,
	})
}
