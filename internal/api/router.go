package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Cheertaboi/storefront-service/internal/api/handlers"
	"github.com/Cheertaboi/storefront-service/internal/api/middleware"
	"github.com/Cheertaboi/storefront-service/internal/service"
	"github.com/Cheertaboi/storefront-service/pkg/metrics"
)

// Deps are the services the HTTP layer is built from.
type Deps struct {
	Catalog   *service.CatalogService
	Carts     *service.CartService
	Addresses *service.AddressService
	Checkout  *service.CheckoutService
	Payments  *service.PaymentService

	Metrics        *metrics.ServerMetrics
	Gatherer       prometheus.Gatherer
	MaxUploadBytes int64
}

// NewRouter builds the HTTP router for the storefront-service
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.Recoverer, middleware.Logger)
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	r.Use(middleware.Identify)

	productHandler := handlers.NewProductHandler(d.Catalog, d.MaxUploadBytes)
	cartHandler := handlers.NewCartHandler(d.Carts)
	addressHandler := handlers.NewAddressHandler(d.Addresses)
	checkoutHandler := handlers.NewCheckoutHandler(d.Checkout, d.Payments)

	// Public catalog endpoints
	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.ListProducts)
		r.Get("/{id}", productHandler.GetProduct)
	})

	// Signed-in shopper endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items/{productID}", cartHandler.AddItem)
			r.Put("/items/{productID}", cartHandler.SetQuantity)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", addressHandler.ListAddresses)
			r.Post("/", addressHandler.CreateAddress)
			r.Delete("/{id}", addressHandler.DeleteAddress)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/orders", checkoutHandler.PlaceOrder)
			r.Get("/payment", checkoutHandler.BeginPayment)
			r.Post("/payment", checkoutHandler.SubmitPayment)
		})

		r.Post("/payment/card/inspect", checkoutHandler.InspectCard)
	})

	// Admin endpoints
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Post("/products", productHandler.CreateProduct)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(d.Gatherer))
	}

	return r
}
