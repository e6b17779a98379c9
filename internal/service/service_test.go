package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Cheertaboi/storefront-service/internal/cache"
	"github.com/Cheertaboi/storefront-service/internal/docstore"
	"github.com/Cheertaboi/storefront-service/internal/media"
	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/repository"
	"github.com/Cheertaboi/storefront-service/internal/session"
)

type mockLookup struct {
	mock.Mock
}

func (m *mockLookup) Lookup(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, img media.Image) (string, error) {
	args := m.Called(ctx, img.Filename)
	return args.String(0), args.Error(1)
}

var errStoreDown = errors.New("store down")

func product(id string, offer int64) *models.Product {
	return &models.Product{
		ID:         id,
		Name:       "Product " + id,
		Category:   "Watch",
		Price:      decimal.NewFromInt(offer + 10),
		OfferPrice: decimal.NewFromInt(offer),
	}
}

// storefront wires the services over in-memory stores.
type storefront struct {
	store     *docstore.MemoryStore
	sessions  *session.MemoryStore
	products  *repository.ProductRepo
	catalog   *CatalogService
	carts     *CartService
	addresses *AddressService
	checkout  *CheckoutService
	payments  *PaymentService
	uploader  *mockUploader
}

func newStorefront(t *testing.T) *storefront {
	t.Helper()
	sf := &storefront{
		store:    docstore.NewMemoryStore(),
		sessions: session.NewMemoryStore(time.Hour),
		uploader: new(mockUploader),
	}
	sf.products = repository.NewProductRepo(sf.store)
	sf.catalog = NewCatalogService(sf.products, cache.NewProductCache(sf.products), sf.uploader)
	sf.carts = NewCartService(repository.NewCartRepo(sf.store), sf.catalog, 2)
	sf.addresses = NewAddressService(repository.NewAddressRepo(sf.store))
	sf.checkout = NewCheckoutService(sf.carts, sf.addresses, sf.sessions)
	sf.payments = NewPaymentService(sf.checkout, nil, PaymentConfig{})
	sf.payments.now = func() time.Time { return time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC) }
	return sf
}

// seedProduct writes a product document directly, bypassing the CDN.
func (sf *storefront) seedProduct(t *testing.T, name string, offer int64) *models.Product {
	t.Helper()
	p, err := sf.products.Create(context.Background(), models.NewProduct{
		Name:       name,
		Category:   "Watch",
		Price:      decimal.NewFromInt(offer),
		OfferPrice: decimal.NewFromInt(offer),
	})
	require.NoError(t, err)
	return p
}
