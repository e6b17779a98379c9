package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/concurrency"
	errx "github.com/Cheertaboi/storefront-service/internal/core/error"
	"github.com/Cheertaboi/storefront-service/internal/media"
	"github.com/Cheertaboi/storefront-service/internal/models"
	logx "github.com/Cheertaboi/storefront-service/pkg/logger"
)

type ProductStore interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, in models.NewProduct) (*models.Product, error)
}

// ProductCache is the read-through cache in front of ProductStore.
type ProductCache interface {
	ProductLookup
	Set(p models.Product)
}

// ProductForm holds the raw admin form values.
type ProductForm struct {
	Name        string
	Description string
	Category    string
	Price       string
	OfferPrice  string
}

const defaultCategory = "Clothing"

type CatalogService struct {
	products ProductStore
	cache    ProductCache
	uploader media.Uploader
}

func NewCatalogService(products ProductStore, cache ProductCache, uploader media.Uploader) *CatalogService {
	return &CatalogService{products: products, cache: cache, uploader: uploader}
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.cache.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Lookup serves the cart aggregator through the cache.
func (s *CatalogService) Lookup(ctx context.Context, id string) (*models.Product, error) {
	return s.cache.Lookup(ctx, id)
}

func parseProductForm(form ProductForm) (models.NewProduct, error) {
	in := models.NewProduct{
		Name:        strings.TrimSpace(form.Name),
		Description: strings.TrimSpace(form.Description),
		Category:    strings.TrimSpace(form.Category),
	}
	if in.Name == "" || in.Description == "" {
		return in, ErrProductFields
	}
	if in.Category == "" {
		in.Category = defaultCategory
	}
	if !models.IsCategory(in.Category) {
		return in, ErrBadCategory
	}

	price, err := decimal.NewFromString(strings.TrimSpace(form.Price))
	if err != nil || !price.IsPositive() {
		return in, ErrBadPrice
	}
	in.Price = price

	offer := strings.TrimSpace(form.OfferPrice)
	if offer == "" {
		in.OfferPrice = price
	} else {
		op, err := decimal.NewFromString(offer)
		if err != nil || op.IsNegative() {
			return in, ErrBadOfferPrice
		}
		in.OfferPrice = op
	}
	return in, nil
}

// CreateProduct validates the form, uploads every image to the CDN and only
// then writes the product. A failed upload aborts the whole creation.
func (s *CatalogService) CreateProduct(ctx context.Context, adminID string, form ProductForm, images []media.Image) (*models.Product, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if len(images) > models.MaxProductImages {
		return nil, ErrTooManyImages
	}
	in, err := parseProductForm(form)
	if err != nil {
		return nil, err
	}

	urls := make([]string, len(images))
	err = concurrency.ForEach(ctx, len(images), len(images), func(ctx context.Context, i int) error {
		url, err := s.uploader.Upload(ctx, images[i])
		if err != nil {
			return fmt.Errorf("upload image %d: %w", i, err)
		}
		urls[i] = url
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Str("adminID", adminID).Msg("product image upload failed")
		return nil, errx.WrapCDN(err)
	}

	in.Images = urls
	in.CreatedBy = adminID

	p, err := s.products.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.cache.Set(*p)
	logx.Info().Str("productID", p.ID).Str("adminID", adminID).Int("images", len(urls)).Msg("product created")
	return p, nil
}
