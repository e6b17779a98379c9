package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errx "github.com/Cheertaboi/storefront-service/internal/core/error"
	"github.com/Cheertaboi/storefront-service/internal/docstore"
	"github.com/Cheertaboi/storefront-service/internal/models"
	logx "github.com/Cheertaboi/storefront-service/pkg/logger"
)

const productsCollection = "products"

type productDoc struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	OfferPrice  decimal.Decimal `json:"offer_price"`
	Images      []string        `json:"images"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (d productDoc) toModel(id string) (*models.Product, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("product %s: missing name", id)
	}
	if d.OfferPrice.IsNegative() || d.Price.IsNegative() {
		return nil, fmt.Errorf("product %s: negative price", id)
	}
	return &models.Product{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		OfferPrice:  d.OfferPrice,
		Images:      d.Images,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
	}, nil
}

type ProductRepo struct {
	store docstore.Store
	now   func() time.Time
	newID func() string
}

func NewProductRepo(store docstore.Store) *ProductRepo {
	return &ProductRepo{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Get returns nil, nil when the product does not exist or its document is
// unusable, so carts treat it like a deleted product.
func (r *ProductRepo) Get(ctx context.Context, id string) (*models.Product, error) {
	data, err := r.store.Get(ctx, productsCollection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		logx.Error().Err(err).Str("productID", id).Msg("failed to load product")
		return nil, errx.WrapStore(err)
	}

	var doc productDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		logx.Warn().Err(err).Str("productID", id).Msg("ignoring undecodable product")
		return nil, nil
	}
	p, err := doc.toModel(id)
	if err != nil {
		logx.Warn().Err(err).Msg("ignoring invalid product")
		return nil, nil
	}
	return p, nil
}

// List returns every product, newest first.
func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	docs, err := r.store.List(ctx, productsCollection)
	if err != nil {
		logx.Error().Err(err).Msg("failed to list products")
		return nil, errx.WrapStore(err)
	}

	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		var doc productDoc
		if err := json.Unmarshal(d.Data, &doc); err != nil {
			logx.Warn().Err(err).Str("productID", d.ID).Msg("skipping undecodable product")
			continue
		}
		p, err := doc.toModel(d.ID)
		if err != nil {
			logx.Warn().Err(err).Msg("skipping invalid product")
			continue
		}
		products = append(products, *p)
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (r *ProductRepo) Create(ctx context.Context, in models.NewProduct) (*models.Product, error) {
	id := r.newID()
	doc := productDoc{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		OfferPrice:  in.OfferPrice,
		Images:      in.Images,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   r.now().UTC(),
	}

	if err := docstore.SetJSON(ctx, r.store, productsCollection, id, doc); err != nil {
		logx.Error().Err(err).Str("productID", id).Msg("failed to create product")
		return nil, errx.WrapStore(err)
	}
	return doc.toModel(id)
}
