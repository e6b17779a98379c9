package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/storefront-service/internal/concurrency"
	"github.com/Cheertaboi/storefront-service/internal/models"
	logx "github.com/Cheertaboi/storefront-service/pkg/logger"
)

// CartStore is the per-user product -> quantity store.
type CartStore interface {
	Add(ctx context.Context, userID, productID string) error
	SetQuantity(ctx context.Context, userID, productID string, qty int) error
	Remove(ctx context.Context, userID, productID string) error
	GetAll(ctx context.Context, userID string) (map[string]int, error)
}

// ProductLookup resolves a product id; a nil product with a nil error means
// the product no longer exists.
type ProductLookup interface {
	Lookup(ctx context.Context, id string) (*models.Product, error)
}

const defaultLookupWorkers = 4

// AggregateCart joins quantities against the catalog. Entries whose product
// no longer resolves are reported in StaleItems and left out of Count and
// Amount. Items are ordered by product id.
func AggregateCart(ctx context.Context, quantities map[string]int, lookup ProductLookup, workers int) (models.CartSummary, error) {
	ids := make([]string, 0, len(quantities))
	for id, q := range quantities {
		if q > 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	products := make([]*models.Product, len(ids))
	err := concurrency.ForEach(ctx, workers, len(ids), func(ctx context.Context, i int) error {
		p, err := lookup.Lookup(ctx, ids[i])
		if err != nil {
			return fmt.Errorf("lookup product %s: %w", ids[i], err)
		}
		products[i] = p
		return nil
	})
	if err != nil {
		return models.CartSummary{}, err
	}

	summary := models.CartSummary{
		Items:      []models.LineItem{},
		StaleItems: []models.StaleItem{},
		Amount:     decimal.Zero,
	}
	for i, id := range ids {
		q := quantities[id]
		p := products[i]
		if p == nil {
			summary.StaleItems = append(summary.StaleItems, models.StaleItem{ProductID: id, Quantity: q})
			continue
		}
		line := p.OfferPrice.Mul(decimal.NewFromInt(int64(q)))
		summary.Items = append(summary.Items, models.LineItem{
			Product:   *p,
			Quantity:  q,
			LineTotal: line,
		})
		summary.Count += q
		summary.Amount = summary.Amount.Add(line)
	}
	return summary, nil
}

type CartService struct {
	carts    CartStore
	products ProductLookup
	workers  int
}

func NewCartService(carts CartStore, products ProductLookup, workers int) *CartService {
	if workers < 1 {
		workers = defaultLookupWorkers
	}
	return &CartService{carts: carts, products: products, workers: workers}
}

// Session returns the cart of one user. Build one per request; it is not
// meant to be shared between users or goroutines.
func (s *CartService) Session(userID string) *CartSession {
	return &CartSession{userID: userID, svc: s}
}

// CartSession exposes the cart operations of a single user and remembers the
// summary produced by the last refresh.
type CartSession struct {
	userID  string
	svc     *CartService
	summary models.CartSummary
}

func (c *CartSession) Refresh(ctx context.Context) (models.CartSummary, error) {
	if c.userID == "" {
		return models.CartSummary{}, ErrNotLoggedIn
	}
	quantities, err := c.svc.carts.GetAll(ctx, c.userID)
	if err != nil {
		return models.CartSummary{}, err
	}
	summary, err := AggregateCart(ctx, quantities, c.svc.products, c.svc.workers)
	if err != nil {
		return models.CartSummary{}, err
	}
	if len(summary.StaleItems) > 0 {
		logx.Warn().Str("userID", c.userID).Int("stale", len(summary.StaleItems)).Msg("cart references missing products")
	}
	c.summary = summary
	return summary, nil
}

// Add increments productID by one. Unknown products are rejected.
func (c *CartSession) Add(ctx context.Context, productID string) (models.CartSummary, error) {
	if c.userID == "" {
		return models.CartSummary{}, ErrNotLoggedIn
	}
	p, err := c.svc.products.Lookup(ctx, productID)
	if err != nil {
		return models.CartSummary{}, err
	}
	if p == nil {
		return models.CartSummary{}, ErrProductNotFound
	}
	if err := c.svc.carts.Add(ctx, c.userID, productID); err != nil {
		return models.CartSummary{}, err
	}
	return c.Refresh(ctx)
}

// SetQuantity overwrites the quantity; qty <= 0 removes the item.
func (c *CartSession) SetQuantity(ctx context.Context, productID string, qty int) (models.CartSummary, error) {
	if c.userID == "" {
		return models.CartSummary{}, ErrNotLoggedIn
	}
	if err := c.svc.carts.SetQuantity(ctx, c.userID, productID, qty); err != nil {
		return models.CartSummary{}, err
	}
	return c.Refresh(ctx)
}

func (c *CartSession) Remove(ctx context.Context, productID string) (models.CartSummary, error) {
	if c.userID == "" {
		return models.CartSummary{}, ErrNotLoggedIn
	}
	if err := c.svc.carts.Remove(ctx, c.userID, productID); err != nil {
		return models.CartSummary{}, err
	}
	return c.Refresh(ctx)
}

// Count is the item count of the last refresh.
func (c *CartSession) Count() int {
	return c.summary.Count
}

func (c *CartSession) Summary() models.CartSummary {
	return c.summary
}
