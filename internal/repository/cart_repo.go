package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	errx "github.com/Cheertaboi/storefront-service/internal/core/error"
	"github.com/Cheertaboi/storefront-service/internal/docstore"
	logx "github.com/Cheertaboi/storefront-service/pkg/logger"
)

type cartDoc struct {
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// CartRepo stores one document per product under users/{userID}/cart.
// Concurrent writers race; the last write wins.
type CartRepo struct {
	store docstore.Store
	now   func() time.Time
}

func NewCartRepo(store docstore.Store) *CartRepo {
	return &CartRepo{store: store, now: time.Now}
}

func cartCollection(userID string) string {
	return docstore.Path("users", userID, "cart")
}

func (r *CartRepo) get(ctx context.Context, userID, productID string) (*cartDoc, error) {
	var doc cartDoc
	err := docstore.GetJSON(ctx, r.store, cartCollection(userID), productID, &doc)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// Add increments the quantity of productID, creating the entry at 1.
func (r *CartRepo) Add(ctx context.Context, userID, productID string) error {
	doc, err := r.get(ctx, userID, productID)
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Str("productID", productID).Msg("failed to read cart entry")
		return errx.WrapStore(err)
	}
	if doc == nil || doc.Quantity < 1 {
		doc = &cartDoc{AddedAt: r.now().UTC()}
	}
	doc.Quantity++

	if err := docstore.SetJSON(ctx, r.store, cartCollection(userID), productID, doc); err != nil {
		logx.Error().Err(err).Str("userID", userID).Str("productID", productID).Msg("failed to write cart entry")
		return errx.WrapStore(err)
	}
	return nil
}

// SetQuantity overwrites the quantity; qty <= 0 deletes the entry.
func (r *CartRepo) SetQuantity(ctx context.Context, userID, productID string, qty int) error {
	if qty <= 0 {
		return r.Remove(ctx, userID, productID)
	}

	doc, err := r.get(ctx, userID, productID)
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Str("productID", productID).Msg("failed to read cart entry")
		return errx.WrapStore(err)
	}
	if doc == nil {
		doc = &cartDoc{AddedAt: r.now().UTC()}
	}
	doc.Quantity = qty

	if err := docstore.SetJSON(ctx, r.store, cartCollection(userID), productID, doc); err != nil {
		logx.Error().Err(err).Str("userID", userID).Str("productID", productID).Msg("failed to write cart entry")
		return errx.WrapStore(err)
	}
	return nil
}

// Remove deletes the entry. Removing an absent entry is not an error.
func (r *CartRepo) Remove(ctx context.Context, userID, productID string) error {
	if err := r.store.Delete(ctx, cartCollection(userID), productID); err != nil {
		logx.Error().Err(err).Str("userID", userID).Str("productID", productID).Msg("failed to delete cart entry")
		return errx.WrapStore(err)
	}
	return nil
}

// GetAll returns productID -> quantity. Documents that do not decode to a
// positive quantity are skipped.
func (r *CartRepo) GetAll(ctx context.Context, userID string) (map[string]int, error) {
	docs, err := r.store.List(ctx, cartCollection(userID))
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to list cart")
		return nil, errx.WrapStore(err)
	}

	cart := make(map[string]int, len(docs))
	for _, d := range docs {
		var doc cartDoc
		if err := json.Unmarshal(d.Data, &doc); err != nil || doc.Quantity < 1 {
			logx.Warn().Str("userID", userID).Str("productID", d.ID).Msg("skipping malformed cart entry")
			continue
		}
		cart[d.ID] = doc.Quantity
	}
	return cart, nil
}
