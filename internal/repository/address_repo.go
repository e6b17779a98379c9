package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	errx "github.com/Cheertaboi/storefront-service/internal/core/error"
	"github.com/Cheertaboi/storefront-service/internal/docstore"
	"github.com/Cheertaboi/storefront-service/internal/models"
	logx "github.com/Cheertaboi/storefront-service/pkg/logger"
)

type AddressRepo struct {
	store docstore.Store
	now   func() time.Time
	newID func() string
}

func NewAddressRepo(store docstore.Store) *AddressRepo {
	return &AddressRepo{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func addressCollection(userID string) string {
	return docstore.Path("users", userID, "addresses")
}

// Save stores a new address and returns it with its assigned id.
func (r *AddressRepo) Save(ctx context.Context, userID string, in models.NewAddress) (*models.Address, error) {
	addr := models.Address{
		ID:        r.newID(),
		FullName:  in.FullName,
		Area:      in.Area,
		City:      in.City,
		State:     in.State,
		UserID:    userID,
		CreatedAt: r.now().UTC(),
	}
	if err := docstore.SetJSON(ctx, r.store, addressCollection(userID), addr.ID, addr); err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to save address")
		return nil, errx.WrapStore(err)
	}
	return &addr, nil
}

// List returns the user's addresses, oldest first.
func (r *AddressRepo) List(ctx context.Context, userID string) ([]models.Address, error) {
	docs, err := r.store.List(ctx, addressCollection(userID))
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("failed to list addresses")
		return nil, errx.WrapStore(err)
	}

	out := make([]models.Address, 0, len(docs))
	for _, d := range docs {
		var a models.Address
		if err := json.Unmarshal(d.Data, &a); err != nil {
			logx.Warn().Err(err).Str("addressID", d.ID).Msg("skipping undecodable address")
			continue
		}
		a.ID = d.ID
		a.UserID = userID
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Get returns nil, nil when the address does not exist.
func (r *AddressRepo) Get(ctx context.Context, userID, addressID string) (*models.Address, error) {
	var a models.Address
	err := docstore.GetJSON(ctx, r.store, addressCollection(userID), addressID, &a)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		logx.Error().Err(err).Str("userID", userID).Str("addressID", addressID).Msg("failed to load address")
		return nil, errx.WrapStore(err)
	}
	a.ID = addressID
	a.UserID = userID
	return &a, nil
}

func (r *AddressRepo) Delete(ctx context.Context, userID, addressID string) error {
	if err := r.store.Delete(ctx, addressCollection(userID), addressID); err != nil {
		logx.Error().Err(err).Str("userID", userID).Str("addressID", addressID).Msg("failed to delete address")
		return errx.WrapStore(err)
	}
	return nil
}
