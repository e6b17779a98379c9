package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Cheertaboi/storefront-service/internal/models"
	"github.com/Cheertaboi/storefront-service/internal/session"
	logx "github.com/Cheertaboi/storefront-service/pkg/logger"
)

// DraftKey is the session key the order draft is stored under.
const DraftKey = "orderDetails"

// Address selection kinds accepted by PlaceOrder.
const (
	SelectionNone    = "none"
	SelectionAddress = "address"
	SelectionNew     = "new"
)

type AddressChoice struct {
	Kind      string `json:"kind"`
	AddressID string `json:"address_id,omitempty"`
}

// BuildOrderDraft checks that the cart is not empty and that an address is
// selected, then computes tax and total.
func BuildOrderDraft(summary models.CartSummary, sel models.AddressSelection, now time.Time) (*models.OrderDraft, error) {
	if summary.Count <= 0 {
		return nil, ErrEmptyCart
	}
	addr, ok := sel.Address()
	if !ok {
		return nil, ErrNoAddress
	}

	tax := models.Tax(summary.Amount)
	return &models.OrderDraft{
		Address:    addr,
		CartCount:  summary.Count,
		CartAmount: summary.Amount,
		Tax:        tax,
		Total:      summary.Amount.Add(tax),
		CreatedAt:  now.UTC(),
	}, nil
}

type CheckoutService struct {
	carts     *CartService
	addresses *AddressService
	sessions  session.Store
	now       func() time.Time
}

func NewCheckoutService(carts *CartService, addresses *AddressService, sessions session.Store) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		addresses: addresses,
		sessions:  sessions,
		now:       time.Now,
	}
}

func (s *CheckoutService) resolveSelection(ctx context.Context, userID string, choice AddressChoice) (models.AddressSelection, error) {
	kind := choice.Kind
	if kind == "" && choice.AddressID != "" {
		kind = SelectionAddress
	}

	switch kind {
	case "", SelectionNone:
		return models.NoSelection(), nil
	case SelectionNew:
		return models.RequestingNew(), nil
	case SelectionAddress:
		if choice.AddressID == "" {
			return models.NoSelection(), nil
		}
		addr, err := s.addresses.Get(ctx, userID, choice.AddressID)
		if err != nil {
			return models.AddressSelection{}, err
		}
		return models.Selected(*addr), nil
	default:
		return models.AddressSelection{}, ErrBadSelection
	}
}

// PlaceOrder recomputes the cart server-side, builds the draft and stores it
// in the session for the payment step.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID, sessionID string, choice AddressChoice) (*models.OrderDraft, error) {
	cart := s.carts.Session(userID)
	summary, err := cart.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	if cart.Count() == 0 {
		return nil, ErrEmptyCart
	}

	sel, err := s.resolveSelection(ctx, userID, choice)
	if err != nil {
		return nil, err
	}

	draft, err := BuildOrderDraft(summary, sel, s.now())
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("encode order draft: %w", err)
	}
	if err := s.sessions.Put(ctx, draftSession(userID, sessionID), DraftKey, string(data)); err != nil {
		return nil, err
	}

	logx.Info().
		Str("userID", userID).
		Int("count", draft.CartCount).
		Str("total", draft.Total.String()).
		Msg("order draft created")
	return draft, nil
}

// draftSession scopes the draft to the user that placed it, so a session id
// presented by another user never resolves to it.
func draftSession(userID, sessionID string) string {
	return userID + ":" + sessionID
}

// LoadDraft returns ErrNoDraft when the session holds no usable draft for
// userID.
func (s *CheckoutService) LoadDraft(ctx context.Context, userID, sessionID string) (*models.OrderDraft, error) {
	if userID == "" {
		return nil, ErrNotLoggedIn
	}
	key := draftSession(userID, sessionID)
	raw, err := s.sessions.Get(ctx, key, DraftKey)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrNoDraft
		}
		return nil, err
	}

	var draft models.OrderDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		logx.Warn().Err(err).Msg("discarding undecodable order draft")
		_ = s.sessions.Delete(ctx, key, DraftKey)
		return nil, ErrNoDraft
	}
	if draft.Address.UserID != userID {
		logx.Warn().Str("userID", userID).Msg("order draft belongs to another user")
		return nil, ErrNoDraft
	}
	return &draft, nil
}

func (s *CheckoutService) DiscardDraft(ctx context.Context, userID, sessionID string) error {
	return s.sessions.Delete(ctx, draftSession(userID, sessionID), DraftKey)
}
