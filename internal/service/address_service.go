package service

import (
	"context"
	"strings"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type AddressStore interface {
	Save(ctx context.Context, userID string, in models.NewAddress) (*models.Address, error)
	List(ctx context.Context, userID string) ([]models.Address, error)
	Get(ctx context.Context, userID, addressID string) (*models.Address, error)
	Delete(ctx context.Context, userID, addressID string) error
}

type AddressService struct {
	addresses AddressStore
}

func NewAddressService(addresses AddressStore) *AddressService {
	return &AddressService{addresses: addresses}
}

func (s *AddressService) Save(ctx context.Context, userID string, in models.NewAddress) (*models.Address, error) {
	if userID == "" {
		return nil, ErrNotLoggedIn
	}
	in.FullName = strings.TrimSpace(in.FullName)
	in.Area = strings.TrimSpace(in.Area)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	if in.FullName == "" || in.Area == "" || in.City == "" || in.State == "" {
		return nil, ErrAddressFields
	}
	return s.addresses.Save(ctx, userID, in)
}

func (s *AddressService) List(ctx context.Context, userID string) ([]models.Address, error) {
	if userID == "" {
		return nil, ErrNotLoggedIn
	}
	return s.addresses.List(ctx, userID)
}

func (s *AddressService) Get(ctx context.Context, userID, addressID string) (*models.Address, error) {
	if userID == "" {
		return nil, ErrNotLoggedIn
	}
	a, err := s.addresses.Get(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAddressNotFound
	}
	return a, nil
}

func (s *AddressService) Delete(ctx context.Context, userID, addressID string) error {
	if userID == "" {
		return ErrNotLoggedIn
	}
	return s.addresses.Delete(ctx, userID, addressID)
}
