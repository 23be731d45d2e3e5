package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
)

type AddressUsecase struct {
	addresses repo.AddressRepository
}

func NewAddressUsecase(addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

type AddressInput struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	City     string
	Country  string
	Zipcode  string
}

func (in AddressInput) apply(a *model.ShippingAddress) {
	a.FullName = strings.TrimSpace(in.FullName)
	a.Email = strings.TrimSpace(in.Email)
	a.Phone = strings.TrimSpace(in.Phone)
	a.Address = strings.TrimSpace(in.Address)
	a.City = strings.TrimSpace(in.City)
	a.Country = strings.TrimSpace(in.Country)
	a.Zipcode = strings.TrimSpace(in.Zipcode)
}

// 住所IDはUUID。解釈できなければ400
func parseAddressID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, errInvalid("invalid id")
	}
	return id, nil
}

func (u *AddressUsecase) List(ctx context.Context, p model.Principal) ([]model.ShippingAddress, error) {
	list, err := u.addresses.ListByUserID(ctx, p.UserID)
	if err != nil {
		return nil, dbError(err)
	}
	return list, nil
}

// Create は同じ内容の住所があればそれを返す（created=false）
func (u *AddressUsecase) Create(ctx context.Context, p model.Principal, in AddressInput) (model.ShippingAddress, bool, error) {
	a := model.ShippingAddress{UserID: p.UserID}
	in.apply(&a)

	existing, ok, err := u.addresses.FindMatching(ctx, a)
	if err != nil {
		return model.ShippingAddress{}, false, dbError(err)
	}
	if ok {
		return existing, false, nil
	}

	if err := u.addresses.Create(ctx, &a); err != nil {
		return model.ShippingAddress{}, false, dbError(err)
	}
	return a, true, nil
}

func (u *AddressUsecase) Get(ctx context.Context, p model.Principal, rawID string) (model.ShippingAddress, error) {
	id, err := parseAddressID(rawID)
	if err != nil {
		return model.ShippingAddress{}, err
	}
	a, ok, err := u.addresses.FindOwned(ctx, p.UserID, id)
	if err != nil {
		return model.ShippingAddress{}, dbError(err)
	}
	if !ok {
		return model.ShippingAddress{}, errNotFound("shipping address")
	}
	return a, nil
}

// Update は住所だけを変える。過去の注文のスナップショットは変わらない。
func (u *AddressUsecase) Update(ctx context.Context, p model.Principal, rawID string, in AddressInput) (model.ShippingAddress, error) {
	a, err := u.Get(ctx, p, rawID)
	if err != nil {
		return model.ShippingAddress{}, err
	}
	in.apply(&a)
	if err := u.addresses.Update(ctx, &a); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.ShippingAddress{}, errNotFound("shipping address")
		}
		return model.ShippingAddress{}, dbError(err)
	}
	return a, nil
}

func (u *AddressUsecase) Delete(ctx context.Context, p model.Principal, rawID string) error {
	id, err := parseAddressID(rawID)
	if err != nil {
		return err
	}
	if err := u.addresses.Delete(ctx, p.UserID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("shipping address")
		}
		return dbError(err)
	}
	return nil
}
