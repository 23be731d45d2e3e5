package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type addressGormRepository struct {
	db *gorm.DB
}

// DI
func NewAddressGormRepository(db *gorm.DB) repo.AddressRepository {
	return &addressGormRepository{db: db}
}

func (r *addressGormRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error) {
	var list []model.ShippingAddress
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// user_idも条件に入れるので他人の住所はfound=false
func (r *addressGormRepository) FindOwned(ctx context.Context, userID, addressID uuid.UUID) (model.ShippingAddress, bool, error) {
	var a model.ShippingAddress
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		First(&a).Error
	ok, err := found(err)
	return a, ok, err
}

func (r *addressGormRepository) FindMatching(ctx context.Context, a model.ShippingAddress) (model.ShippingAddress, bool, error) {
	var got model.ShippingAddress
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{
			"user_id":   a.UserID,
			"full_name": a.FullName,
			"email":     a.Email,
			"phone":     a.Phone,
			"address":   a.Address,
			"city":      a.City,
			"country":   a.Country,
			"zipcode":   a.Zipcode,
		}).
		First(&got).Error
	ok, err := found(err)
	return got, ok, err
}

func (r *addressGormRepository) Create(ctx context.Context, a *model.ShippingAddress) error {
	return createErr(r.db.WithContext(ctx).Create(a).Error)
}

func (r *addressGormRepository) Update(ctx context.Context, a *model.ShippingAddress) error {
	res := r.db.WithContext(ctx).
		Model(&model.ShippingAddress{}).
		Where("id = ? AND user_id = ?", a.ID, a.UserID).
		Updates(map[string]interface{}{
			"full_name": a.FullName,
			"email":     a.Email,
			"phone":     a.Phone,
			"address":   a.Address,
			"city":      a.City,
			"country":   a.Country,
			"zipcode":   a.Zipcode,
		})
	return affected(res)
}

func (r *addressGormRepository) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&model.ShippingAddress{})
	return affected(res)
}
