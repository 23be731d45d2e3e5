package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sellerGormRepository struct {
	db *gorm.DB
}

func NewSellerGormRepository(db *gorm.DB) repo.SellerRepository {
	return &sellerGormRepository{db: db}
}

func (r *sellerGormRepository) FindByID(ctx context.Context, id uuid.UUID) (model.Seller, bool, error) {
	var s model.Seller
	ok, err := found(r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error)
	return s, ok, err
}

func (r *sellerGormRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (model.Seller, bool, error) {
	var s model.Seller
	ok, err := found(r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error)
	return s, ok, err
}

func (r *sellerGormRepository) FindBySlug(ctx context.Context, slug string) (model.Seller, bool, error) {
	var s model.Seller
	ok, err := found(r.db.WithContext(ctx).Where("slug = ?", slug).First(&s).Error)
	return s, ok, err
}

func (r *sellerGormRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Seller{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *sellerGormRepository) Save(ctx context.Context, s *model.Seller) error {
	if s.ID == uuid.Nil {
		//slug/user_idの一意制約違反でも外側のtxは生かす
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Omit(clause.Associations).Create(s).Error
		})
		return createErr(err)
	}
	return createErr(r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error)
}

func (r *sellerGormRepository) Approve(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.Seller{}).
		Where("id = ?", id).
		Update("is_approved", true)
	return affected(res)
}
