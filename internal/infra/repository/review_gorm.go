package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) repo.ReviewRepository {
	return &reviewGormRepository{db: db}
}

func (r *reviewGormRepository) Create(ctx context.Context, rv *model.Review) error {
	return createErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(rv).Error)
}

func (r *reviewGormRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (model.Review, bool, error) {
	var rv model.Review
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&rv).Error
	ok, err := found(err)
	return rv, ok, err
}

func (r *reviewGormRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	var list []model.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reviewGormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Review, error) {
	var list []model.Review
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reviewGormRepository) Update(ctx context.Context, rv *model.Review) error {
	res := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id = ?", rv.ID).
		Updates(map[string]interface{}{
			"rating": rv.Rating,
			"text":   rv.Text,
		})
	return affected(res)
}

func (r *reviewGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Review{}))
}
