package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type categoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) repo.CategoryRepository {
	return &categoryGormRepository{db: db}
}

func (r *categoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var cs []model.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&cs).Error; err != nil {
		return nil, err
	}
	return cs, nil
}

func (r *categoryGormRepository) FindBySlug(ctx context.Context, slug string) (model.Category, bool, error) {
	var c model.Category
	ok, err := found(r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error)
	return c, ok, err
}

func (r *categoryGormRepository) Create(ctx context.Context, c *model.Category) error {
	return createErr(r.db.WithContext(ctx).Create(c).Error)
}
