package repository

import (
	"context"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) repo.ProductRepository {
	return &productGormRepository{db: db}
}

// 絞り込み/ページング付きで返す。新しい順。
func (r *productGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// nameの部分一致（大文字小文字を区別しない）
	if name := strings.TrimSpace(q.Name); name != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("price_current >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price_current <= ?", *q.MaxPrice)
	}

	//在庫数がこれ以上
	if q.InStock != nil {
		tx = tx.Where("in_stock >= ?", *q.InStock)
	}

	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}
	if q.SellerID != nil {
		tx = tx.Where("seller_id = ?", *q.SellerID)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	offset := (q.Page - 1) * q.PageSize
	err := tx.Preload("Seller").Preload("Category").
		Order("created_at desc").
		Offset(offset).Limit(q.PageSize).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

func (r *productGormRepository) FindBySlug(ctx context.Context, slug string) (model.Product, bool, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Seller").Preload("Category").
		Where("slug = ?", slug).
		First(&p).Error
	ok, err := found(err)
	return p, ok, err
}

func (r *productGormRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *productGormRepository) Create(ctx context.Context, p *model.Product) error {
	return createErr(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

// 出品者・カテゴリは変えない
func (r *productGormRepository) Update(ctx context.Context, p *model.Product) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":          p.Name,
			"description":   p.Description,
			"price_old":     p.PriceOld,
			"price_current": p.PriceCurrent,
			"in_stock":      p.InStock,
			"category_id":   p.CategoryID,
		})
	return affected(res)
}

func (r *productGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{}))
}
