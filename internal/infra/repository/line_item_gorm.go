package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type lineItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewLineItemGormRepository(db *gorm.DB) repo.LineItemRepository {
	return &lineItemGormRepository{db: db}
}

// 商品・出品者・カテゴリを一緒に読む
func withProduct(db *gorm.DB) *gorm.DB {
	return db.Preload("Product.Seller").Preload("Product.Category")
}

func (r *lineItemGormRepository) ListCart(ctx context.Context, userID uuid.UUID) ([]model.LineItem, error) {
	var items []model.LineItem
	err := withProduct(r.db.WithContext(ctx)).
		Where("user_id = ? AND order_id IS NULL", userID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *lineItemGormRepository) CountCart(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.LineItem{}).
		Where("user_id = ? AND order_id IS NULL", userID).
		Count(&n).Error
	return n, err
}

// SELECT ... FOR UPDATE で同じ(user, product)への同時upsertを直列にする
func (r *lineItemGormRepository) FindCartItemForUpdate(ctx context.Context, userID, productID uuid.UUID) (model.LineItem, bool, error) {
	var it model.LineItem
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND product_id = ? AND order_id IS NULL", userID, productID).
		First(&it).Error
	ok, err := found(err)
	return it, ok, err
}

// 同時upsertで一意制約に当たってもtxを壊さないようSAVEPOINTで包む
func (r *lineItemGormRepository) Create(ctx context.Context, item *model.LineItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(item).Error
	})
	return createErr(err)
}

func (r *lineItemGormRepository) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	res := r.db.WithContext(ctx).
		Model(&model.LineItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	return affected(res)
}

func (r *lineItemGormRepository) Delete(ctx context.Context, itemID uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", itemID).Delete(&model.LineItem{}))
}

// 1回のUPDATEでカートの明細を注文へ付け替える
func (r *lineItemGormRepository) AssignCartToOrder(ctx context.Context, userID, orderID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.LineItem{}).
		Where("user_id = ? AND order_id IS NULL", userID).
		Update("order_id", orderID)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *lineItemGormRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.LineItem, error) {
	var items []model.LineItem
	err := withProduct(r.db.WithContext(ctx)).
		Where("order_id = ?", orderID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *lineItemGormRepository) ListByOrderForSeller(ctx context.Context, orderID, sellerID uuid.UUID) ([]model.LineItem, error) {
	var items []model.LineItem
	err := withProduct(r.db.WithContext(ctx)).
		Where("order_id = ? AND product_id IN (?)", orderID, sellerProductIDs(r.db, sellerID)).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// 出品者の商品IDのサブクエリ
func sellerProductIDs(db *gorm.DB, sellerID uuid.UUID) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&model.Product{}).
		Select("id").
		Where("seller_id = ?", sellerID)
}
