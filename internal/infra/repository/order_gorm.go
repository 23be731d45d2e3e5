package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) repo.OrderRepository {
	return &orderGormRepository{db: db}
}

// tx内から呼ばれるとSAVEPOINTになるので、一意制約違反でも外側のtxは生きている
func (r *orderGormRepository) Create(ctx context.Context, order *model.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(order).Error
	})
	return createErr(err)
}

func (r *orderGormRepository) FindByTxRef(ctx context.Context, txRef string) (model.Order, bool, error) {
	var o model.Order
	ok, err := found(r.db.WithContext(ctx).Where("tx_ref = ?", txRef).First(&o).Error)
	return o, ok, err
}

// スタッフの状態更新用。同じ注文への更新を直列にする
func (r *orderGormRepository) FindByTxRefForUpdate(ctx context.Context, txRef string) (model.Order, bool, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tx_ref = ?", txRef).
		First(&o).Error
	ok, err := found(err)
	return o, ok, err
}

func (r *orderGormRepository) FindWithItems(ctx context.Context, orderID uuid.UUID) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", newestFirst).
		Preload("Items.Product").
		Where("id = ?", orderID).
		First(&o).Error
	ok, err := found(err)
	if err != nil {
		return model.Order{}, err
	}
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *orderGormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", newestFirst).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// 出品者の商品を1つでも含む注文。IN (subquery) なので重複しない。
func (r *orderGormRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.Order, error) {
	orderIDs := r.db.Session(&gorm.Session{NewDB: true}).
		Model(&model.LineItem{}).
		Select("order_id").
		Where("order_id IS NOT NULL AND product_id IN (?)", sellerProductIDs(r.db, sellerID))

	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("product_id IN (?)", sellerProductIDs(r.db, sellerID)).Order("created_at desc")
		}).
		Preload("Items.Product").
		Where("id IN (?)", orderIDs).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderGormRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, s repo.OrderStatusUpdate) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"delivery_status": s.DeliveryStatus,
			"payment_status":  s.PaymentStatus,
			"date_delivered":  s.DateDelivered,
		})
	return affected(res)
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at desc")
}
