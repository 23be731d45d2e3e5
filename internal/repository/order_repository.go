package repository

import (
	"context"
	"time"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
)

type OrderStatusUpdate struct {
	DeliveryStatus model.DeliveryStatus
	PaymentStatus  model.PaymentStatus
	DateDelivered  *time.Time
}

type OrderRepository interface {
	//tx_ref重複はErrDuplicate
	Create(ctx context.Context, order *model.Order) error
	FindByTxRef(ctx context.Context, txRef string) (model.Order, bool, error)
	//行ロック付き（tx内で使う）
	FindByTxRefForUpdate(ctx context.Context, txRef string) (model.Order, bool, error)
	//明細と商品を読み込んで返す
	FindWithItems(ctx context.Context, orderID uuid.UUID) (model.Order, error)

	//購入者の注文（新しい順）
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	//出品者の商品を含む注文（重複なし、新しい順）。明細は出品者の分だけ
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.Order, error)

	UpdateStatus(ctx context.Context, orderID uuid.UUID, s OrderStatusUpdate) error
}
