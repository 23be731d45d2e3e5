package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
)

// 購入明細の窓口。order_idがNULLの明細がカート。
type LineItemRepository interface {
	//カートの中身（商品・出品者・カテゴリ付き、新しい順）
	ListCart(ctx context.Context, userID uuid.UUID) ([]model.LineItem, error)
	CountCart(ctx context.Context, userID uuid.UUID) (int64, error)

	//(user, product)のカート明細を行ロック付きで探す
	FindCartItemForUpdate(ctx context.Context, userID, productID uuid.UUID) (model.LineItem, bool, error)

	Create(ctx context.Context, item *model.LineItem) error
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	Delete(ctx context.Context, itemID uuid.UUID) error

	//カートの明細をまとめて注文へ付け替え、件数を返す
	AssignCartToOrder(ctx context.Context, userID, orderID uuid.UUID) (int64, error)

	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.LineItem, error)
	//出品者の商品の明細だけ
	ListByOrderForSeller(ctx context.Context, orderID, sellerID uuid.UUID) ([]model.LineItem, error)
}
