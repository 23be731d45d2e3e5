package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
)

// 配送先住所の窓口。他人の住所は「存在しない」として扱う。
type AddressRepository interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error)

	//そのユーザーの住所だけを探す
	FindOwned(ctx context.Context, userID, addressID uuid.UUID) (model.ShippingAddress, bool, error)

	//同じ内容の住所を探す（get or create用）
	FindMatching(ctx context.Context, a model.ShippingAddress) (model.ShippingAddress, bool, error)

	Create(ctx context.Context, a *model.ShippingAddress) error
	Update(ctx context.Context, a *model.ShippingAddress) error
	Delete(ctx context.Context, userID, addressID uuid.UUID) error
}
