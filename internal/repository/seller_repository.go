package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
)

type SellerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (model.Seller, bool, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (model.Seller, bool, error)
	FindBySlug(ctx context.Context, slug string) (model.Seller, bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	//IDが無ければ作成、あれば更新
	Save(ctx context.Context, seller *model.Seller) error
	Approve(ctx context.Context, id uuid.UUID) error
}
