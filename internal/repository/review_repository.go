package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
)

type ReviewRepository interface {
	//同じユーザー・商品の2件目はErrDuplicate
	Create(ctx context.Context, r *model.Review) error
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (model.Review, bool, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Review, error)
	Update(ctx context.Context, r *model.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}
