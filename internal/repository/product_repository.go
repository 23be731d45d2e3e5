package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 一覧検索の条件。nilの項目は絞り込まない。
type ProductListQuery struct {
	Page       int
	PageSize   int
	Name       string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	InStock    *int
	CategoryID *uuid.UUID
	SellerID   *uuid.UUID
}

type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindBySlug(ctx context.Context, slug string) (model.Product, bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
