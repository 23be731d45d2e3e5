package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

// ShopUsecase は公開カタログ（カテゴリ・商品・出品者別）。
type ShopUsecase struct {
	categories repo.CategoryRepository
	products   repo.ProductRepository
	sellers    repo.SellerRepository
	cache      ProductCache
	log        Logger
}

func NewShopUsecase(
	categories repo.CategoryRepository,
	products repo.ProductRepository,
	sellers repo.SellerRepository,
	cache ProductCache,
	log Logger,
) *ShopUsecase {
	return &ShopUsecase{
		categories: categories,
		products:   products,
		sellers:    sellers,
		cache:      cache,
		log:        log,
	}
}

// クエリ文字列のまま受け取る。空は未指定。
type ProductFilterInput struct {
	Page     string
	PageSize string
	Name     string
	MinPrice string
	MaxPrice string
	InStock  string
}

func (in ProductFilterInput) toQuery() (repo.ProductListQuery, error) {
	page, size, err := parsePaging(in.Page, in.PageSize)
	if err != nil {
		return repo.ProductListQuery{}, err
	}
	q := repo.ProductListQuery{Page: page, PageSize: size, Name: in.Name}

	if v := strings.TrimSpace(in.MinPrice); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return repo.ProductListQuery{}, errInvalid("invalid min_price")
		}
		q.MinPrice = &d
	}
	if v := strings.TrimSpace(in.MaxPrice); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return repo.ProductListQuery{}, errInvalid("invalid max_price")
		}
		q.MaxPrice = &d
	}
	if v := strings.TrimSpace(in.InStock); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return repo.ProductListQuery{}, errInvalid("invalid in_stock")
		}
		q.InStock = &n
	}
	return q, nil
}

func (u *ShopUsecase) Categories(ctx context.Context) ([]model.Category, error) {
	cs, err := u.categories.List(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	return cs, nil
}

// CreateCategory はスタッフのみ
func (u *ShopUsecase) CreateCategory(ctx context.Context, p model.Principal, name string) (model.Category, error) {
	if !p.Can(model.CapStaff) {
		return model.Category{}, errForbidden("staff only")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, errInvalid("name is required")
	}

	slug := slugify(name)
	if slug == "" {
		return model.Category{}, errInvalid("invalid name")
	}
	c := model.Category{Name: name, Slug: slug}
	if err := u.categories.Create(ctx, &c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Category{}, errConflict("category already exists")
		}
		return model.Category{}, dbError(err)
	}
	return c, nil
}

func (u *ShopUsecase) Products(ctx context.Context, in ProductFilterInput) (Page[model.Product], error) {
	q, err := in.toQuery()
	if err != nil {
		return Page[model.Product]{}, err
	}
	return u.list(ctx, q)
}

func (u *ShopUsecase) ProductsByCategory(ctx context.Context, slug string, in ProductFilterInput) (Page[model.Product], error) {
	q, err := in.toQuery()
	if err != nil {
		return Page[model.Product]{}, err
	}
	c, ok, err := u.categories.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return Page[model.Product]{}, dbError(err)
	}
	if !ok {
		return Page[model.Product]{}, errNotFound("category")
	}
	q.CategoryID = &c.ID
	return u.list(ctx, q)
}

func (u *ShopUsecase) ProductsBySeller(ctx context.Context, slug string, in ProductFilterInput) (Page[model.Product], error) {
	q, err := in.toQuery()
	if err != nil {
		return Page[model.Product]{}, err
	}
	s, ok, err := u.sellers.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return Page[model.Product]{}, dbError(err)
	}
	if !ok {
		return Page[model.Product]{}, errNotFound("seller")
	}
	q.SellerID = &s.ID
	return u.list(ctx, q)
}

func (u *ShopUsecase) list(ctx context.Context, q repo.ProductListQuery) (Page[model.Product], error) {
	items, total, err := u.products.List(ctx, q)
	if err != nil {
		return Page[model.Product]{}, dbError(err)
	}
	return newPage(items, total, q.Page, q.PageSize)
}

// ProductDetail はキャッシュにあればそれを返す
func (u *ShopUsecase) ProductDetail(ctx context.Context, slug string) (model.Product, error) {
	slug = strings.TrimSpace(slug)

	if p, ok, err := u.cache.Get(ctx, slug); err != nil {
		u.log.Warnf("product cache get slug=%s: %v", slug, err)
	} else if ok {
		return p, nil
	}

	p, ok, err := u.products.FindBySlug(ctx, slug)
	if err != nil {
		return model.Product{}, dbError(err)
	}
	if !ok {
		return model.Product{}, errNotFound("product")
	}

	if err := u.cache.Set(ctx, p); err != nil {
		u.log.Warnf("product cache set slug=%s: %v", slug, err)
	}
	return p, nil
}
