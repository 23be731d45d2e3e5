package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SellerUsecase は出品者向けの操作（申請・商品管理・受注）。
type SellerUsecase struct {
	tx         repo.TransactionManager
	sellers    repo.SellerRepository
	categories repo.CategoryRepository
	products   repo.ProductRepository
	orders     repo.OrderRepository
	lineItems  repo.LineItemRepository
	cache      ProductCache
	log        Logger
}

func NewSellerUsecase(
	tx repo.TransactionManager,
	sellers repo.SellerRepository,
	categories repo.CategoryRepository,
	products repo.ProductRepository,
	orders repo.OrderRepository,
	lineItems repo.LineItemRepository,
	cache ProductCache,
	log Logger,
) *SellerUsecase {
	return &SellerUsecase{
		tx:         tx,
		sellers:    sellers,
		categories: categories,
		products:   products,
		orders:     orders,
		lineItems:  lineItems,
		cache:      cache,
		log:        log,
	}
}

type SellerApplyInput struct {
	BusinessName        string
	BusinessDescription string
	BusinessAddress     string
	PhoneNumber         string
	WebsiteURL          string
	City                string
	PostalCode          string
}

type ProductInput struct {
	Name         string
	Description  string
	Price        string
	InStock      *int // nilならdefaultInStock
	CategorySlug string
}

const defaultInStock = 5

// nilの項目は変更しない
type ProductUpdateInput struct {
	Name         *string
	Description  *string
	Price        *string
	InStock      *int
	CategorySlug *string
}

// 承認済み出品者だけ通す
func requireSeller(p model.Principal) (uuid.UUID, error) {
	if !p.Can(model.CapSell) || p.SellerID == nil {
		return uuid.Nil, errForbidden("approved seller only")
	}
	return *p.SellerID, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, errInvalid("invalid price")
	}
	return d.Round(2), nil
}

// Apply は出品者プロフィールを作成/更新する。承認はスタッフが行う。
func (u *SellerUsecase) Apply(ctx context.Context, p model.Principal, in SellerApplyInput) (model.Seller, error) {
	name := strings.TrimSpace(in.BusinessName)
	if name == "" {
		return model.Seller{}, errInvalid("business_name is required")
	}

	var out model.Seller
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, ok, err := r.Sellers().FindByUserID(ctx, p.UserID)
		if err != nil {
			return dbError(err)
		}

		s.BusinessName = name
		s.BusinessDescription = in.BusinessDescription
		s.BusinessAddress = in.BusinessAddress
		s.PhoneNumber = in.PhoneNumber
		s.WebsiteURL = in.WebsiteURL
		s.City = in.City
		s.PostalCode = in.PostalCode

		if ok {
			if err := r.Sellers().Save(ctx, &s); err != nil {
				return dbError(err)
			}
		} else {
			s.UserID = p.UserID
			err := createWithSlug(ctx, name, r.Sellers().SlugExists, func(slug string) error {
				s.ID = uuid.Nil
				s.Slug = slug
				return r.Sellers().Save(ctx, &s)
			})
			if err != nil {
				return err
			}
		}
		if err := r.Users().SetAccountType(ctx, p.UserID, model.AccountTypeSeller); err != nil {
			return dbError(err)
		}
		out = s
		return nil
	})
	if err != nil {
		return model.Seller{}, err
	}
	return out, nil
}

func (u *SellerUsecase) ListProducts(ctx context.Context, p model.Principal, pageRaw, sizeRaw string) (Page[model.Product], error) {
	sellerID, err := requireSeller(p)
	if err != nil {
		return Page[model.Product]{}, err
	}
	page, size, err := parsePaging(pageRaw, sizeRaw)
	if err != nil {
		return Page[model.Product]{}, err
	}

	items, total, err := u.products.List(ctx, repo.ProductListQuery{Page: page, PageSize: size, SellerID: &sellerID})
	if err != nil {
		return Page[model.Product]{}, dbError(err)
	}
	return newPage(items, total, page, size)
}

func (u *SellerUsecase) CreateProduct(ctx context.Context, p model.Principal, in ProductInput) (model.Product, error) {
	sellerID, err := requireSeller(p)
	if err != nil {
		return model.Product{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, errInvalid("name is required")
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return model.Product{}, err
	}
	stock := defaultInStock
	if in.InStock != nil {
		if *in.InStock < 0 {
			return model.Product{}, errInvalid("invalid in_stock")
		}
		stock = *in.InStock
	}

	cat, ok, err := u.categories.FindBySlug(ctx, strings.TrimSpace(in.CategorySlug))
	if err != nil {
		return model.Product{}, dbError(err)
	}
	if !ok {
		return model.Product{}, errNotFound("category")
	}

	prod := model.Product{
		SellerID:     sellerID,
		CategoryID:   cat.ID,
		Name:         name,
		Description:  in.Description,
		PriceCurrent: price,
		InStock:      stock,
	}
	err = createWithSlug(ctx, name, u.products.SlugExists, func(slug string) error {
		prod.ID = uuid.Nil
		prod.Slug = slug
		return u.products.Create(ctx, &prod)
	})
	if err != nil {
		return model.Product{}, err
	}
	prod.Category = &cat
	return prod, nil
}

// 自分の商品を探す。無ければ404、他人のものなら403
func (u *SellerUsecase) ownedProduct(ctx context.Context, sellerID uuid.UUID, slug string) (model.Product, error) {
	prod, ok, err := u.products.FindBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return model.Product{}, dbError(err)
	}
	if !ok {
		return model.Product{}, errNotFound("product")
	}
	if prod.SellerID != sellerID {
		return model.Product{}, errForbidden("not your product")
	}
	return prod, nil
}

// UpdateProduct は価格が変わったとき、直前の価格をprice_oldに残す
func (u *SellerUsecase) UpdateProduct(ctx context.Context, p model.Principal, slug string, in ProductUpdateInput) (model.Product, error) {
	sellerID, err := requireSeller(p)
	if err != nil {
		return model.Product{}, err
	}
	prod, err := u.ownedProduct(ctx, sellerID, slug)
	if err != nil {
		return model.Product{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return model.Product{}, errInvalid("name is required")
		}
		prod.Name = name
	}
	if in.Description != nil {
		prod.Description = *in.Description
	}
	if in.InStock != nil {
		if *in.InStock < 0 {
			return model.Product{}, errInvalid("invalid in_stock")
		}
		prod.InStock = *in.InStock
	}
	if in.Price != nil {
		price, err := parsePrice(*in.Price)
		if err != nil {
			return model.Product{}, err
		}
		if !price.Equal(prod.PriceCurrent) {
			prod.PriceOld = decimal.NewNullDecimal(prod.PriceCurrent)
			prod.PriceCurrent = price
		}
	}
	if in.CategorySlug != nil {
		cat, ok, err := u.categories.FindBySlug(ctx, strings.TrimSpace(*in.CategorySlug))
		if err != nil {
			return model.Product{}, dbError(err)
		}
		if !ok {
			return model.Product{}, errNotFound("category")
		}
		prod.CategoryID = cat.ID
		prod.Category = &cat
	}

	if err := u.products.Update(ctx, &prod); err != nil {
		return model.Product{}, dbError(err)
	}
	u.invalidate(ctx, prod.Slug)
	return prod, nil
}

func (u *SellerUsecase) DeleteProduct(ctx context.Context, p model.Principal, slug string) error {
	sellerID, err := requireSeller(p)
	if err != nil {
		return err
	}
	prod, err := u.ownedProduct(ctx, sellerID, slug)
	if err != nil {
		return err
	}
	if err := u.products.Delete(ctx, prod.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("product")
		}
		return dbError(err)
	}
	u.invalidate(ctx, prod.Slug)
	return nil
}

func (u *SellerUsecase) invalidate(ctx context.Context, slug string) {
	if err := u.cache.Invalidate(ctx, slug); err != nil {
		u.log.Warnf("invalidate product cache slug=%s: %v", slug, err)
	}
}

// Orders は自分の商品を含む注文。明細は自分の分だけ。
func (u *SellerUsecase) Orders(ctx context.Context, p model.Principal) ([]OrderOutput, error) {
	sellerID, err := requireSeller(p)
	if err != nil {
		return nil, err
	}
	orders, err := u.orders.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, dbError(err)
	}
	return toOrderOutputs(orders), nil
}

// OrderItems は注文のうち自分の商品の明細だけ返す
func (u *SellerUsecase) OrderItems(ctx context.Context, p model.Principal, txRef string) ([]LineItemOutput, error) {
	sellerID, err := requireSeller(p)
	if err != nil {
		return nil, err
	}
	o, ok, err := u.orders.FindByTxRef(ctx, strings.TrimSpace(txRef))
	if err != nil {
		return nil, dbError(err)
	}
	if !ok {
		return nil, errNotFound("order")
	}

	items, err := u.lineItems.ListByOrderForSeller(ctx, o.ID, sellerID)
	if err != nil {
		return nil, dbError(err)
	}
	//自分の商品が無い注文は見えない
	if len(items) == 0 {
		return nil, errNotFound("order")
	}
	return toLineItemOutputs(items), nil
}
