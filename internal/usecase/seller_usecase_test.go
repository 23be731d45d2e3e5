package usecase

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) sellerUsecase(cache ProductCache) *SellerUsecase {
	return NewSellerUsecase(e.tx, e.sellers, e.categories, e.products, e.orders, e.lineItems, cache, &recordLogger{})
}

// カートに入れてcheckoutまで
func (e *testEnv) placeOrder(t *testing.T, buyer model.Principal, qty map[string]int) OrderOutput {
	t.Helper()
	ctx := context.Background()
	cart := e.cartUsecase()
	for slug, n := range qty {
		_, err := cart.Upsert(ctx, buyer, UpsertCartInput{Slug: slug, Quantity: n})
		require.NoError(t, err)
	}
	addr := e.address(t, buyer, "Lagos")
	out, err := e.orderUsecase(noopPublisher{}, &recordLogger{}).Checkout(ctx, buyer, CheckoutInput{ShippingID: addr.ID.String()})
	require.NoError(t, err)
	return out
}

func TestSellerUsecase_OrdersShowOnlyOwnItems(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	mugs := e.seller(t, "mugs", true)
	cups := e.seller(t, "cups", true)
	e.product(t, mugs, "red-mug", "12.50")
	e.product(t, cups, "blue-cup", "10.00")
	buyer := e.buyer(t, "buyer@example.com")

	mixed := e.placeOrder(t, buyer, map[string]int{"red-mug": 1, "blue-cup": 2})
	cupsOnly := e.placeOrder(t, buyer, map[string]int{"blue-cup": 1})

	uc := e.sellerUsecase(noopCache{})

	orders, err := uc.Orders(ctx, mugs)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, mixed.TxRef, orders[0].TxRef)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "red-mug", orders[0].Items[0].Product.Slug)

	orders, err = uc.Orders(ctx, cups)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	items, err := uc.OrderItems(ctx, mugs, mixed.TxRef)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	_, err = uc.OrderItems(ctx, mugs, cupsOnly.TxRef)
	assertStatus(t, err, http.StatusNotFound)

	_, err = uc.OrderItems(ctx, mugs, "NOPE")
	assertStatus(t, err, http.StatusNotFound)
}

func TestSellerUsecase_RequiresApprovedSeller(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	pending := e.seller(t, "pending", false)
	buyer := e.buyer(t, "buyer@example.com")
	uc := e.sellerUsecase(noopCache{})

	_, err := uc.Orders(ctx, pending)
	assertStatus(t, err, http.StatusForbidden)

	_, err = uc.CreateProduct(ctx, buyer, ProductInput{Name: "Mug", Price: "1", CategorySlug: "kitchen"})
	assertStatus(t, err, http.StatusForbidden)

	_, err = uc.ListProducts(ctx, pending, "", "")
	assertStatus(t, err, http.StatusForbidden)
}

func TestSellerUsecase_ApplyCreatesThenUpdates(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	buyer := e.buyer(t, "buyer@example.com")
	uc := e.sellerUsecase(noopCache{})

	s, err := uc.Apply(ctx, buyer, SellerApplyInput{BusinessName: "Ada's Mugs", City: "Lagos"})
	require.NoError(t, err)
	assert.Equal(t, "ada-s-mugs", s.Slug)
	assert.False(t, s.IsApproved)

	again, err := uc.Apply(ctx, buyer, SellerApplyInput{BusinessName: "Ada's Mugs", City: "Abuja"})
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
	assert.Equal(t, "Abuja", again.City)

	u, ok, err := e.users.FindByID(ctx, buyer.UserID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, model.AccountTypeSeller, u.AccountType)

	_, err = uc.Apply(ctx, buyer, SellerApplyInput{})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestSellerUsecase_ProductLifecycle(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	mugs := e.seller(t, "mugs", true)
	cups := e.seller(t, "cups", true)

	cache := new(MockProductCache)
	cache.On("Invalidate", mock.Anything, "red-mug").Return(nil)
	uc := e.sellerUsecase(cache)

	p, err := uc.CreateProduct(ctx, mugs, ProductInput{Name: "Red Mug", Price: "12.50", CategorySlug: "kitchen"})
	require.NoError(t, err)
	assert.Equal(t, "red-mug", p.Slug)
	assert.False(t, p.PriceOld.Valid)
	assert.Equal(t, defaultInStock, p.InStock)

	//同じ名前でもslugは重複しない
	dup, err := uc.CreateProduct(ctx, mugs, ProductInput{Name: "Red Mug", Price: "9", CategorySlug: "kitchen"})
	require.NoError(t, err)
	assert.NotEqual(t, p.Slug, dup.Slug)

	price := "15.00"
	updated, err := uc.UpdateProduct(ctx, mugs, "red-mug", ProductUpdateInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "15", updated.PriceCurrent.String())
	require.True(t, updated.PriceOld.Valid)
	assert.Equal(t, "12.5", updated.PriceOld.Decimal.String())

	stored, ok, err := e.products.FindBySlug(ctx, "red-mug")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "15", stored.PriceCurrent.String())
	assert.True(t, stored.PriceOld.Valid)

	_, err = uc.UpdateProduct(ctx, cups, "red-mug", ProductUpdateInput{Price: &price})
	assertStatus(t, err, http.StatusForbidden)

	_, err = uc.UpdateProduct(ctx, mugs, "missing", ProductUpdateInput{Price: &price})
	assertStatus(t, err, http.StatusNotFound)

	bad := "-1"
	_, err = uc.UpdateProduct(ctx, mugs, "red-mug", ProductUpdateInput{Price: &bad})
	assertStatus(t, err, http.StatusBadRequest)

	err = uc.DeleteProduct(ctx, cups, "red-mug")
	assertStatus(t, err, http.StatusForbidden)

	require.NoError(t, uc.DeleteProduct(ctx, mugs, "red-mug"))
	_, ok, err = e.products.FindBySlug(ctx, "red-mug")
	require.NoError(t, err)
	assert.False(t, ok)

	cache.AssertNumberOfCalls(t, "Invalidate", 2)
}

func TestSellerUsecase_CreateProductValidation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	mugs := e.seller(t, "mugs", true)
	uc := e.sellerUsecase(noopCache{})

	_, err := uc.CreateProduct(ctx, mugs, ProductInput{Name: "Mug", Price: "abc", CategorySlug: "kitchen"})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = uc.CreateProduct(ctx, mugs, ProductInput{Name: "Mug", Price: "3", CategorySlug: "garden"})
	assertStatus(t, err, http.StatusNotFound)

	_, err = uc.CreateProduct(ctx, mugs, ProductInput{Name: " ", Price: "3", CategorySlug: "kitchen"})
	assertStatus(t, err, http.StatusBadRequest)

	negative := -1
	_, err = uc.CreateProduct(ctx, mugs, ProductInput{Name: "Mug", Price: "3", InStock: &negative, CategorySlug: "kitchen"})
	assertStatus(t, err, http.StatusBadRequest)

	zero := 0
	p, err := uc.CreateProduct(ctx, mugs, ProductInput{Name: "Sold Out Mug", Price: "3", InStock: &zero, CategorySlug: "kitchen"})
	require.NoError(t, err)
	stored, ok, err := e.products.FindBySlug(ctx, p.Slug)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, stored.InStock)
}

func TestSellerUsecase_DeleteProductAlreadyCartedAndOrdered(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	mugs := e.seller(t, "mugs", true)
	e.product(t, mugs, "red-mug", "12.50")
	e.product(t, mugs, "blue-mug", "10.00")
	buyer := e.buyer(t, "buyer@example.com")

	order := e.placeOrder(t, buyer, map[string]int{"red-mug": 1, "blue-mug": 1})
	cart := e.cartUsecase()
	_, err := cart.Upsert(ctx, buyer, UpsertCartInput{Slug: "red-mug", Quantity: 2})
	require.NoError(t, err)
	_, err = cart.Upsert(ctx, buyer, UpsertCartInput{Slug: "blue-mug", Quantity: 1})
	require.NoError(t, err)

	uc := e.sellerUsecase(noopCache{})
	require.NoError(t, uc.DeleteProduct(ctx, mugs, "red-mug"))

	items, err := cart.List(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "blue-mug", items[0].Product.Slug)

	placed, err := e.orderUsecase(noopPublisher{}, &recordLogger{}).ItemsOf(ctx, buyer, order.TxRef)
	require.NoError(t, err)
	require.Len(t, placed, 1)
	assert.Equal(t, "blue-mug", placed[0].Product.Slug)
}

func TestSellerUsecase_CreateProductRetriesTakenSlug(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	mugs := e.seller(t, "mugs", true)
	e.product(t, mugs, "red-mug", "12.50")

	misses := 1
	products := staleProductSlugs{ProductRepository: e.products, misses: &misses}
	uc := NewSellerUsecase(e.tx, e.sellers, e.categories, products, e.orders, e.lineItems, noopCache{}, &recordLogger{})

	p, err := uc.CreateProduct(ctx, mugs, ProductInput{Name: "Red Mug", Price: "9", CategorySlug: "kitchen"})
	require.NoError(t, err)
	assert.Equal(t, 0, misses)
	assert.True(t, strings.HasPrefix(p.Slug, "red-mug-"), p.Slug)

	_, ok, err := e.products.FindBySlug(ctx, p.Slug)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSellerUsecase_ApplyRetriesTakenSlug(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.seller(t, "ada-s-mugs", false)
	buyer := e.buyer(t, "ada@example.com")

	misses := 1
	tx := wrapTx{inner: e.tx, wrap: func(r repo.TxRepos) repo.TxRepos {
		return txReposOverride{TxRepos: r, sellers: staleSellerSlugs{SellerRepository: r.Sellers(), misses: &misses}}
	}}
	uc := NewSellerUsecase(tx, e.sellers, e.categories, e.products, e.orders, e.lineItems, noopCache{}, &recordLogger{})

	s, err := uc.Apply(ctx, buyer, SellerApplyInput{BusinessName: "Ada's Mugs"})
	require.NoError(t, err)
	assert.Equal(t, 0, misses)
	assert.True(t, strings.HasPrefix(s.Slug, "ada-s-mugs-"), s.Slug)

	stored, ok, err := e.sellers.FindByUserID(ctx, buyer.UserID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, s.Slug, stored.Slug)
}
