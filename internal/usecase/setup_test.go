package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"marketplace/internal/domain/model"
	"marketplace/internal/infra/db/dbtest"
	infrarepo "marketplace/internal/infra/repository"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// =====================
// SQLite上の実repoを束ねたテスト環境
// =====================

type testEnv struct {
	db         *gorm.DB
	tx         repo.TransactionManager
	users      repo.UserRepository
	sellers    repo.SellerRepository
	categories repo.CategoryRepository
	products   repo.ProductRepository
	addresses  repo.AddressRepository
	lineItems  repo.LineItemRepository
	orders     repo.OrderRepository
	reviews    repo.ReviewRepository
	auditLogs  repo.AuditLogRepository

	category model.Category
	seq      int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := dbtest.Open(t)
	e := &testEnv{
		db:         gdb,
		tx:         infrarepo.NewTxManagerGorm(gdb),
		users:      infrarepo.NewUserGormRepository(gdb),
		sellers:    infrarepo.NewSellerGormRepository(gdb),
		categories: infrarepo.NewCategoryGormRepository(gdb),
		products:   infrarepo.NewProductGormRepository(gdb),
		addresses:  infrarepo.NewAddressGormRepository(gdb),
		lineItems:  infrarepo.NewLineItemGormRepository(gdb),
		orders:     infrarepo.NewOrderGormRepository(gdb),
		reviews:    infrarepo.NewReviewGormRepository(gdb),
		auditLogs:  infrarepo.NewAuditLogGormRepository(gdb),
	}
	e.category = model.Category{Name: "Kitchen", Slug: "kitchen"}
	require.NoError(t, e.categories.Create(context.Background(), &e.category))
	return e
}

func (e *testEnv) newUser(t *testing.T, email string) model.User {
	t.Helper()
	u := model.User{Email: email, PasswordHash: "x", AccountType: model.AccountTypeBuyer, IsActive: true}
	require.NoError(t, e.users.Create(context.Background(), &u))
	return u
}

func (e *testEnv) buyer(t *testing.T, email string) model.Principal {
	t.Helper()
	u := e.newUser(t, email)
	return model.Principal{UserID: u.ID, Capabilities: model.CapBuy}
}

func (e *testEnv) staff(t *testing.T, email string) model.Principal {
	t.Helper()
	u := e.newUser(t, email)
	return model.Principal{UserID: u.ID, Capabilities: model.CapBuy | model.CapStaff}
}

func (e *testEnv) seller(t *testing.T, slug string, approved bool) model.Principal {
	t.Helper()
	u := e.newUser(t, slug+"@example.com")
	s := model.Seller{UserID: u.ID, BusinessName: slug, Slug: slug, IsApproved: approved}
	require.NoError(t, e.sellers.Save(context.Background(), &s))

	caps := model.CapBuy
	if approved {
		caps |= model.CapSell
	}
	return model.Principal{UserID: u.ID, Capabilities: caps, SellerID: &s.ID}
}

func (e *testEnv) product(t *testing.T, seller model.Principal, slug, price string) model.Product {
	t.Helper()
	p := model.Product{
		SellerID:     *seller.SellerID,
		CategoryID:   e.category.ID,
		Name:         slug,
		Slug:         slug,
		PriceCurrent: decimal.RequireFromString(price),
		InStock:      5,
	}
	require.NoError(t, e.products.Create(context.Background(), &p))
	return p
}

func (e *testEnv) address(t *testing.T, p model.Principal, city string) model.ShippingAddress {
	t.Helper()
	a := model.ShippingAddress{
		UserID:   p.UserID,
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Phone:    "+2348000000000",
		Address:  "1 Marina Road",
		City:     city,
		Country:  "NG",
		Zipcode:  "100001",
	}
	require.NoError(t, e.addresses.Create(context.Background(), &a))
	return a
}

func (e *testEnv) countOrders(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&model.Order{}).Count(&n).Error)
	return n
}

// 連番の参照コード
func (e *testEnv) refs() RefGenerator {
	return func() (string, error) {
		e.seq++
		return fmt.Sprintf("REF%09d", e.seq), nil
	}
}

func (e *testEnv) cartUsecase() *CartUsecase {
	return NewCartUsecase(e.tx, e.lineItems)
}

func (e *testEnv) orderUsecase(events OrderEventPublisher, log Logger) *OrderUsecase {
	return NewOrderUsecase(e.tx, e.orders, e.lineItems, e.refs(), events, log)
}

// =====================
// Mock / fake
// =====================

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderCreated(ctx context.Context, o model.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) Get(ctx context.Context, slug string) (model.Product, bool, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(model.Product), args.Bool(1), args.Error(2)
}

func (m *MockProductCache) Set(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductCache) Invalidate(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderCreated(context.Context, model.Order) error { return nil }

type noopCache struct{}

func (noopCache) Get(context.Context, string) (model.Product, bool, error) {
	return model.Product{}, false, nil
}
func (noopCache) Set(context.Context, model.Product) error { return nil }
func (noopCache) Invalidate(context.Context, string) error { return nil }

// Warnfを記録するだけ
type recordLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recordLogger) Warnf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, fmt.Sprintf(format, args...))
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	he, ok := AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, status, he.Status, he.Message)
}

// =====================
// 同時実行の再現用ラッパー
// =====================

// tx内のrepoを差し替える
type wrapTx struct {
	inner repo.TransactionManager
	wrap  func(repo.TxRepos) repo.TxRepos
}

func (w wrapTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return w.inner.WithinTx(ctx, func(r repo.TxRepos) error {
		return fn(w.wrap(r))
	})
}

// nilでないものだけ差し替える
type txReposOverride struct {
	repo.TxRepos
	lineItems repo.LineItemRepository
	sellers   repo.SellerRepository
	orders    repo.OrderRepository
}

func (o txReposOverride) LineItems() repo.LineItemRepository {
	if o.lineItems != nil {
		return o.lineItems
	}
	return o.TxRepos.LineItems()
}

func (o txReposOverride) Sellers() repo.SellerRepository {
	if o.sellers != nil {
		return o.sellers
	}
	return o.TxRepos.Sellers()
}

func (o txReposOverride) Orders() repo.OrderRepository {
	if o.orders != nil {
		return o.orders
	}
	return o.TxRepos.Orders()
}

// 別txが先にinsertした直後の状況。行ロック検索をmisses回だけ空振りさせる
type lateLineItems struct {
	repo.LineItemRepository
	misses *int
}

func (l lateLineItems) FindCartItemForUpdate(ctx context.Context, userID, productID uuid.UUID) (model.LineItem, bool, error) {
	if *l.misses > 0 {
		*l.misses--
		return model.LineItem{}, false, nil
	}
	return l.LineItemRepository.FindCartItemForUpdate(ctx, userID, productID)
}

// slugの確認とinsertの間に同じslugを取られた状況
type staleProductSlugs struct {
	repo.ProductRepository
	misses *int
}

func (s staleProductSlugs) SlugExists(ctx context.Context, slug string) (bool, error) {
	if *s.misses > 0 {
		*s.misses--
		return false, nil
	}
	return s.ProductRepository.SlugExists(ctx, slug)
}

type staleSellerSlugs struct {
	repo.SellerRepository
	misses *int
}

func (s staleSellerSlugs) SlugExists(ctx context.Context, slug string) (bool, error) {
	if *s.misses > 0 {
		*s.misses--
		return false, nil
	}
	return s.SellerRepository.SlugExists(ctx, slug)
}

// 行ロック付きの読み込み回数を数える
type lockCountingOrders struct {
	repo.OrderRepository
	locked *int
}

func (o lockCountingOrders) FindByTxRefForUpdate(ctx context.Context, txRef string) (model.Order, bool, error) {
	*o.locked++
	return o.OrderRepository.FindByTxRefForUpdate(ctx, txRef)
}
