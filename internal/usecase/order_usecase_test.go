package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"marketplace/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckout_EmptyCartCreatesNothing(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	buyer := e.buyer(t, "buyer@example.com")
	addr := e.address(t, buyer, "Lagos")

	uc := e.orderUsecase(noopPublisher{}, &recordLogger{})
	_, err := uc.Checkout(ctx, buyer, CheckoutInput{ShippingID: addr.ID.String()})

	assert.True(t, IsEmptyCart(err))
	assertStatus(t, err, http.StatusNotFound)
	assert.Equal(t, int64(0), e.countOrders(t))
}

func TestCheckout_SnapshotsAddressAndMovesAllItems(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	seller := e.seller(t, "mugs", true)
	e.product(t, seller, "red-mug", "12.50")
	e.product(t, seller, "blue-mug", "10.00")
	buyer := e.buyer(t, "buyer@example.com")
	addr := e.address(t, buyer, "Lagos")

	cart := e.cartUsecase()
	_, err := cart.Upsert(ctx, buyer, UpsertCartInput{Slug: "red-mug", Quantity: 2})
	require.NoError(t, err)
	_, err = cart.Upsert(ctx, buyer, UpsertCartInput{Slug: "blue-mug", Quantity: 1})
	require.NoError(t, err)

	uc := e.orderUsecase(noopPublisher{}, &recordLogger{})
	out, err := uc.Checkout(ctx, buyer, CheckoutInput{ShippingID: addr.ID.String()})
	require.NoError(t, err)

	assert.NotEmpty(t, out.TxRef)
	assert.Equal(t, model.DeliveryStatusPending, out.DeliveryStatus)
	assert.Equal(t, model.PaymentStatusPending, out.PaymentStatus)
	assert.Equal(t, addr.FullName, out.FullName)
	assert.Equal(t, addr.Email, out.Email)
	assert.Equal(t, addr.Phone, out.Phone)
	assert.Equal(t, addr.Address, out.Address)
	assert.Equal(t, addr.City, out.City)
	assert.Equal(t, addr.Country, out.Country)
	assert.Equal(t, addr.Zipcode, out.Zipcode)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, "35", out.Total.String())

	items, err := cart.List(ctx, buyer)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(1), e.countOrders(t))

	//住所を後から変えても注文は変わらない
	addr.City = "Abuja"
	require.NoError(t, e.addresses.Update(ctx, &addr))

	orders, err := uc.ListMine(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Lagos", orders[0].City)
	assert.Len(t, orders[0].Items, 2)
}

func TestCheckout_SecondCheckoutWithEmptyCartFails(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	seller := e.seller(t, "mugs", true)
	e.product(t, seller, "red-mug", "12.50")
	buyer := e.buyer(t, "buyer@example.com")
	addr := e.address(t, buyer, "Lagos")

	cart := e.cartUsecase()
	uc := e.orderUsecase(noopPublisher{}, &recordLogger{})

	_, err := cart.Upsert(ctx, buyer, UpsertCartInput{Slug: "red-mug", Quantity: 1})
	require.NoError(t, err)
	first, err := uc.Checkout(ctx, buyer, CheckoutInput{ShippingID: addr.ID.String()})
	require.NoError(t, err)

	_, err = uc.Checkout(ctx, buyer, CheckoutInput{ShippingID: addr.ID.String()})
	assert.True(t, IsEmptyCart(err))
	assert.Equal(t, int64(1), e.countOrders(t))

	_, err = cart.Upsert(ctx, buyer, UpsertCartInput{Slug: "red-mug", Quantity: 1})
	require.NoError(t, err)
	second, err := uc.Checkout(ctx, buyer, CheckoutInput{ShippingID: addr.ID.String()})
	require.NoError(t, err)
	assert.NotEqual(t, first.TxRef, second.TxRef)
	assert.Len(t, second.Items, 1)
}

func TestCheckout_AddressMustBeOwned(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	seller := e.seller(t, "mugs", true)
	e.product(t, seller, "red-mug", "12.50")
	buyer := e.buyer(t, "buyer@example.com")
	other := e.buyer(t, "other@example.com")
	foreign := e.address(t, other, "Accra")

	_, err := e.cartUsecase().Upsert(ctx, buyer, UpsertCartInput{Slug: "red-mug", Quantity: 1})
	require.NoError(t, err)

	uc := e.orderUsecase(noopPublisher{}, &recordLogger{})
	_, err = uc.Checkout(ctx, buyer, CheckoutInput{ShippingID: foreign.ID.String()})
	assertStatus(t, err, http.StatusNotFound)
	assert.False(t, IsEmptyCart(err))

	_, err = uc.Checkout(ctx, buyer, CheckoutInput{ShippingID: "not-a-uuid"})
	assertStatus(t, err, http.StatusBadRequest)

	//失敗してもカートはそのまま
	items, err := e.cartUsecase().List(ctx, buyer)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(0), e.countOrders(t))
}

func TestCheckout_RetriesOnTxRefCollision(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	seller := e.seller(t, "mugs", true)
	e.product(t, seller, "red-mug", "12.50")
	buyer := e.buyer(t, "buyer@example.com")
	addr := e.address(t, buyer, "Lagos")

	taken := model.Order{UserID: buyer.UserID, TxRef: "TAKEN"}
	require.NoError(t, e.orders.Create(ctx, &taken))

	_, err := e.cartUsecase().Upsert(ctx, buyer, UpsertCartInput{Slug: "red-mug", Quantity: 1})
	require.NoError(t, err)

	calls := 0
	gen := func() (string, error) {
		calls++
		if calls < 3 {
			return "TAKEN", nil
		}
		return "FRESH", nil
	}
	uc := NewOrderUsecase(e.tx, e.orders, e.lineItems, gen, noopPublisher{}, &recordLogger{})

	out, err := uc.Checkout(ctx, buyer, CheckoutInput{ShippingID: addr.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "FRESH", out.TxRef)
	assert.Equal(t, 3, calls)
}

func TestCheckout_GivesUpAfterRepeatedCollisions(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	seller := e.seller(t, "mugs", true)
	e.product(t, seller, "red-mug", "12.50")
	buyer := e.buyer(t, "buyer@example.com")
	addr := e.address(t, buyer, "Lagos")

	taken := model.Order{UserID: buyer.UserID, TxRef: "TAKEN"}
	require.NoError(t, e.orders.Create(ctx, &taken))
	_, err := e.cartUsecase().Upsert(ctx, buyer, UpsertCartInput{Slug: "red-mug", Quantity: 1})
	require.NoError(t, err)

	gen := func() (string, error) { return "TAKEN", nil }
	uc := NewOrderUsecase(e.tx, e.orders, e.lineItems, gen, noopPublisher{}, &recordLogger{})

	_, err = uc.Checkout(ctx, buyer, CheckoutInput{ShippingID: addr.ID.String()})
	assertStatus(t, err, http.StatusInternalServerError)

	items, err := e.cartUsecase().List(ctx, buyer)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCheckout_PublishesAfterCommitAndLogsFailure(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	seller := e.seller(t, "mugs", true)
	e.product(t, seller, "red-mug", "12.50")
	buyer := e.buyer(t, "buyer@example.com")
	addr := e.address(t, buyer, "Lagos")

	_, err := e.cartUsecase().Upsert(ctx, buyer, UpsertCartInput{Slug: "red-mug", Quantity: 2})
	require.NoError(t, err)

	pub := new(MockPublisher)
	pub.On("PublishOrderCreated", ctx, mock.MatchedBy(func(o model.Order) bool {
		return o.TxRef != "" && len(o.Items) == 1
	})).Return(errors.New("broker down"))
	log := &recordLogger{}

	uc := e.orderUsecase(pub, log)
	out, err := uc.Checkout(ctx, buyer, CheckoutInput{ShippingID: addr.ID.String()})
	require.NoError(t, err)

	pub.AssertExpectations(t)
	require.Len(t, log.msgs, 1)
	assert.Contains(t, log.msgs[0], out.TxRef)
}

func TestOrderUsecase_ItemsOfIsScopedToOwner(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	seller := e.seller(t, "mugs", true)
	e.product(t, seller, "blue-mug", "10.00")
	buyer := e.buyer(t, "buyer@example.com")
	other := e.buyer(t, "other@example.com")
	addr := e.address(t, buyer, "Lagos")

	_, err := e.cartUsecase().Upsert(ctx, buyer, UpsertCartInput{Slug: "blue-mug", Quantity: 1})
	require.NoError(t, err)
	uc := e.orderUsecase(noopPublisher{}, &recordLogger{})
	out, err := uc.Checkout(ctx, buyer, CheckoutInput{ShippingID: addr.ID.String()})
	require.NoError(t, err)

	items, err := uc.ItemsOf(ctx, buyer, out.TxRef)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "blue-mug", items[0].Product.Slug)

	_, err = uc.ItemsOf(ctx, other, out.TxRef)
	assertStatus(t, err, http.StatusNotFound)

	_, err = uc.ItemsOf(ctx, buyer, "NOPE")
	assertStatus(t, err, http.StatusNotFound)

	mine, err := uc.ListMine(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
