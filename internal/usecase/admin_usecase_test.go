package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestAdminUsecase_ApproveSeller(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	staff := e.staff(t, "staff@example.com")
	pending := e.seller(t, "pending", false)
	uc := NewAdminUsecase(e.tx, fixedClock{time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)})

	_, err := uc.ApproveSeller(ctx, pending, pending.SellerID.String())
	assertStatus(t, err, http.StatusForbidden)

	s, err := uc.ApproveSeller(ctx, staff, pending.SellerID.String())
	require.NoError(t, err)
	assert.True(t, s.IsApproved)

	//2回目は監査ログを増やさない
	_, err = uc.ApproveSeller(ctx, staff, pending.SellerID.String())
	require.NoError(t, err)

	action := model.AuditActionApproveSeller
	logs, err := e.auditLogs.List(ctx, repo.AuditLogFilter{Action: &action})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, staff.UserID, logs[0].ActorUserID)
	assert.Equal(t, *pending.SellerID, logs[0].ResourceID)

	_, err = uc.ApproveSeller(ctx, staff, "bogus")
	assertStatus(t, err, http.StatusBadRequest)
}

func TestAdminUsecase_UpdateOrderStatus(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	mugs := e.seller(t, "mugs", true)
	e.product(t, mugs, "red-mug", "12.50")
	buyer := e.buyer(t, "buyer@example.com")
	staff := e.staff(t, "staff@example.com")
	order := e.placeOrder(t, buyer, map[string]int{"red-mug": 1})

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	uc := NewAdminUsecase(e.tx, fixedClock{now})

	_, err := uc.UpdateOrderStatus(ctx, buyer, order.TxRef, UpdateOrderStatusInput{DeliveryStatus: "SHIPPING"})
	assertStatus(t, err, http.StatusForbidden)

	_, err = uc.UpdateOrderStatus(ctx, staff, order.TxRef, UpdateOrderStatusInput{})
	assertStatus(t, err, http.StatusBadRequest)
	_, err = uc.UpdateOrderStatus(ctx, staff, order.TxRef, UpdateOrderStatusInput{DeliveryStatus: "LOST"})
	assertStatus(t, err, http.StatusBadRequest)
	_, err = uc.UpdateOrderStatus(ctx, staff, "NOPE", UpdateOrderStatusInput{PaymentStatus: "SUCCESSFUL"})
	assertStatus(t, err, http.StatusNotFound)

	out, err := uc.UpdateOrderStatus(ctx, staff, order.TxRef, UpdateOrderStatusInput{PaymentStatus: "successful"})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusSuccessful, out.PaymentStatus)
	assert.Nil(t, out.DateDelivered)
	assert.Len(t, out.Items, 1)

	out, err = uc.UpdateOrderStatus(ctx, staff, order.TxRef, UpdateOrderStatusInput{DeliveryStatus: "SUCCESS"})
	require.NoError(t, err)
	assert.Equal(t, model.DeliveryStatusSuccess, out.DeliveryStatus)
	require.NotNil(t, out.DateDelivered)
	assert.True(t, now.Equal(*out.DateDelivered))

	_, err = uc.UpdateOrderStatus(ctx, staff, order.TxRef, UpdateOrderStatusInput{PaymentStatus: "FAILED"})
	assertStatus(t, err, http.StatusBadRequest)

	action := model.AuditActionUpdateOrderStatus
	logs, err := e.auditLogs.List(ctx, repo.AuditLogFilter{Action: &action})
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestAdminUsecase_UpdateOrderStatusReadsLockedRow(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	mugs := e.seller(t, "mugs", true)
	e.product(t, mugs, "red-mug", "12.50")
	buyer := e.buyer(t, "buyer@example.com")
	staff := e.staff(t, "staff@example.com")
	order := e.placeOrder(t, buyer, map[string]int{"red-mug": 1})

	locked := 0
	tx := wrapTx{inner: e.tx, wrap: func(r repo.TxRepos) repo.TxRepos {
		return txReposOverride{TxRepos: r, orders: lockCountingOrders{OrderRepository: r.Orders(), locked: &locked}}
	}}
	uc := NewAdminUsecase(tx, fixedClock{time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)})

	out, err := uc.UpdateOrderStatus(ctx, staff, order.TxRef, UpdateOrderStatusInput{DeliveryStatus: "SHIPPING"})
	require.NoError(t, err)
	assert.Equal(t, model.DeliveryStatusShipping, out.DeliveryStatus)
	assert.Equal(t, 1, locked)

	_, err = uc.UpdateOrderStatus(ctx, staff, order.TxRef, UpdateOrderStatusInput{DeliveryStatus: "SUCCESS"})
	require.NoError(t, err)
	_, err = uc.UpdateOrderStatus(ctx, staff, order.TxRef, UpdateOrderStatusInput{DeliveryStatus: "ARRIVING"})
	assertStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, 3, locked)
}
