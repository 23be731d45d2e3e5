package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	"marketplace/internal/metrics"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
)

// tx_refの衝突時に作り直す回数
const maxTxRefAttempts = 5

type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	lineItems repo.LineItemRepository
	newRef    RefGenerator
	events    OrderEventPublisher
	log       Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	lineItems repo.LineItemRepository,
	newRef RefGenerator,
	events OrderEventPublisher,
	log Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		orders:    orders,
		lineItems: lineItems,
		newRef:    newRef,
		events:    events,
		log:       log,
	}
}

type CheckoutInput struct {
	ShippingID string
}

// Checkout はカートの明細を新しい注文へまとめて付け替える。
// 注文作成と付け替えは同じtxなので、途中のカート操作は全部入るか全部入らないか。
func (u *OrderUsecase) Checkout(ctx context.Context, p model.Principal, in CheckoutInput) (OrderOutput, error) {
	out, err := u.checkout(ctx, p, in)
	metrics.RecordOrderOperation("checkout", err == nil)
	return out, err
}

func (u *OrderUsecase) checkout(ctx context.Context, p model.Principal, in CheckoutInput) (OrderOutput, error) {
	if !p.Can(model.CapBuy) {
		return OrderOutput{}, errForbidden("forbidden")
	}
	addressID, err := uuid.Parse(strings.TrimSpace(in.ShippingID))
	if err != nil {
		return OrderOutput{}, errInvalid("invalid shipping_id")
	}

	var created model.Order
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		n, err := r.LineItems().CountCart(ctx, p.UserID)
		if err != nil {
			return dbError(err)
		}
		if n == 0 {
			return ErrEmptyCart
		}

		//他人の住所は見つからない扱い
		addr, ok, err := r.Addresses().FindOwned(ctx, p.UserID, addressID)
		if err != nil {
			return dbError(err)
		}
		if !ok {
			return errNotFound("shipping address")
		}

		order := model.Order{
			UserID:         p.UserID,
			DeliveryStatus: model.DeliveryStatusPending,
			PaymentStatus:  model.PaymentStatusPending,
		}
		order.SnapshotAddress(addr)
		if err := u.createWithTxRef(ctx, r.Orders(), &order); err != nil {
			return err
		}

		//1回のUPDATEでまとめて付け替える
		moved, err := r.LineItems().AssignCartToOrder(ctx, p.UserID, order.ID)
		if err != nil {
			return dbError(err)
		}
		if moved == 0 {
			return ErrEmptyCart
		}

		created, err = r.Orders().FindWithItems(ctx, order.ID)
		if err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	//commit後に送る。失敗しても注文は成立している
	if err := u.events.PublishOrderCreated(ctx, created); err != nil {
		u.log.Warnf("publish order.created tx_ref=%s: %v", created.TxRef, err)
	}

	return toOrderOutput(created), nil
}

// 一意制約違反のときだけ参照コードを作り直す
func (u *OrderUsecase) createWithTxRef(ctx context.Context, orders repo.OrderRepository, o *model.Order) error {
	for i := 0; i < maxTxRefAttempts; i++ {
		ref, err := u.newRef()
		if err != nil {
			return internalError(err)
		}
		o.TxRef = ref

		err = orders.Create(ctx, o)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repo.ErrDuplicate) {
			return dbError(err)
		}
	}
	return internalError(errors.New("tx_ref collision retries exhausted"))
}

// ListMine は自分の注文を新しい順で返す
func (u *OrderUsecase) ListMine(ctx context.Context, p model.Principal) ([]OrderOutput, error) {
	if !p.Can(model.CapBuy) {
		return nil, errForbidden("forbidden")
	}
	orders, err := u.orders.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, dbError(err)
	}
	return toOrderOutputs(orders), nil
}

// ItemsOf は自分の注文の明細。他人の注文は404。
func (u *OrderUsecase) ItemsOf(ctx context.Context, p model.Principal, txRef string) ([]LineItemOutput, error) {
	if !p.Can(model.CapBuy) {
		return nil, errForbidden("forbidden")
	}
	o, ok, err := u.orders.FindByTxRef(ctx, strings.TrimSpace(txRef))
	if err != nil {
		return nil, dbError(err)
	}
	if !ok || o.UserID != p.UserID {
		return nil, errNotFound("order")
	}

	items, err := u.lineItems.ListByOrder(ctx, o.ID)
	if err != nil {
		return nil, dbError(err)
	}
	return toLineItemOutputs(items), nil
}
