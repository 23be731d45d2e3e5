package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
)

// AdminUsecase はスタッフ操作。変更は監査ログと同じtxで保存する。
type AdminUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

func NewAdminUsecase(tx repo.TransactionManager, clock Clock) *AdminUsecase {
	return &AdminUsecase{tx: tx, clock: clock}
}

// 空の項目は変更しない
type UpdateOrderStatusInput struct {
	DeliveryStatus string
	PaymentStatus  string
}

func toJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func (u *AdminUsecase) ApproveSeller(ctx context.Context, p model.Principal, rawID string) (model.Seller, error) {
	if !p.Can(model.CapStaff) {
		return model.Seller{}, errForbidden("staff only")
	}
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return model.Seller{}, errInvalid("invalid id")
	}

	var out model.Seller
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, ok, err := r.Sellers().FindByID(ctx, id)
		if err != nil {
			return dbError(err)
		}
		if !ok {
			return errNotFound("seller")
		}
		//承認済みなら何もしない
		if s.IsApproved {
			out = s
			return nil
		}

		if err := r.Sellers().Approve(ctx, s.ID); err != nil {
			return dbError(err)
		}
		if err := r.Users().SetAccountType(ctx, s.UserID, model.AccountTypeSeller); err != nil {
			return dbError(err)
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  p.UserID,
			Action:       model.AuditActionApproveSeller,
			ResourceType: model.AuditResourceSeller,
			ResourceID:   s.ID,
			BeforeJSON:   toJSON(map[string]bool{"is_approved": false}),
			AfterJSON:    toJSON(map[string]bool{"is_approved": true}),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return dbError(err)
		}

		s.IsApproved = true
		out = s
		return nil
	})
	if err != nil {
		return model.Seller{}, err
	}
	return out, nil
}

// UpdateOrderStatus は配送/支払いステータスを更新する。
// 配送がSUCCESSになった注文は終端なので変更できない。
func (u *AdminUsecase) UpdateOrderStatus(ctx context.Context, p model.Principal, txRef string, in UpdateOrderStatusInput) (OrderOutput, error) {
	if !p.Can(model.CapStaff) {
		return OrderOutput{}, errForbidden("staff only")
	}

	delivery := model.DeliveryStatus(strings.ToUpper(strings.TrimSpace(in.DeliveryStatus)))
	payment := model.PaymentStatus(strings.ToUpper(strings.TrimSpace(in.PaymentStatus)))
	if delivery == "" && payment == "" {
		return OrderOutput{}, errInvalid("nothing to update")
	}
	if delivery != "" && !delivery.Valid() {
		return OrderOutput{}, errInvalid("invalid delivery_status")
	}
	if payment != "" && !payment.Valid() {
		return OrderOutput{}, errInvalid("invalid payment_status")
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//終端ガードと監査のbeforeを最新の行で判定する
		o, ok, err := r.Orders().FindByTxRefForUpdate(ctx, strings.TrimSpace(txRef))
		if err != nil {
			return dbError(err)
		}
		if !ok {
			return errNotFound("order")
		}

		next := repo.OrderStatusUpdate{
			DeliveryStatus: o.DeliveryStatus,
			PaymentStatus:  o.PaymentStatus,
			DateDelivered:  o.DateDelivered,
		}
		if delivery != "" {
			next.DeliveryStatus = delivery
		}
		if payment != "" {
			next.PaymentStatus = payment
		}

		//同じなら何もしない
		if next.DeliveryStatus == o.DeliveryStatus && next.PaymentStatus == o.PaymentStatus {
			out, err = r.Orders().FindWithItems(ctx, o.ID)
			if err != nil {
				return dbError(err)
			}
			return nil
		}
		// 終端ガード
		if o.DeliveryStatus == model.DeliveryStatusSuccess {
			return errInvalid("order already delivered")
		}
		if next.DeliveryStatus == model.DeliveryStatusSuccess {
			now := u.clock.Now()
			next.DateDelivered = &now
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, next); err != nil {
			return dbError(err)
		}

		// 監査ログ（UPDATE_ORDER_STATUS）
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  p.UserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   o.ID,
			BeforeJSON: toJSON(map[string]string{
				"delivery_status": string(o.DeliveryStatus),
				"payment_status":  string(o.PaymentStatus),
			}),
			AfterJSON: toJSON(map[string]string{
				"delivery_status": string(next.DeliveryStatus),
				"payment_status":  string(next.PaymentStatus),
			}),
			CreatedAt: u.clock.Now(),
		}); err != nil {
			return dbError(err)
		}

		out, err = r.Orders().FindWithItems(ctx, o.ID)
		if err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return toOrderOutput(out), nil
}
