package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
)

// CartUsecase は /cart の業務ロジック。
// カート = order_idが未設定のLineItem。
type CartUsecase struct {
	tx        repo.TransactionManager
	lineItems repo.LineItemRepository
}

func NewCartUsecase(tx repo.TransactionManager, lineItems repo.LineItemRepository) *CartUsecase {
	return &CartUsecase{tx: tx, lineItems: lineItems}
}

type UpsertCartInput struct {
	Slug     string
	Quantity int
}

type CartAction string

const (
	CartItemCreated CartAction = "created"
	CartItemUpdated CartAction = "updated"
	CartItemRemoved CartAction = "removed"
)

type CartUpsertResult struct {
	Action CartAction
	// removedのときはnil
	Item *LineItemOutput
}

// List はカートの中身を新しい順で返す
func (u *CartUsecase) List(ctx context.Context, p model.Principal) ([]LineItemOutput, error) {
	if !p.Can(model.CapBuy) {
		return nil, errForbidden("forbidden")
	}
	items, err := u.lineItems.ListCart(ctx, p.UserID)
	if err != nil {
		return nil, dbError(err)
	}
	return toLineItemOutputs(items), nil
}

// Upsert は数量を置き換える（加算しない）。quantity=0 は削除。
func (u *CartUsecase) Upsert(ctx context.Context, p model.Principal, in UpsertCartInput) (CartUpsertResult, error) {
	if !p.Can(model.CapBuy) {
		return CartUpsertResult{}, errForbidden("forbidden")
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		return CartUpsertResult{}, errInvalid("slug is required")
	}
	if in.Quantity < 0 {
		return CartUpsertResult{}, errInvalid("invalid quantity")
	}

	var out CartUpsertResult
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		product, ok, err := r.Products().FindBySlug(ctx, slug)
		if err != nil {
			return dbError(err)
		}
		if !ok {
			return errNotFound("product")
		}

		//同じ(user, product)の未注文明細は最大1件
		out, err = upsertLine(ctx, r.LineItems(), p.UserID, product, in.Quantity)
		return err
	})
	if err != nil {
		return CartUpsertResult{}, err
	}
	return out, nil
}

// upsertLine は行ロックした明細を置き換える。
// 行が無いまま同時にinsertされた場合は一意制約に当たるので、1回だけ読み直して更新する。
func upsertLine(ctx context.Context, items repo.LineItemRepository, userID uuid.UUID, product model.Product, quantity int) (CartUpsertResult, error) {
	for attempt := 0; ; attempt++ {
		item, exists, err := items.FindCartItemForUpdate(ctx, userID, product.ID)
		if err != nil {
			return CartUpsertResult{}, dbError(err)
		}

		var action CartAction
		switch {
		case quantity == 0:
			if exists {
				if err := items.Delete(ctx, item.ID); err != nil {
					return CartUpsertResult{}, dbError(err)
				}
			}
			return CartUpsertResult{Action: CartItemRemoved}, nil

		case exists:
			if err := items.UpdateQuantity(ctx, item.ID, quantity); err != nil {
				return CartUpsertResult{}, dbError(err)
			}
			item.Quantity = quantity
			action = CartItemUpdated

		default:
			item = model.LineItem{
				UserID:    userID,
				ProductID: product.ID,
				Quantity:  quantity,
			}
			err := items.Create(ctx, &item)
			if errors.Is(err, repo.ErrDuplicate) && attempt == 0 {
				continue
			}
			if err != nil {
				return CartUpsertResult{}, dbError(err)
			}
			action = CartItemCreated
		}

		item.Product = &product
		li := toLineItemOutput(item)
		return CartUpsertResult{Action: action, Item: &li}, nil
	}
}
