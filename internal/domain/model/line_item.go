package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 購入明細。OrderIDがnilの間はカートの中身として扱う。
// カート内では(user, product)につき1行（部分一意インデックス）。
type LineItem struct {
	Base
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:ux_line_items_cart,priority:1,where:order_id IS NULL" json:"-"`
	OrderID   *uuid.UUID `gorm:"type:uuid;index" json:"-"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:ux_line_items_cart,priority:2,where:order_id IS NULL" json:"-"`
	// 商品の削除で明細も消える
	Product   *Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"`
	Quantity  int        `gorm:"not null;default:1" json:"quantity"`
}

// 小計 = 現在価格 × 数量
func (li LineItem) Total() decimal.Decimal {
	if li.Product == nil {
		return decimal.Zero
	}
	return li.Product.PriceCurrent.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func (li LineItem) InCart() bool {
	return li.OrderID == nil
}
