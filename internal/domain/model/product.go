package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	Base
	SellerID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"-"`
	Seller       *Seller             `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	CategoryID   uuid.UUID           `gorm:"type:uuid;not null;index" json:"-"`
	Category     *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name         string              `gorm:"type:varchar(100);not null" json:"name"`
	Slug         string              `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description  string              `gorm:"type:text" json:"description"`
	PriceOld     decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"price_old"`
	PriceCurrent decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price_current"`
	InStock      int                 `gorm:"not null" json:"in_stock"`
}
