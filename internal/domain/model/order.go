package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DeliveryStatus string

const (
	DeliveryStatusPending  DeliveryStatus = "PENDING"
	DeliveryStatusPacking  DeliveryStatus = "PACKING"
	DeliveryStatusShipping DeliveryStatus = "SHIPPING"
	DeliveryStatusArriving DeliveryStatus = "ARRIVING"
	DeliveryStatusSuccess  DeliveryStatus = "SUCCESS"
)

func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusPacking, DeliveryStatusShipping,
		DeliveryStatusArriving, DeliveryStatusSuccess:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusSuccessful PaymentStatus = "SUCCESSFUL"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusProcessing, PaymentStatusSuccessful,
		PaymentStatusCancelled, PaymentStatusFailed:
		return true
	}
	return false
}

// 注文。住所は作成時点の値をコピーして持つ。
type Order struct {
	Base
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	TxRef          string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"tx_ref"`
	DeliveryStatus DeliveryStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"delivery_status"`
	PaymentStatus  PaymentStatus  `gorm:"type:varchar(20);not null;default:'PENDING'" json:"payment_status"`
	DateDelivered  *time.Time     `json:"date_delivered"`

	//住所スナップショット
	FullName string `gorm:"type:varchar(1000)" json:"full_name"`
	Email    string `gorm:"type:varchar(255)" json:"email"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Address  string `gorm:"type:varchar(1000)" json:"address"`
	City     string `gorm:"type:varchar(200)" json:"city"`
	Country  string `gorm:"type:varchar(100)" json:"country"`
	Zipcode  string `gorm:"type:varchar(20)" json:"zipcode"`

	Items []LineItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

// 住所の値を注文へコピーする
func (o *Order) SnapshotAddress(a ShippingAddress) {
	o.FullName = a.FullName
	o.Email = a.Email
	o.Phone = a.Phone
	o.Address = a.Address
	o.City = a.City
	o.Country = a.Country
	o.Zipcode = a.Zipcode
}

func (o Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Total())
	}
	return sum
}
