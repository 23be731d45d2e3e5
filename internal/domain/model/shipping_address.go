package model

import "github.com/google/uuid"

// 配送先住所。注文時に Order へコピーされる。
type ShippingAddress struct {
	Base
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	FullName string    `gorm:"type:varchar(1000)" json:"full_name"`
	Email    string    `gorm:"type:varchar(255)" json:"email"`
	Phone    string    `gorm:"type:varchar(20)" json:"phone"`
	Address  string    `gorm:"type:varchar(1000)" json:"address"`
	City     string    `gorm:"type:varchar(200)" json:"city"`
	Country  string    `gorm:"type:varchar(200)" json:"country"`
	Zipcode  string    `gorm:"type:varchar(20)" json:"zipcode"`
}
