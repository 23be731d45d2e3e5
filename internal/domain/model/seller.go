package model

import "github.com/google/uuid"

// 出品者プロフィール。承認されるまで商品は出せない。
type Seller struct {
	Base
	UserID              uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User                *User     `gorm:"foreignKey:UserID" json:"-"`
	BusinessName        string    `gorm:"type:varchar(255);not null" json:"business_name"`
	Slug                string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	BusinessDescription string    `gorm:"type:text" json:"business_description"`
	BusinessAddress     string    `gorm:"type:varchar(255)" json:"business_address"`
	PhoneNumber         string    `gorm:"type:varchar(20)" json:"phone_number"`
	WebsiteURL          string    `gorm:"type:varchar(255)" json:"website_url"`
	City                string    `gorm:"type:varchar(100)" json:"city"`
	PostalCode          string    `gorm:"type:varchar(20)" json:"postal_code"`
	IsApproved          bool      `gorm:"not null;default:false" json:"is_approved"`
}
