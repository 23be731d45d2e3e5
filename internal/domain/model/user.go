package model

type AccountType string

const (
	AccountTypeBuyer  AccountType = "BUYER"
	AccountTypeSeller AccountType = "SELLER"
)

type User struct {
	Base
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"column:password_hash;not null" json:"-"`
	FirstName    string      `gorm:"type:varchar(50)" json:"first_name"`
	LastName     string      `gorm:"type:varchar(50)" json:"last_name"`
	Avatar       string      `gorm:"type:varchar(255)" json:"avatar"`
	AccountType  AccountType `gorm:"type:varchar(10);not null;default:'BUYER'" json:"account_type"`
	IsStaff      bool        `gorm:"not null;default:false" json:"is_staff"`
	IsActive     bool        `gorm:"not null;default:true" json:"is_active"`
	TokenVersion int         `gorm:"not null;default:0" json:"-"`
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
