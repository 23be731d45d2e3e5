package model

import "github.com/google/uuid"

// リクエスト境界で一度だけ評価する権限セット
type Capability uint8

const (
	CapBuy Capability = 1 << iota
	CapSell
	CapStaff
)

func (c Capability) Has(want Capability) bool {
	return c&want == want
}

func (c Capability) Strings() []string {
	out := make([]string, 0, 3)
	if c.Has(CapBuy) {
		out = append(out, "buyer")
	}
	if c.Has(CapSell) {
		out = append(out, "seller")
	}
	if c.Has(CapStaff) {
		out = append(out, "staff")
	}
	return out
}

// ユーザー状態から権限を組み立てる。出品は承認済みの出品者のみ。
func CapabilitiesOf(u User, seller *Seller) Capability {
	c := CapBuy
	if u.AccountType == AccountTypeSeller && seller != nil && seller.IsApproved {
		c |= CapSell
	}
	if u.IsStaff {
		c |= CapStaff
	}
	return c
}

// 操作しているユーザー。usecaseには必ず明示的に渡す。
type Principal struct {
	UserID       uuid.UUID
	Capabilities Capability
	// 出品者プロフィールがあればそのID
	SellerID *uuid.UUID
}

func (p Principal) Can(c Capability) bool {
	return p.Capabilities.Has(c)
}
