package model

import "time"

type PartyType string

const (
	PartySupplier PartyType = "Supplier"
	PartyCustomer PartyType = "Customer"
	PartyOther    PartyType = "Other"
)

// 文字列を正規化してPartyTypeに変換
func NormalizePartyType(v string) PartyType {
	switch {
	case v == string(PartySupplier) || v == "supplier":
		return PartySupplier
	case v == string(PartyCustomer) || v == "customer":
		return PartyCustomer
	default:
		return PartyOther
	}
}

// 取引先（仕入先・顧客）。movementsからはIDで参照する。
type Party struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Type      PartyType `gorm:"type:varchar(20);not null;default:'Other'" json:"party_type"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
