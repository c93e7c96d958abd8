package model

import "time"

// 在庫移動の種類
type MovementType string

const (
	//最初の棚卸し。商品ごとに1件まで
	MovementInitial MovementType = "INITIAL"
	//入庫（仕入れ）
	MovementIn MovementType = "IN"
	//出庫（販売）
	MovementOut MovementType = "OUT"
	//手動の在庫補正。数量は符号付き
	MovementAdjustment MovementType = "ADJUSTMENT"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementInitial, MovementIn, MovementOut, MovementAdjustment:
		return true
	}
	return false
}

type Movement struct {
	ID           int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    int64        `gorm:"not null;index" json:"product_id"`
	Type         MovementType `gorm:"type:varchar(20);not null;index" json:"movement_type"`
	Quantity     int64        `gorm:"not null" json:"quantity"`
	Price        *float64     `json:"price"`
	PartyID      *int64       `gorm:"index" json:"party_id"`
	Notes        string       `gorm:"type:text" json:"notes"`
	MovementDate time.Time    `gorm:"not null;index" json:"movement_date"`
	CreatedAt    time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
}

// 在庫への符号付き増減。
// INITIALは「絶対値で在庫をセット」だが、他の移動が存在しない時しか
// 作成・編集できないため、リプレイ時は+Quantityとして扱える。
func (m Movement) StockDelta() int64 {
	switch m.Type {
	case MovementOut:
		return -m.Quantity
	default:
		return m.Quantity
	}
}
