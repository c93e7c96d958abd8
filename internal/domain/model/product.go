package model

import "time"

type Product struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Category     string    `gorm:"type:varchar(100)" json:"category"`
	Brand        string    `gorm:"type:varchar(100)" json:"brand"`
	Description  string    `gorm:"type:text" json:"description"`
	ImageURL     string    `gorm:"type:varchar(255)" json:"image_url"`
	CurrentStock int64     `gorm:"not null;default:0" json:"current_stock"`
	CostPrice    float64   `gorm:"not null;default:0" json:"cost_price"`
	SalePrice    float64   `gorm:"not null;default:0" json:"sale_price"`
	Supplier     string    `gorm:"type:varchar(255)" json:"supplier"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
