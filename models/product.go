package models

import "time"

// LowStockThreshold is the weight (in pounds) at or below which a product
// shows up in low-stock alerts.
const LowStockThreshold = 5.0

type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:120;not null;uniqueIndex" json:"name" binding:"required"`
	PricePerPound float64   `gorm:"not null" json:"price_per_pound" binding:"required,gt=0"`
	StockPounds   float64   `gorm:"not null;default:0" json:"stock_pounds" binding:"gte=0"`
	Packaging     string    `gorm:"size:60" json:"packaging"`
	Active        bool      `gorm:"default:true" json:"active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Product) LowStock() bool {
	return p.Active && p.StockPounds <= LowStockThreshold
}
