package models

import (
	"time"

	"pescaderia-api/utils"
)

// Combo is a fixed-price bundle of products sold as one sellable unit.
type Combo struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:120;not null;uniqueIndex" json:"name" binding:"required"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price" binding:"required,gt=0"`
	Active      bool           `gorm:"default:true" json:"active"`
	Products    []ComboProduct `gorm:"constraint:OnDelete:CASCADE" json:"products"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`

	// Savings is the difference between the sum of the component prices and
	// the combo price. Informational only, recomputed per response; the combo
	// price is not required to undercut the component sum.
	Savings float64 `gorm:"-" json:"savings"`
}

type ComboProduct struct {
	ID             uint    `gorm:"primaryKey" json:"-"`
	ComboID        uint    `json:"-"`
	ProductID      uint    `gorm:"not null" json:"product_id" binding:"required"`
	QuantityPounds float64 `gorm:"not null" json:"quantity_pounds" binding:"required,gt=0"`
	Product        Product `json:"product"`
}

// ComponentTotal prices the combo's components individually at their current
// price per pound. Requires Products.Product to be preloaded.
func (c *Combo) ComponentTotal() float64 {
	var sum float64
	for _, cp := range c.Products {
		sum += cp.QuantityPounds * cp.Product.PricePerPound
	}
	return utils.Round2(sum)
}

// FillSavings recomputes the savings hint from the preloaded components.
func (c *Combo) FillSavings() {
	c.Savings = utils.Round2(c.ComponentTotal() - c.Price)
}
