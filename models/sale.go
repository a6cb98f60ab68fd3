package models

import "time"

// ItemKind discriminates the two sellable variants. Every switch on it must
// handle both cases explicitly.
type ItemKind string

const (
	KindProduct ItemKind = "PRODUCT"
	KindCombo   ItemKind = "COMBO"
)

func (k ItemKind) Valid() bool {
	return k == KindProduct || k == KindCombo
}

const SaleTypeNormal = "NORMAL"

// Sale is a confirmed transaction. It is created once at checkout and never
// mutated; detail unit prices are the prices as charged and stay authoritative
// for reporting even after catalog prices change.
type Sale struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Customer  string       `gorm:"size:120;not null" json:"customer"`
	Notes     string       `gorm:"type:text" json:"notes"`
	Type      string       `gorm:"size:20;not null;default:'NORMAL'" json:"type"`
	Total     float64      `gorm:"not null" json:"total"`
	Details   []SaleDetail `gorm:"constraint:OnDelete:CASCADE" json:"details"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

type SaleDetail struct {
	ID        uint     `gorm:"primaryKey" json:"-"`
	SaleID    uint     `json:"-"`
	Kind      ItemKind `gorm:"size:10;not null" json:"kind"`
	ItemID    uint     `gorm:"not null" json:"item_id"`
	Name      string   `gorm:"size:120;not null" json:"name"`
	Quantity  float64  `gorm:"not null" json:"quantity"`
	UnitPrice float64  `gorm:"not null" json:"unit_price"`
	Subtotal  float64  `gorm:"not null" json:"subtotal"`
}

// SaleInput is the checkout submission payload. It carries no prices: the
// store prices every line from the live catalog inside the sale transaction,
// so the cart's locally computed total is advisory only.
type SaleInput struct {
	Customer string          `json:"customer"`
	Notes    string          `json:"notes"`
	Type     string          `json:"type"`
	Items    []SaleItemInput `json:"items"`
}

type SaleItemInput struct {
	Kind     ItemKind `json:"kind"`
	ItemID   uint     `json:"item_id"`
	Quantity float64  `json:"quantity"`
}
