package models

import (
	"fmt"

	"pescaderia-api/utils"
)

// Cart is the in-progress, unconfirmed sale for one checkout session.
// It lives in memory only; nothing here touches the database.
type Cart struct {
	ID       string     `json:"id"`
	Customer string     `json:"customer"`
	Notes    string     `json:"notes"`
	Lines    []CartLine `json:"lines"`
	Total    float64    `json:"total"`
}

// CartLine references a product or combo plus a quantity in pounds. Name and
// unit price are denormalized from the catalog at the time the item was added.
type CartLine struct {
	Kind      ItemKind `json:"kind"`
	ItemID    uint     `json:"item_id"`
	Name      string   `json:"name"`
	UnitPrice float64  `json:"unit_price"`
	Quantity  float64  `json:"quantity"`
	Subtotal  float64  `json:"subtotal"`
}

// AddLine merges into an existing (kind, item) line if one exists, otherwise
// appends. Re-adding the same item never creates a duplicate row.
func (c *Cart) AddLine(kind ItemKind, itemID uint, name string, unitPrice, quantity float64) {
	for i := range c.Lines {
		if c.Lines[i].Kind == kind && c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity += quantity
			c.Lines[i].Subtotal = utils.Round2(c.Lines[i].Quantity * c.Lines[i].UnitPrice)
			c.recalc()
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		Kind:      kind,
		ItemID:    itemID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Subtotal:  utils.Round2(quantity * unitPrice),
	})
	c.recalc()
}

func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.Lines) {
		return fmt.Errorf("line index %d out of range", index)
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
	c.recalc()
	return nil
}

// Reset empties the cart after a successful checkout or a cancellation.
func (c *Cart) Reset() {
	c.Customer = ""
	c.Notes = ""
	c.Lines = nil
	c.Total = 0
}

// recalc rederives the total from the current lines. Total is never stored
// independently of the lines, so it cannot desynchronize.
func (c *Cart) recalc() {
	var sum float64
	for _, l := range c.Lines {
		sum += l.Subtotal
	}
	c.Total = utils.Round2(sum)
}
