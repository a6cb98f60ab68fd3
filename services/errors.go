package services

import (
	"errors"
	"fmt"

	"pescaderia-api/models"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrEmptyCustomer    = errors.New("customer name is required")
	ErrEmptyCart        = errors.New("cart has no items")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrItemNotFound     = errors.New("item not found in catalog")
	ErrCheckoutInFlight = errors.New("a checkout is already in progress for this cart")
)

// OutOfStockError reports the first cart line that failed the stock check,
// either on add-to-cart or during the pre-submit validation pass.
type OutOfStockError struct {
	Kind   models.ItemKind
	ItemID uint
	Name   string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s", e.Name)
}
