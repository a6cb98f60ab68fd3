package services

import (
	"context"
	"log"
	"strings"

	"pescaderia-api/models"
)

// CheckoutService turns a cart into a confirmed sale. Preconditions are
// checked in order, each a hard stop: customer name, non-empty cart, then a
// fresh stock pass over every line (time has passed since add-to-cart, other
// sales may have depleted stock). Only then is the submission sent.
type CheckoutService struct {
	carts   *CartService
	catalog *CatalogService
	stock   InventoryStore
	sales   SaleStore
}

func NewCheckoutService(carts *CartService, catalog *CatalogService, stock InventoryStore, sales SaleStore) *CheckoutService {
	return &CheckoutService{carts: carts, catalog: catalog, stock: stock, sales: sales}
}

func (s *CheckoutService) Checkout(ctx context.Context, cartID string) (*models.Sale, error) {
	session, err := s.carts.session(cartID)
	if err != nil {
		return nil, err
	}

	// At most one in-flight checkout per cart. The cart is read once, here;
	// later mutations don't affect this submission.
	session.mu.Lock()
	if session.submitting {
		session.mu.Unlock()
		return nil, ErrCheckoutInFlight
	}
	session.submitting = true
	cart := session.cart
	lines := make([]models.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	session.mu.Unlock()

	defer func() {
		session.mu.Lock()
		session.submitting = false
		session.mu.Unlock()
	}()

	if strings.TrimSpace(cart.Customer) == "" {
		return nil, ErrEmptyCustomer
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Sequential, in line order, so the first insufficient item is the one
	// reported.
	for _, line := range lines {
		ok, err := s.stock.HasStock(ctx, line.Kind, line.ItemID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &OutOfStockError{Kind: line.Kind, ItemID: line.ItemID, Name: line.Name}
		}
	}

	input := models.SaleInput{
		Customer: cart.Customer,
		Notes:    cart.Notes,
		Type:     models.SaleTypeNormal,
		Items:    make([]models.SaleItemInput, 0, len(lines)),
	}
	for _, line := range lines {
		input.Items = append(input.Items, models.SaleItemInput{
			Kind:     line.Kind,
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}

	sale, err := s.sales.CreateSale(ctx, input)
	if err != nil {
		// Cart untouched; the user can adjust and retry.
		return nil, err
	}

	session.mu.Lock()
	session.cart.Reset()
	session.mu.Unlock()

	// Stock changed; the snapshot must be refetched. The sale is already
	// committed, so a failed refresh only logs; the snapshot heals on the
	// next read.
	if err := s.catalog.Refresh(ctx); err != nil {
		log.Printf("catalog refresh after sale %d failed: %v", sale.ID, err)
		s.catalog.Invalidate()
	}

	return sale, nil
}
