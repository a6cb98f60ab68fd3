package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"pescaderia-api/models"
)

// cartSession wraps one cart with its own lock and the in-flight checkout
// flag. Sessions share nothing with each other.
type cartSession struct {
	mu         sync.Mutex
	cart       models.Cart
	submitting bool
}

// CartService owns the in-progress carts, one per checkout session. Adding an
// item resolves it from the catalog snapshot (denormalized name and price as
// of add time) but always checks stock fresh against the store first.
type CartService struct {
	mu       sync.Mutex
	sessions map[string]*cartSession

	catalog *CatalogService
	store   InventoryStore
}

func NewCartService(catalog *CatalogService, store InventoryStore) *CartService {
	return &CartService{
		sessions: make(map[string]*cartSession),
		catalog:  catalog,
		store:    store,
	}
}

// Create opens a new empty cart and returns it.
func (s *CartService) Create() models.Cart {
	session := &cartSession{cart: models.Cart{ID: uuid.NewString()}}
	s.mu.Lock()
	s.sessions[session.cart.ID] = session
	s.mu.Unlock()
	return session.cart
}

func (s *CartService) session(cartID string) (*cartSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[cartID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return session, nil
}

func (s *CartService) Get(cartID string) (models.Cart, error) {
	session, err := s.session(cartID)
	if err != nil {
		return models.Cart{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.cart, nil
}

// SetCustomer updates the customer name and free-text notes.
func (s *CartService) SetCustomer(cartID, customer, notes string) (models.Cart, error) {
	session, err := s.session(cartID)
	if err != nil {
		return models.Cart{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	session.cart.Customer = customer
	session.cart.Notes = notes
	return session.cart, nil
}

// AddItem validates stock for the requested quantity, then merges the item
// into the cart. The stock check goes to the store, not the snapshot, so a
// stale listing can't put an unsellable item in the cart.
func (s *CartService) AddItem(ctx context.Context, cartID string, kind models.ItemKind, itemID uint, quantity float64) (models.Cart, error) {
	if quantity <= 0 {
		return models.Cart{}, ErrInvalidQuantity
	}

	session, err := s.session(cartID)
	if err != nil {
		return models.Cart{}, err
	}

	var name string
	var unitPrice float64
	switch kind {
	case models.KindProduct:
		product, err := s.catalog.FindProduct(ctx, itemID)
		if err != nil {
			return models.Cart{}, err
		}
		name, unitPrice = product.Name, product.PricePerPound
	case models.KindCombo:
		combo, err := s.catalog.FindCombo(ctx, itemID)
		if err != nil {
			return models.Cart{}, err
		}
		name, unitPrice = combo.Name, combo.Price
	default:
		return models.Cart{}, ErrItemNotFound
	}

	// Requested quantity includes whatever is already in the cart for this
	// item, since the merged line is what eventually gets sold.
	session.mu.Lock()
	requested := quantity
	for _, l := range session.cart.Lines {
		if l.Kind == kind && l.ItemID == itemID {
			requested += l.Quantity
		}
	}
	session.mu.Unlock()

	ok, err := s.store.HasStock(ctx, kind, itemID, requested)
	if err != nil {
		return models.Cart{}, err
	}
	if !ok {
		return models.Cart{}, &OutOfStockError{Kind: kind, ItemID: itemID, Name: name}
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.cart.AddLine(kind, itemID, name, unitPrice, quantity)
	return session.cart, nil
}

func (s *CartService) RemoveItem(cartID string, index int) (models.Cart, error) {
	session, err := s.session(cartID)
	if err != nil {
		return models.Cart{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := session.cart.RemoveLine(index); err != nil {
		return models.Cart{}, err
	}
	return session.cart, nil
}

// Cancel discards the session entirely.
func (s *CartService) Cancel(cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[cartID]; !ok {
		return ErrCartNotFound
	}
	delete(s.sessions, cartID)
	return nil
}
