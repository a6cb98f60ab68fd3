package services

import (
	"context"
	"sync"

	"pescaderia-api/models"
)

// CatalogService holds the point-in-time snapshot of sellable items used by
// the listing UI and for denormalizing cart lines. The snapshot is valid
// until the next Refresh; anything that can change stock (a completed sale,
// an inventory edit) must invalidate it. Stock checks never read from here.
type CatalogService struct {
	store InventoryStore

	mu       sync.RWMutex
	products []models.Product
	combos   []models.Combo
	loaded   bool
}

func NewCatalogService(store InventoryStore) *CatalogService {
	return &CatalogService{store: store}
}

// Refresh refetches both lists and swaps the snapshot wholesale. A failed
// fetch leaves the previous snapshot in place.
func (s *CatalogService) Refresh(ctx context.Context) error {
	products, err := s.store.ActiveProducts(ctx)
	if err != nil {
		return err
	}
	combos, err := s.store.ActiveCombos(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.products = products
	s.combos = combos
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}

func (s *CatalogService) ensure(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Refresh(ctx)
}

func (s *CatalogService) Products(ctx context.Context) ([]models.Product, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products, nil
}

func (s *CatalogService) Combos(ctx context.Context) ([]models.Combo, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.combos, nil
}

func (s *CatalogService) FindProduct(ctx context.Context, id uint) (*models.Product, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *CatalogService) FindCombo(ctx context.Context, id uint) (*models.Combo, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.combos {
		if s.combos[i].ID == id {
			c := s.combos[i]
			return &c, nil
		}
	}
	return nil, ErrItemNotFound
}
