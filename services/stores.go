package services

import (
	"context"
	"time"

	"pescaderia-api/models"
)

// InventoryStore is the catalog/stock side of the store. Implemented by
// repositories.InventoryRepository; faked in tests.
type InventoryStore interface {
	ActiveProducts(ctx context.Context) ([]models.Product, error)
	ActiveCombos(ctx context.Context) ([]models.Combo, error)
	HasStock(ctx context.Context, kind models.ItemKind, itemID uint, quantity float64) (bool, error)
}

// SaleStore owns confirmed sales. CreateSale prices authoritatively and may
// reject a submission that passed the client-side stock pass.
type SaleStore interface {
	CreateSale(ctx context.Context, input models.SaleInput) (*models.Sale, error)
	SalesBetween(ctx context.Context, start, end time.Time) ([]models.Sale, error)
}
