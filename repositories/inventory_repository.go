package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pescaderia-api/models"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (repo *InventoryRepository) ActiveProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := repo.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (repo *InventoryRepository) ActiveCombos(ctx context.Context) ([]models.Combo, error) {
	var combos []models.Combo
	err := repo.db.WithContext(ctx).
		Preload("Products.Product").
		Where("active = ?", true).
		Order("name ASC").
		Find(&combos).Error
	if err != nil {
		return nil, err
	}
	for i := range combos {
		combos[i].FillSavings()
	}
	return combos, nil
}

// HasStock answers whether quantity pounds of the given item can be sold right
// now. It always reads the database fresh; the catalog snapshot may be stale.
// A combo has stock only when every component product covers its required
// weight times the requested combo count.
func (repo *InventoryRepository) HasStock(ctx context.Context, kind models.ItemKind, itemID uint, quantity float64) (bool, error) {
	if quantity <= 0 {
		return false, nil
	}

	switch kind {
	case models.KindProduct:
		var product models.Product
		if err := repo.db.WithContext(ctx).First(&product, itemID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return false, nil
			}
			return false, err
		}
		return product.Active && product.StockPounds >= quantity, nil

	case models.KindCombo:
		var combo models.Combo
		err := repo.db.WithContext(ctx).Preload("Products.Product").First(&combo, itemID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return false, nil
			}
			return false, err
		}
		if !combo.Active {
			return false, nil
		}
		for _, cp := range combo.Products {
			if cp.Product.StockPounds < cp.QuantityPounds*quantity {
				return false, nil
			}
		}
		return true, nil

	default:
		return false, fmt.Errorf("unknown item kind %q", kind)
	}
}

func (repo *InventoryRepository) LowStockProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := repo.db.WithContext(ctx).
		Where("active = ? AND stock_pounds <= ?", true, models.LowStockThreshold).
		Order("stock_pounds ASC").
		Find(&products).Error
	return products, err
}
