package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pescaderia-api/models"
	"pescaderia-api/utils"
)

// InsufficientStockError is the store-side rejection: stock moved between the
// caller's validation pass and the sale transaction. Recoverable; the caller
// keeps its cart and may retry.
type InsufficientStockError struct {
	Kind   models.ItemKind
	ItemID uint
	Name   string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Name)
}

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// CreateSale turns a price-free submission into a confirmed sale. Inside one
// transaction each line is loaded fresh, re-validated for stock, priced from
// the live catalog, and the product weights are decremented. The returned
// record carries the authoritative total, which may differ from whatever the
// client displayed.
func (repo *SaleRepository) CreateSale(ctx context.Context, input models.SaleInput) (*models.Sale, error) {
	sale := models.Sale{
		Customer: input.Customer,
		Notes:    input.Notes,
		Type:     input.Type,
	}
	if sale.Type == "" {
		sale.Type = models.SaleTypeNormal
	}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total float64

		for _, item := range input.Items {
			if item.Quantity <= 0 {
				return fmt.Errorf("invalid quantity %v for item %d", item.Quantity, item.ItemID)
			}

			switch item.Kind {
			case models.KindProduct:
				var product models.Product
				if err := tx.First(&product, item.ItemID).Error; err != nil {
					if err == gorm.ErrRecordNotFound {
						return fmt.Errorf("product %d not found", item.ItemID)
					}
					return err
				}
				if !product.Active || product.StockPounds < item.Quantity {
					return &InsufficientStockError{Kind: item.Kind, ItemID: product.ID, Name: product.Name}
				}

				product.StockPounds -= item.Quantity
				if err := tx.Save(&product).Error; err != nil {
					return err
				}

				subtotal := utils.Round2(item.Quantity * product.PricePerPound)
				total += subtotal
				sale.Details = append(sale.Details, models.SaleDetail{
					Kind:      models.KindProduct,
					ItemID:    product.ID,
					Name:      product.Name,
					Quantity:  item.Quantity,
					UnitPrice: product.PricePerPound,
					Subtotal:  subtotal,
				})

			case models.KindCombo:
				var combo models.Combo
				if err := tx.Preload("Products.Product").First(&combo, item.ItemID).Error; err != nil {
					if err == gorm.ErrRecordNotFound {
						return fmt.Errorf("combo %d not found", item.ItemID)
					}
					return err
				}
				if !combo.Active {
					return &InsufficientStockError{Kind: item.Kind, ItemID: combo.ID, Name: combo.Name}
				}

				for _, cp := range combo.Products {
					needed := cp.QuantityPounds * item.Quantity
					if cp.Product.StockPounds < needed {
						return &InsufficientStockError{Kind: item.Kind, ItemID: combo.ID, Name: combo.Name}
					}
				}
				for _, cp := range combo.Products {
					needed := cp.QuantityPounds * item.Quantity
					if err := tx.Model(&models.Product{}).
						Where("id = ?", cp.ProductID).
						Update("stock_pounds", gorm.Expr("stock_pounds - ?", needed)).Error; err != nil {
						return err
					}
				}

				subtotal := utils.Round2(item.Quantity * combo.Price)
				total += subtotal
				sale.Details = append(sale.Details, models.SaleDetail{
					Kind:      models.KindCombo,
					ItemID:    combo.ID,
					Name:      combo.Name,
					Quantity:  item.Quantity,
					UnitPrice: combo.Price,
					Subtotal:  subtotal,
				})

			default:
				return fmt.Errorf("unknown item kind %q", item.Kind)
			}
		}

		sale.Total = utils.Round2(total)
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}

	return &sale, nil
}

func (repo *SaleRepository) SaleByID(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := repo.db.WithContext(ctx).Preload("Details").First(&sale, id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// SalesBetween returns sales with start <= created_at < end, newest first.
func (repo *SaleRepository) SalesBetween(ctx context.Context, start, end time.Time) ([]models.Sale, error) {
	var sales []models.Sale
	err := repo.db.WithContext(ctx).
		Preload("Details").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (repo *SaleRepository) RecentSales(ctx context.Context, limit int) ([]models.Sale, error) {
	var sales []models.Sale
	err := repo.db.WithContext(ctx).
		Preload("Details").
		Order("created_at DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

type TodaySummary struct {
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// TodaySummary sums today's confirmed sales for the dashboard.
func (repo *SaleRepository) TodaySummary(ctx context.Context) (*TodaySummary, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24 * time.Hour)

	var summary TodaySummary
	err := repo.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	summary.Total = utils.Round2(summary.Total)
	return &summary, nil
}
