package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pescaderia-api/config"
	"pescaderia-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (camaron, tilapia models.Product, combo models.Combo) {
	t.Helper()
	camaron = models.Product{Name: "Camarón Jumbo", PricePerPound: 12.50, StockPounds: 10, Active: true}
	if err := db.Create(&camaron).Error; err != nil {
		t.Fatalf("camaron: %v", err)
	}
	tilapia = models.Product{Name: "Tilapia Entera", PricePerPound: 4.25, StockPounds: 3, Active: true}
	if err := db.Create(&tilapia).Error; err != nil {
		t.Fatalf("tilapia: %v", err)
	}
	combo = models.Combo{
		Name: "Combo Familiar", Price: 28.00, Active: true,
		Products: []models.ComboProduct{
			{ProductID: camaron.ID, QuantityPounds: 1.5},
			{ProductID: tilapia.ID, QuantityPounds: 1},
		},
	}
	if err := db.Create(&combo).Error; err != nil {
		t.Fatalf("combo: %v", err)
	}
	return
}

func TestHasStockProduct(t *testing.T) {
	db := setupTestDB(t)
	_, tilapia, _ := seedCatalog(t, db)
	repo := NewInventoryRepository(db)
	ctx := context.Background()

	// availability >= requested, not merely > 0
	ok, err := repo.HasStock(ctx, models.KindProduct, tilapia.ID, 3)
	if err != nil || !ok {
		t.Fatalf("want stock for exact quantity, got ok=%v err=%v", ok, err)
	}
	ok, err = repo.HasStock(ctx, models.KindProduct, tilapia.ID, 3.5)
	if err != nil || ok {
		t.Fatalf("want no stock above availability, got ok=%v err=%v", ok, err)
	}

	ok, _ = repo.HasStock(ctx, models.KindProduct, 9999, 1)
	if ok {
		t.Fatal("missing product must have no stock")
	}

	db.Model(&models.Product{}).Where("id = ?", tilapia.ID).Update("active", false)
	ok, _ = repo.HasStock(ctx, models.KindProduct, tilapia.ID, 1)
	if ok {
		t.Fatal("inactive product must have no stock")
	}
}

func TestHasStockCombo(t *testing.T) {
	db := setupTestDB(t)
	_, tilapia, combo := seedCatalog(t, db)
	repo := NewInventoryRepository(db)
	ctx := context.Background()

	// 3 combos need 3 lb tilapia: exactly covered.
	ok, err := repo.HasStock(ctx, models.KindCombo, combo.ID, 3)
	if err != nil || !ok {
		t.Fatalf("want stock for 3 combos, got ok=%v err=%v", ok, err)
	}
	ok, _ = repo.HasStock(ctx, models.KindCombo, combo.ID, 4)
	if ok {
		t.Fatal("4 combos exceed tilapia stock")
	}

	// Any depleted component sinks the whole combo.
	db.Model(&models.Product{}).Where("id = ?", tilapia.ID).Update("stock_pounds", 0)
	ok, _ = repo.HasStock(ctx, models.KindCombo, combo.ID, 1)
	if ok {
		t.Fatal("combo with an empty component must have no stock")
	}
}

func TestCreateSalePricesAuthoritativelyAndDecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	camaron, tilapia, combo := seedCatalog(t, db)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	sale, err := repo.CreateSale(ctx, models.SaleInput{
		Customer: "Ana Pérez",
		Notes:    "entrega 5pm",
		Items: []models.SaleItemInput{
			{Kind: models.KindProduct, ItemID: camaron.ID, Quantity: 2},
			{Kind: models.KindCombo, ItemID: combo.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}

	if sale.Type != models.SaleTypeNormal {
		t.Fatalf("want type NORMAL, got %s", sale.Type)
	}
	if len(sale.Details) != 2 {
		t.Fatalf("want 2 details, got %d", len(sale.Details))
	}
	if sale.Details[0].UnitPrice != 12.50 || sale.Details[0].Subtotal != 25.00 {
		t.Fatalf("product line mispriced: %+v", sale.Details[0])
	}
	if sale.Details[1].UnitPrice != 28.00 {
		t.Fatalf("combo line mispriced: %+v", sale.Details[1])
	}
	if sale.Total != 53.00 {
		t.Fatalf("want total 53.00, got %v", sale.Total)
	}

	// Product weight down by direct sale + combo component.
	var gotCamaron, gotTilapia models.Product
	db.First(&gotCamaron, camaron.ID)
	db.First(&gotTilapia, tilapia.ID)
	if gotCamaron.StockPounds != 10-2-1.5 {
		t.Fatalf("camaron stock: want 6.5, got %v", gotCamaron.StockPounds)
	}
	if gotTilapia.StockPounds != 3-1 {
		t.Fatalf("tilapia stock: want 2, got %v", gotTilapia.StockPounds)
	}
}

func TestCreateSaleRejectsInsufficientStockAndRollsBack(t *testing.T) {
	db := setupTestDB(t)
	camaron, tilapia, _ := seedCatalog(t, db)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	_, err := repo.CreateSale(ctx, models.SaleInput{
		Customer: "Ana Pérez",
		Items: []models.SaleItemInput{
			{Kind: models.KindProduct, ItemID: camaron.ID, Quantity: 2},
			{Kind: models.KindProduct, ItemID: tilapia.ID, Quantity: 50},
		},
	})
	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}
	if insufficient.Name != "Tilapia Entera" {
		t.Fatalf("want rejected item name, got %q", insufficient.Name)
	}

	// Nothing committed: first line's decrement rolled back, no sale rows.
	var gotCamaron models.Product
	db.First(&gotCamaron, camaron.ID)
	if gotCamaron.StockPounds != 10 {
		t.Fatalf("rollback failed, camaron stock %v", gotCamaron.StockPounds)
	}
	var count int64
	db.Model(&models.Sale{}).Count(&count)
	if count != 0 {
		t.Fatalf("want 0 sales after rollback, got %d", count)
	}
}

func TestSalesBetweenAndTodaySummary(t *testing.T) {
	db := setupTestDB(t)
	camaron, _, _ := seedCatalog(t, db)
	repo := NewSaleRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.CreateSale(ctx, models.SaleInput{
			Customer: "Ana Pérez",
			Items:    []models.SaleItemInput{{Kind: models.KindProduct, ItemID: camaron.ID, Quantity: 1}},
		})
		if err != nil {
			t.Fatalf("create sale %d: %v", i, err)
		}
	}

	now := time.Now()
	sales, err := repo.SalesBetween(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("sales between: %v", err)
	}
	if len(sales) != 3 {
		t.Fatalf("want 3 sales, got %d", len(sales))
	}

	summary, err := repo.TodaySummary(ctx)
	if err != nil {
		t.Fatalf("today summary: %v", err)
	}
	if summary.Count != 3 {
		t.Fatalf("want 3 transactions today, got %d", summary.Count)
	}
	if summary.Total != 37.50 {
		t.Fatalf("want total 37.50, got %v", summary.Total)
	}
}

func TestActiveCombosFillSavings(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	repo := NewInventoryRepository(db)

	combos, err := repo.ActiveCombos(context.Background())
	if err != nil {
		t.Fatalf("active combos: %v", err)
	}
	if len(combos) != 1 {
		t.Fatalf("want 1 combo, got %d", len(combos))
	}
	// components: 1.5*12.50 + 1*4.25 = 23.00, price 28.00 -> savings -5.00
	if combos[0].Savings != -5.00 {
		t.Fatalf("want savings -5.00 (price above component sum is allowed), got %v", combos[0].Savings)
	}
}
