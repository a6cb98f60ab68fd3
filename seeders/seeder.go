package seeders

import (
	"gorm.io/gorm"

	"pescaderia-api/models"
)

// Seed loads a starter seafood catalog. Idempotent: matches on name.
func Seed(db *gorm.DB) {
	products := []models.Product{
		{Name: "Camarón Jumbo", PricePerPound: 12.50, StockPounds: 40, Packaging: "bolsa sellada", Active: true},
		{Name: "Tilapia Entera", PricePerPound: 4.25, StockPounds: 80, Packaging: "hielo", Active: true},
		{Name: "Filete de Corvina", PricePerPound: 8.75, StockPounds: 35, Packaging: "bandeja", Active: true},
		{Name: "Pargo Rojo", PricePerPound: 7.90, StockPounds: 25, Packaging: "hielo", Active: true},
		{Name: "Salmón Fresco", PricePerPound: 14.00, StockPounds: 20, Packaging: "bandeja", Active: true},
		{Name: "Calamar Limpio", PricePerPound: 6.50, StockPounds: 15, Packaging: "bolsa sellada", Active: true},
	}

	for _, product := range products {
		db.FirstOrCreate(&product, models.Product{Name: product.Name})
	}

	var camaron, tilapia, corvina, calamar models.Product
	db.Where("name = ?", "Camarón Jumbo").First(&camaron)
	db.Where("name = ?", "Tilapia Entera").First(&tilapia)
	db.Where("name = ?", "Filete de Corvina").First(&corvina)
	db.Where("name = ?", "Calamar Limpio").First(&calamar)

	combos := []models.Combo{
		{
			Name:        "Combo Familiar",
			Description: "Camarón y tilapia para la parrilla del fin de semana",
			Price:       28.00,
			Active:      true,
			Products: []models.ComboProduct{
				{ProductID: camaron.ID, QuantityPounds: 1.5},
				{ProductID: tilapia.ID, QuantityPounds: 3},
			},
		},
		{
			Name:        "Combo Mariscada",
			Description: "Corvina y calamar listos para sopa",
			Price:       20.50,
			Active:      true,
			Products: []models.ComboProduct{
				{ProductID: corvina.ID, QuantityPounds: 1},
				{ProductID: calamar.ID, QuantityPounds: 1.5},
			},
		},
	}

	for _, combo := range combos {
		var existing models.Combo
		if err := db.Where("name = ?", combo.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&combo)
		}
	}
}
