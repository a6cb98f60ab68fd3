package services

import (
	"context"
	"time"

	"pescaderia-api/models"
	"pescaderia-api/utils"
)

// fakeStore stands in for the repositories in service tests: an in-memory
// catalog with the same stock semantics as the real store.
type fakeStore struct {
	products map[uint]*models.Product
	combos   map[uint]*models.Combo

	productFetches  int
	comboFetches    int
	hasStockCalls   int
	createSaleCalls int

	createSaleErr error
	nextSaleID    uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[uint]*models.Product),
		combos:   make(map[uint]*models.Combo),
	}
}

func (f *fakeStore) addProduct(id uint, name string, price, stock float64) {
	f.products[id] = &models.Product{ID: id, Name: name, PricePerPound: price, StockPounds: stock, Active: true}
}

func (f *fakeStore) ActiveProducts(ctx context.Context) ([]models.Product, error) {
	f.productFetches++
	var out []models.Product
	for _, p := range f.products {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) ActiveCombos(ctx context.Context) ([]models.Combo, error) {
	f.comboFetches++
	var out []models.Combo
	for _, combo := range f.combos {
		if combo.Active {
			out = append(out, *combo)
		}
	}
	return out, nil
}

func (f *fakeStore) HasStock(ctx context.Context, kind models.ItemKind, itemID uint, quantity float64) (bool, error) {
	f.hasStockCalls++
	switch kind {
	case models.KindProduct:
		p, ok := f.products[itemID]
		return ok && p.Active && p.StockPounds >= quantity, nil
	case models.KindCombo:
		combo, ok := f.combos[itemID]
		if !ok || !combo.Active {
			return false, nil
		}
		for _, cp := range combo.Products {
			p, ok := f.products[cp.ProductID]
			if !ok || p.StockPounds < cp.QuantityPounds*quantity {
				return false, nil
			}
		}
		return true, nil
	}
	return false, nil
}

func (f *fakeStore) CreateSale(ctx context.Context, input models.SaleInput) (*models.Sale, error) {
	f.createSaleCalls++
	if f.createSaleErr != nil {
		return nil, f.createSaleErr
	}

	f.nextSaleID++
	sale := &models.Sale{
		ID:        f.nextSaleID,
		Customer:  input.Customer,
		Notes:     input.Notes,
		Type:      input.Type,
		CreatedAt: time.Now(),
	}

	var total float64
	for _, item := range input.Items {
		var name string
		var unitPrice float64
		switch item.Kind {
		case models.KindProduct:
			p := f.products[item.ItemID]
			name, unitPrice = p.Name, p.PricePerPound
			p.StockPounds -= item.Quantity
		case models.KindCombo:
			combo := f.combos[item.ItemID]
			name, unitPrice = combo.Name, combo.Price
			for _, cp := range combo.Products {
				f.products[cp.ProductID].StockPounds -= cp.QuantityPounds * item.Quantity
			}
		}
		subtotal := utils.Round2(item.Quantity * unitPrice)
		total += subtotal
		sale.Details = append(sale.Details, models.SaleDetail{
			Kind:      item.Kind,
			ItemID:    item.ItemID,
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  subtotal,
		})
	}
	sale.Total = utils.Round2(total)
	return sale, nil
}

func (f *fakeStore) SalesBetween(ctx context.Context, start, end time.Time) ([]models.Sale, error) {
	return nil, nil
}
