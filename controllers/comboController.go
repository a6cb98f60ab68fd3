package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pescaderia-api/models"
	"pescaderia-api/repositories"
	"pescaderia-api/services"
)

type ComboController struct {
	db        *gorm.DB
	inventory *repositories.InventoryRepository
	catalog   *services.CatalogService
}

func NewComboController(db *gorm.DB, inventory *repositories.InventoryRepository, catalog *services.CatalogService) *ComboController {
	return &ComboController{db: db, inventory: inventory, catalog: catalog}
}

// GET /combos
func (ctrl *ComboController) GetCombos(c *gin.Context) {
	var combos []models.Combo
	if err := ctrl.db.Preload("Products.Product").Order("name ASC").Find(&combos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for i := range combos {
		combos[i].FillSavings()
	}
	c.JSON(http.StatusOK, combos)
}

// GET /combos/active
func (ctrl *ComboController) GetActiveCombos(c *gin.Context) {
	combos, err := ctrl.catalog.Combos(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, combos)
}

// GET /combos/:id
func (ctrl *ComboController) GetComboByID(c *gin.Context) {
	var combo models.Combo
	if err := ctrl.db.Preload("Products.Product").First(&combo, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Combo not found"})
		return
	}
	combo.FillSavings()
	c.JSON(http.StatusOK, combo)
}

// GET /combos/:id/stock?quantity=
func (ctrl *ComboController) CheckComboStock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid combo id"})
		return
	}
	quantity, err := strconv.ParseFloat(c.DefaultQuery("quantity", "1"), 64)
	if err != nil || quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	hasStock, err := ctrl.inventory.HasStock(c.Request.Context(), models.KindCombo, uint(id), quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasStock": hasStock})
}

// POST /combos
func (ctrl *ComboController) CreateCombo(c *gin.Context) {
	var input models.Combo
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.Products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A combo needs at least one product"})
		return
	}

	for _, cp := range input.Products {
		var product models.Product
		if err := ctrl.db.First(&product, cp.ProductID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Combo references a product that does not exist"})
			return
		}
	}

	if err := ctrl.db.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctrl.catalog.Invalidate()
	c.JSON(http.StatusCreated, input)
}

// PUT /combos/:id
func (ctrl *ComboController) UpdateCombo(c *gin.Context) {
	var combo models.Combo
	if err := ctrl.db.Preload("Products").First(&combo, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Combo not found"})
		return
	}

	var input models.Combo
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.Products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A combo needs at least one product"})
		return
	}

	err := ctrl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("combo_id = ?", combo.ID).Delete(&models.ComboProduct{}).Error; err != nil {
			return err
		}

		combo.Name = input.Name
		combo.Description = input.Description
		combo.Price = input.Price
		combo.Active = input.Active
		combo.Products = input.Products

		return tx.Save(&combo).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctrl.catalog.Invalidate()
	c.JSON(http.StatusOK, combo)
}

// PATCH /combos/:id/toggle-active
func (ctrl *ComboController) ToggleComboActive(c *gin.Context) {
	var combo models.Combo
	if err := ctrl.db.First(&combo, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Combo not found"})
		return
	}

	combo.Active = !combo.Active
	if err := ctrl.db.Save(&combo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctrl.catalog.Invalidate()
	c.JSON(http.StatusOK, combo)
}

// DELETE /combos/:id
func (ctrl *ComboController) DeleteCombo(c *gin.Context) {
	var combo models.Combo
	if err := ctrl.db.First(&combo, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Combo not found"})
		return
	}

	err := ctrl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("combo_id = ?", combo.ID).Delete(&models.ComboProduct{}).Error; err != nil {
			return err
		}
		return tx.Delete(&combo).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete"})
		return
	}

	ctrl.catalog.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "Combo deleted"})
}
