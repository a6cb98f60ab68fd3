package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pescaderia-api/models"
	"pescaderia-api/repositories"
	"pescaderia-api/services"
)

type ProductController struct {
	db        *gorm.DB
	inventory *repositories.InventoryRepository
	catalog   *services.CatalogService
}

func NewProductController(db *gorm.DB, inventory *repositories.InventoryRepository, catalog *services.CatalogService) *ProductController {
	return &ProductController{db: db, inventory: inventory, catalog: catalog}
}

// GET /products?name=
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	query := ctrl.db.Model(&models.Product{})
	if name := c.Query("name"); name != "" {
		for _, term := range strings.Fields(strings.ToLower(strings.TrimSpace(name))) {
			query = query.Where("LOWER(name) LIKE ?", "%"+term+"%")
		}
	}

	var products []models.Product
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /products/active — served from the catalog snapshot, same view the
// sale screen lists from.
func (ctrl *ProductController) GetActiveProducts(c *gin.Context) {
	products, err := ctrl.catalog.Products(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /products/low-stock
func (ctrl *ProductController) GetLowStockProducts(c *gin.Context) {
	products, err := ctrl.inventory.LowStockProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	var product models.Product
	if err := ctrl.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// GET /products/:id/stock?quantity=
func (ctrl *ProductController) CheckProductStock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}
	quantity, err := strconv.ParseFloat(c.DefaultQuery("quantity", "1"), 64)
	if err != nil || quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	hasStock, err := ctrl.inventory.HasStock(c.Request.Context(), models.KindProduct, uint(id), quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasStock": hasStock})
}

// POST /products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var input models.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Product
	if err := ctrl.db.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A product with this name already exists"})
		return
	}

	if err := ctrl.db.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctrl.catalog.Invalidate()
	c.JSON(http.StatusCreated, input)
}

// PUT /products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := ctrl.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var input models.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product.Name = input.Name
	product.PricePerPound = input.PricePerPound
	product.StockPounds = input.StockPounds
	product.Packaging = input.Packaging
	product.Active = input.Active

	if err := ctrl.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctrl.catalog.Invalidate()
	c.JSON(http.StatusOK, product)
}

// PATCH /products/:id/toggle-active
func (ctrl *ProductController) ToggleProductActive(c *gin.Context) {
	var product models.Product
	if err := ctrl.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	product.Active = !product.Active
	if err := ctrl.db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctrl.catalog.Invalidate()
	c.JSON(http.StatusOK, product)
}

// DELETE /products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	var product models.Product
	if err := ctrl.db.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := ctrl.db.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete"})
		return
	}

	ctrl.catalog.Invalidate()
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
