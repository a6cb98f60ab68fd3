package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pescaderia-api/models"
	"pescaderia-api/repositories"
)

type SaleController struct {
	db    *gorm.DB
	sales *repositories.SaleRepository
}

func NewSaleController(db *gorm.DB, sales *repositories.SaleRepository) *SaleController {
	return &SaleController{db: db, sales: sales}
}

// GET /sales?page=&limit=&date=
func (ctrl *SaleController) GetSales(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := ctrl.db.Model(&models.Sale{})
	if filterDate := c.Query("date"); filterDate != "" {
		start, err := time.Parse("2006-01-02", filterDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, want YYYY-MM-DD"})
			return
		}
		end := start.Add(24 * time.Hour)
		query = query.Where("created_at >= ? AND created_at < ?", start, end)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var sales []models.Sale
	if err := query.Preload("Details").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       sales,
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": int((total + int64(limit) - 1) / int64(limit)),
	})
}

// GET /sales/range?start=&end=
func (ctrl *SaleController) GetSalesByRange(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sales, err := ctrl.sales.SalesBetween(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GET /sales/:id
func (ctrl *SaleController) GetSaleByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale id"})
		return
	}

	sale, err := ctrl.sales.SaleByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}
	c.JSON(http.StatusOK, sale)
}
