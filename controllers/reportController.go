package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pescaderia-api/repositories"
	"pescaderia-api/services"
)

type ReportController struct {
	reports   *services.ReportService
	sales     *repositories.SaleRepository
	inventory *repositories.InventoryRepository
}

func NewReportController(reports *services.ReportService, sales *repositories.SaleRepository, inventory *repositories.InventoryRepository) *ReportController {
	return &ReportController{reports: reports, sales: sales, inventory: inventory}
}

// parseDateRange turns optional start/end (YYYY-MM-DD, end inclusive) into a
// half-open interval. Missing bounds fall back to an open range.
func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start := time.Time{}
	end := time.Now().Add(24 * time.Hour)

	if startStr != "" {
		parsed, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date, want YYYY-MM-DD")
		}
		start = parsed
	}
	if endStr != "" {
		parsed, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date, want YYYY-MM-DD")
		}
		end = parsed.Add(24 * time.Hour)
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("end date is before start date")
	}
	return start, end, nil
}

// GET /reports/sales?granularity=day|month&start=&end=
func (ctrl *ReportController) GetSalesReport(c *gin.Context) {
	granularity, err := services.ParseGranularity(c.Query("granularity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	buckets, err := ctrl.reports.SalesReport(c.Request.Context(), start, end, granularity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"granularity": granularity,
		"buckets":     buckets,
	})
}

// GET /dashboard — today's totals, recent sales, and low-stock alerts.
func (ctrl *ReportController) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := ctrl.sales.TodaySummary(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recent, err := ctrl.sales.RecentSales(ctx, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lowStock, err := ctrl.inventory.LowStockProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"today_total":        summary.Total,
		"today_transactions": summary.Count,
		"recent_sales":       recent,
		"low_stock_products": lowStock,
	})
}
