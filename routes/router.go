package routes

import (
	"github.com/gin-gonic/gin"

	"pescaderia-api/controllers"
)

type Controllers struct {
	Products *controllers.ProductController
	Combos   *controllers.ComboController
	Carts    *controllers.CartController
	Sales    *controllers.SaleController
	Reports  *controllers.ReportController
}

func RegisterRoutes(r *gin.Engine, ctrl Controllers) {

	// Catalog
	products := r.Group("/products")
	{
		products.GET("/", ctrl.Products.GetProducts)
		products.GET("/active", ctrl.Products.GetActiveProducts)
		products.GET("/low-stock", ctrl.Products.GetLowStockProducts)
		products.GET("/:id", ctrl.Products.GetProductByID)
		products.GET("/:id/stock", ctrl.Products.CheckProductStock)
		products.POST("/", ctrl.Products.CreateProduct)
		products.PUT("/:id", ctrl.Products.UpdateProduct)
		products.PATCH("/:id/toggle-active", ctrl.Products.ToggleProductActive)
		products.DELETE("/:id", ctrl.Products.DeleteProduct)
	}

	combos := r.Group("/combos")
	{
		combos.GET("/", ctrl.Combos.GetCombos)
		combos.GET("/active", ctrl.Combos.GetActiveCombos)
		combos.GET("/:id", ctrl.Combos.GetComboByID)
		combos.GET("/:id/stock", ctrl.Combos.CheckComboStock)
		combos.POST("/", ctrl.Combos.CreateCombo)
		combos.PUT("/:id", ctrl.Combos.UpdateCombo)
		combos.PATCH("/:id/toggle-active", ctrl.Combos.ToggleComboActive)
		combos.DELETE("/:id", ctrl.Combos.DeleteCombo)
	}

	// Checkout sessions
	carts := r.Group("/carts")
	{
		carts.POST("/", ctrl.Carts.CreateCart)
		carts.GET("/:id", ctrl.Carts.GetCart)
		carts.PATCH("/:id", ctrl.Carts.UpdateCart)
		carts.POST("/:id/items", ctrl.Carts.AddCartItem)
		carts.DELETE("/:id/items/:index", ctrl.Carts.RemoveCartItem)
		carts.POST("/:id/checkout", ctrl.Carts.CheckoutCart)
		carts.DELETE("/:id", ctrl.Carts.CancelCart)
	}

	// Confirmed sales
	sales := r.Group("/sales")
	{
		sales.GET("/", ctrl.Sales.GetSales)
		sales.GET("/range", ctrl.Sales.GetSalesByRange)
		sales.GET("/:id", ctrl.Sales.GetSaleByID)
	}

	// Reporting
	reports := r.Group("/reports")
	{
		reports.GET("/sales", ctrl.Reports.GetSalesReport)
	}

	r.GET("/dashboard", ctrl.Reports.GetDashboard)
}
