package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"pescaderia-api/config"
	"pescaderia-api/controllers"
	"pescaderia-api/repositories"
	"pescaderia-api/routes"
	"pescaderia-api/seeders"
	"pescaderia-api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db := config.ConnectDatabase()

	inventory := repositories.NewInventoryRepository(db)
	sales := repositories.NewSaleRepository(db)

	catalog := services.NewCatalogService(inventory)
	carts := services.NewCartService(catalog, inventory)
	checkout := services.NewCheckoutService(carts, catalog, inventory, sales)
	reports := services.NewReportService(sales)

	r := gin.Default()

	// CORS before routes, same origin the POS front-end runs on
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(r, routes.Controllers{
		Products: controllers.NewProductController(db, inventory, catalog),
		Combos:   controllers.NewComboController(db, inventory, catalog),
		Carts:    controllers.NewCartController(carts, checkout),
		Sales:    controllers.NewSaleController(db, sales),
		Reports:  controllers.NewReportController(reports, sales, inventory),
	})

	seeders.Seed(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
