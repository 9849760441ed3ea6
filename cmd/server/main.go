package main

import (
	"log"
	"time"

	"btc-backoffice/config"
	"btc-backoffice/internal/handler"
	"btc-backoffice/internal/middleware"
	"btc-backoffice/internal/models"
	"btc-backoffice/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load Configuration
	config.LoadConfig()

	// 2. Connect to Database
	database.Connect()

	// 3. Auto-Migrate Models
	log.Println("Running migrations...")

	err := database.DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Location{},
		&models.Salesperson{},
		&models.Product{},
		&models.TransitionLog{},
		&models.GoldRate{},
		&models.Invoice{},
		&models.InvoiceItem{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully.")

	// 3a. Seed Data
	database.SeedRolesAndAdmin()

	// 4. Initialize Router
	r := gin.Default()

	// CORS Configuration
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 5. Setup Routes
	authHandler := &handler.AuthHandler{}
	authRoutes := r.Group("/api/v1/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/salesperson-login", authHandler.SalespersonLogin)
	}

	userRoutes := r.Group("/api/v1/user")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.PUT("/password", authHandler.ChangePassword)
	}

	adminHandler := &handler.AdminHandler{}
	rateHandler := &handler.RateHandler{}
	inventoryHandler := &handler.InventoryHandler{}
	transferHandler := handler.NewTransferHandler(database.DB)
	invoiceHandler := handler.NewInvoiceHandler(database.DB, config.AppConfig.Defaults.InvoicePrefix)

	adminRoutes := r.Group("/api/v1/admin")
	adminRoutes.Use(middleware.AuthMiddleware("admin"))
	{
		adminRoutes.POST("/salespersons", adminHandler.CreateSalesperson)
		adminRoutes.GET("/salespersons", adminHandler.ListSalespersons)
		adminRoutes.GET("/salespersons/:id", adminHandler.GetSalesperson)
		adminRoutes.PUT("/salespersons/:id", adminHandler.UpdateSalesperson)
		adminRoutes.DELETE("/salespersons/:id", adminHandler.DeleteSalesperson)

		adminRoutes.POST("/locations", adminHandler.CreateLocation)
		adminRoutes.GET("/locations", adminHandler.ListLocations)
		adminRoutes.GET("/locations/:id", adminHandler.GetLocation)
		adminRoutes.DELETE("/locations/:id", adminHandler.DeleteLocation)

		adminRoutes.GET("/rate", rateHandler.GetRate)
		adminRoutes.PUT("/rate", rateHandler.UpdateRate)
		adminRoutes.GET("/logs", adminHandler.GetLogs)

		adminRoutes.POST("/products", inventoryHandler.CreateProduct)
		adminRoutes.GET("/products", inventoryHandler.ListProducts)

		adminRoutes.POST("/assignments", transferHandler.Assign)
		adminRoutes.PUT("/returns/respond", transferHandler.RespondReturn)
	}

	salesHandler := &handler.SalesHandler{}
	salesRoutes := r.Group("/api/v1/sales")
	salesRoutes.Use(middleware.AuthMiddleware("salesperson"))
	{
		salesRoutes.GET("/me", salesHandler.GetMe)
		salesRoutes.PUT("/assignments/respond", transferHandler.RespondAssignment)
		salesRoutes.PUT("/returns/apply", transferHandler.ApplyReturn)

		salesRoutes.POST("/invoices", invoiceHandler.CreateInvoice)
		salesRoutes.GET("/invoices", invoiceHandler.ListInvoices)
		salesRoutes.GET("/invoices/:id", invoiceHandler.GetInvoice)
	}

	// Shared reads for both portals
	r.GET("/api/v1/inventory/products/:id", middleware.AuthMiddleware(), inventoryHandler.GetProduct)
	r.GET("/api/v1/inventory/rate", middleware.AuthMiddleware(), rateHandler.GetRate)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 6. Start Server
	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
