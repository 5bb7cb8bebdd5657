package main

import (
	"log"

	"github.com/HITECHSERVICE25/inventory-backend/internal/config"
	"github.com/HITECHSERVICE25/inventory-backend/internal/database"
	"github.com/HITECHSERVICE25/inventory-backend/internal/handlers"
	"github.com/HITECHSERVICE25/inventory-backend/internal/migrations"
	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/HITECHSERVICE25/inventory-backend/internal/redis"
	"github.com/HITECHSERVICE25/inventory-backend/internal/repository"
	"github.com/HITECHSERVICE25/inventory-backend/internal/services"
	"github.com/HITECHSERVICE25/inventory-backend/pkg/mailer"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize mail relay client
	mailClient := mailer.NewClient(cfg.MailAPIURL, cfg.MailUsername, cfg.MailPassword, cfg.MailFrom)

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(db)
	technicianRepo := repository.NewTechnicianRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	productRepo := repository.NewProductRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	installationRepo := repository.NewInstallationRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	allocationRepo := repository.NewAllocationRepository(db)

	// Initialize services
	notifier := services.NewNotificationService(mailClient, cfg.MailTo)
	orderService := services.NewOrderService(orderRepo, companyRepo, technicianRepo)
	settlementService := services.NewSettlementService(db, redisClient, notifier)
	technicianService := services.NewTechnicianService(technicianRepo, ledgerRepo)
	companyService := services.NewCompanyService(companyRepo)
	productService := services.NewProductService(productRepo, redisClient)
	commissionService := services.NewCommissionService(commissionRepo, technicianRepo, productRepo)
	paymentService := services.NewPaymentService(paymentRepo, technicianRepo)
	installationService := services.NewInstallationService(installationRepo, redisClient)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(orderService, settlementService)
	technicianHandler := handlers.NewTechnicianHandler(technicianService, settlementService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	productHandler := handlers.NewProductHandler(productService, settlementService, allocationRepo)
	commissionHandler := handlers.NewCommissionHandler(commissionService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	installationHandler := handlers.NewInstallationHandler(installationService, settlementService)

	// Setup routes
	router := gin.Default()
	router.Use(handlers.RateLimit(cfg.RateLimit))

	api := router.Group("/api")
	api.Use(handlers.Auth([]byte(cfg.JWTSecret)))
	{
		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.Create)
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Get)
			orders.PUT("/:id", orderHandler.Update)
			orders.DELETE("/:id", orderHandler.Delete)
			orders.POST("/:id/complete", orderHandler.Complete)
			orders.POST("/:id/discount/approve",
				handlers.RequireRole(string(models.RoleAdmin), string(models.RoleOwner)), orderHandler.ApproveDiscount)
			orders.POST("/:id/discount/reject",
				handlers.RequireRole(string(models.RoleAdmin), string(models.RoleOwner)), orderHandler.RejectDiscount)
		}

		technicians := api.Group("/technicians")
		{
			technicians.POST("", technicianHandler.Create)
			technicians.GET("", technicianHandler.List)
			technicians.GET("/:id", technicianHandler.Get)
			technicians.PUT("/:id", technicianHandler.Update)
			technicians.PUT("/:id/blocked", technicianHandler.SetBlocked)
			technicians.DELETE("/:id", technicianHandler.Delete)
			technicians.GET("/:id/balance", technicianHandler.Balance)
			technicians.GET("/:id/ledger", technicianHandler.Ledger)
			technicians.POST("/:id/reconcile", technicianHandler.ReconcileBalance)
			technicians.POST("/:id/payments", technicianHandler.RecordPayment)
			technicians.GET("/:id/payments", paymentHandler.ListByTechnician)
		}

		companies := api.Group("/companies")
		{
			companies.POST("", companyHandler.Create)
			companies.GET("", companyHandler.List)
			companies.GET("/:id", companyHandler.Get)
			companies.PUT("/:id", companyHandler.Update)
			companies.DELETE("/:id", companyHandler.Delete)
		}

		products := api.Group("/products")
		{
			products.POST("", productHandler.Create)
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		allocations := api.Group("/allocations")
		{
			allocations.POST("", productHandler.Allocate)
			allocations.GET("", productHandler.Allocations)
		}

		commissions := api.Group("/commissions")
		{
			commissions.POST("", commissionHandler.Create)
			commissions.GET("", commissionHandler.List)
			commissions.PUT("/:id", commissionHandler.Update)
			commissions.DELETE("/:id", commissionHandler.Delete)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", paymentHandler.List)
			payments.GET("/balances", paymentHandler.Balances)
			payments.GET("/:id", paymentHandler.Get)
		}

		installation := api.Group("/installation-charge")
		{
			installation.GET("", installationHandler.Current)
			installation.GET("/history", installationHandler.History)
			installation.PUT("",
				handlers.RequireRole(string(models.RoleAdmin), string(models.RoleOwner)), installationHandler.Update)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
