package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/http/middleware"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/http/routes"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/models"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/adapters/persistence/repositories"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/config"
	"github.com/NSEMOH1/COOPLINK-BACKEND/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed master data (loan categories, rank tiers, savings products)
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CoopLink API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Background sweeps (payment reminders, overdue notices)
	stores := repositories.NewStores(db)
	scheduler := services.NewSchedulerService(stores, services.NewNotificationService(stores.Notifications))
	scheduler.Start()

	// Graceful shutdown
	go gracefulShutdown(app, scheduler)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, scheduler *services.SchedulerService) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	scheduler.Stop()
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
