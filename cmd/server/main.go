package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"lendcheck/internal/adapters/http/middleware"
	"lendcheck/internal/adapters/http/routes"
	"lendcheck/internal/adapters/persistence/cache"
	"lendcheck/internal/adapters/persistence/models"
	"lendcheck/internal/config"
	"lendcheck/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title LendCheck API
// @version 1.0
// @description Loan eligibility and EMI risk scoring API

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	// Seed loan product master data
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Verdict cache: Redis when enabled, in-process otherwise
	var cacheRepo cache.CacheRepository
	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr)
		defer redisCache.Close()
		cacheRepo = redisCache
	} else {
		cacheRepo = cache.NewMemoryCache()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "LendCheck API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	eligibilityService := routes.Setup(app, db, cfg, cacheRepo)

	// Scheduled bulk scan + token cleanup
	cronService := services.NewCronService(db, cfg, eligibilityService)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron service: %v", err)
	}
	defer cronService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
