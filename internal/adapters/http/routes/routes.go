package routes

import (
	"lendcheck/internal/adapters/http/handlers"
	"lendcheck/internal/adapters/http/middleware"
	"lendcheck/internal/adapters/persistence/cache"
	"lendcheck/internal/adapters/persistence/repositories"
	"lendcheck/internal/config"
	"lendcheck/internal/core/engine"
	"lendcheck/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the
// eligibility service so the scheduler can share it.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, cacheRepo cache.CacheRepository) *services.EligibilityService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	productRepo := repositories.NewLoanProductRepository(db)
	applicantRepo := repositories.NewApplicantProfileRepository(db)
	applicationRepo := repositories.NewLoanApplicationRepository(db)
	riskRepo := repositories.NewRiskAssessmentRepository(db)

	// Decision engine, calibrated from config
	eng := engine.New(cfg.EnginePolicy())

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	productService := services.NewLoanProductService(productRepo)
	applicantService := services.NewApplicantService(applicantRepo)
	eligibilityService := services.NewEligibilityService(applicationRepo, riskRepo, eng, cacheRepo)
	applicationService := services.NewLoanApplicationService(
		applicationRepo,
		applicantRepo,
		productRepo,
		riskRepo,
		eligibilityService,
	)
	dashboardService := services.NewDashboardService(applicationRepo, riskRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewLoanProductHandler(productService)
	applicantHandler := handlers.NewApplicantHandler(applicantService)
	applicationHandler := handlers.NewLoanApplicationHandler(applicationService)
	eligibilityHandler := handlers.NewEligibilityHandler(eligibilityService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public + protected)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	authRoutes.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)

	// User management routes (Admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.AdminOnly())
	userRoutes.Get("/", userHandler.ListUsers)
	userRoutes.Get("/:id", userHandler.GetUser)

	// Loan product routes (read for all authenticated, write for admin)
	productRoutes := apiV1.Group("/loan-products")
	productRoutes.Use(middleware.AuthMiddleware(cfg))
	productRoutes.Get("/", productHandler.List)
	productRoutes.Get("/code/:code", productHandler.GetByCode)
	productRoutes.Get("/:id", productHandler.GetByID)

	productAdminRoutes := productRoutes.Group("")
	productAdminRoutes.Use(middleware.AdminOnly())
	productAdminRoutes.Post("/", productHandler.Create)
	productAdminRoutes.Put("/:id", productHandler.Update)
	productAdminRoutes.Delete("/:id", productHandler.Delete)

	// Applicant profile routes (Authenticated users)
	applicantRoutes := apiV1.Group("/applicants")
	applicantRoutes.Use(middleware.AuthMiddleware(cfg))
	applicantRoutes.Post("/", applicantHandler.Create)
	applicantRoutes.Get("/my", applicantHandler.ListMine)
	applicantRoutes.Get("/user/:user_id", middleware.AdminOnly(), applicantHandler.ListByUser)
	applicantRoutes.Get("/:id", applicantHandler.GetByID)
	applicantRoutes.Put("/:id", applicantHandler.Update)

	// Loan application routes
	applicationRoutes := apiV1.Group("/loan-applications")
	applicationRoutes.Use(middleware.AuthMiddleware(cfg))
	applicationRoutes.Post("/applicant/:applicant_id/product/:product_id", applicationHandler.Apply)
	applicationRoutes.Get("/applicant/:applicant_id", applicationHandler.ListByApplicant)
	applicationRoutes.Get("/:id", applicationHandler.GetByID)

	applicationAdminRoutes := applicationRoutes.Group("")
	applicationAdminRoutes.Use(middleware.AdminOnly())
	applicationAdminRoutes.Get("/", applicationHandler.List)
	applicationAdminRoutes.Put("/:id/status", applicationHandler.UpdateStatus)

	// Eligibility scan routes (Admin only)
	eligibilityRoutes := apiV1.Group("/eligibility-risk")
	eligibilityRoutes.Use(middleware.AuthMiddleware(cfg))
	eligibilityRoutes.Use(middleware.AdminOnly())
	eligibilityRoutes.Post("/scan/all", eligibilityHandler.ScanAll)
	eligibilityRoutes.Get("/applications/:id/assessments", eligibilityHandler.AssessmentHistory)

	// Dashboard routes (Admin only)
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Use(middleware.AdminOnly())
	dashboardRoutes.Get("/summary", dashboardHandler.GetSummary)

	return eligibilityService
}
