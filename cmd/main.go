package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"zeddream-backend/internal/auth"
	"zeddream-backend/internal/cache"
	"zeddream-backend/internal/config"
	"zeddream-backend/internal/database"
	"zeddream-backend/internal/handlers"
	"zeddream-backend/internal/replicate"
	"zeddream-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Optional Redis cache; a missing REDIS_URL disables caching
	catalogCache := cache.New(cfg.Redis.URL)

	// Initialize services
	loyaltyService := services.NewLoyaltyService(database.GetDB())
	authService := services.NewAuthService(database.GetDB(), loyaltyService)
	orderService := services.NewOrderService(database.GetDB(), loyaltyService)
	productService := services.NewProductService(database.GetDB(), catalogCache)
	heroService := services.NewHeroService(database.GetDB(), catalogCache)
	reviewService := services.NewReviewService(database.GetDB(), loyaltyService)
	adminService := services.NewAdminService(database.GetDB(), loyaltyService)

	tryOnGenerator := replicate.NewClient(cfg.Replicate.APIToken, cfg.Replicate.Model)
	tryOnService := services.NewTryOnService(database.GetDB(), loyaltyService, tryOnGenerator)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	loyaltyHandler := handlers.NewLoyaltyHandler(loyaltyService)
	orderHandler := handlers.NewOrderHandler(orderService)
	productHandler := handlers.NewProductHandler(productService)
	heroHandler := handlers.NewHeroHandler(heroService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	tryOnHandler := handlers.NewTryOnHandler(tryOnService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000", // Local development
		"http://localhost:5173", // Vite dev server
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	// Add additional frontend URL from environment if provided
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	// Authenticated /api/auth/me route
	authProtected := router.Group("/api/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// Public catalog routes
	router.GET("/api/products", productHandler.List)
	router.GET("/api/products/categories", productHandler.Categories)
	router.GET("/api/products/:id", productHandler.Get)
	router.GET("/api/heroes", heroHandler.List)
	router.GET("/api/reviews/:productId", reviewHandler.List)

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Loyalty endpoints
		loyaltyRoutes := api.Group("/loyalty")
		{
			loyaltyRoutes.GET("/balance", loyaltyHandler.GetBalance)
			loyaltyRoutes.GET("/rewards", loyaltyHandler.GetRewards)
			loyaltyRoutes.POST("/redeem", loyaltyHandler.RedeemReward)
			loyaltyRoutes.POST("/profile-bonus", loyaltyHandler.ClaimProfileBonus)
		}

		// Order endpoints
		api.POST("/orders", orderHandler.Create)
		api.GET("/orders/myorders", orderHandler.GetMyOrders)
		api.POST("/orders/scan-qr", orderHandler.ScanQR)
		api.GET("/orders/:id", orderHandler.GetByID)
		api.GET("/orders/:id/qr", orderHandler.GetQRImage)

		// Review endpoints
		api.POST("/reviews/:productId", reviewHandler.Create)

		// Try-on endpoints
		tryOnRoutes := api.Group("/try-on")
		{
			tryOnRoutes.POST("/generate", tryOnHandler.Generate)
			tryOnRoutes.POST("/save", tryOnHandler.SaveLook)
			tryOnRoutes.GET("/saved", tryOnHandler.ListSaved)
			tryOnRoutes.DELETE("/:id", tryOnHandler.DeleteLook)
		}
	}

	// Staff routes (protected + admin or staff)
	staff := router.Group("/api")
	staff.Use(auth.AuthMiddleware())
	staff.Use(auth.RequireRoles("admin", "staff"))
	{
		staff.GET("/orders", orderHandler.ListAll)
		staff.GET("/admin/users", adminHandler.GetUsers)
		staff.GET("/admin/analytics", adminHandler.GetAnalytics)
	}

	// Couriers may also move orders through the pipeline
	fulfillment := router.Group("/api")
	fulfillment.Use(auth.AuthMiddleware())
	fulfillment.Use(auth.RequireRoles("admin", "staff", "delivery"))
	{
		fulfillment.PUT("/orders/:id", orderHandler.UpdateStatus)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api")
	admin.Use(auth.AuthMiddleware())
	admin.Use(auth.RequireRoles("admin"))
	{
		// Balance writes stay admin-only
		admin.PUT("/admin/users/:id/points", adminHandler.SetUserPoints)

		// Catalog management
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)
		admin.POST("/heroes", heroHandler.Create)
		admin.PUT("/heroes/:id", heroHandler.Update)
		admin.DELETE("/heroes/:id", heroHandler.Delete)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
