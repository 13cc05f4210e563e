package main

import (
	"log"
	"time"

	"trimly-be/internal/cache"
	"trimly-be/internal/config"
	"trimly-be/internal/controllers"
	"trimly-be/internal/database"
	"trimly-be/internal/jwt"
	"trimly-be/internal/middleware"
	"trimly-be/internal/repository"
	"trimly-be/internal/service"
	"trimly-be/internal/shortcode"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repositories
	urlRepo := repository.NewURLRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTLHours)*time.Hour,
	)

	// Initialize services
	urlService := service.NewURLService(urlRepo, shortcode.NewGenerator(), cacheClient, cfg.BaseURL)
	authService := service.NewAuthService(userRepo, jwtService)

	// Initialize controllers
	shortenerController := controllers.NewShortenerController(urlService)
	authController := controllers.NewAuthController(authService)
	qrcodeController := controllers.NewQRCodeController(cfg.BaseURL)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Public redirect endpoint
	router.GET("/:shortCode", shortenerController.RedirectToURL)

	// API v1 routes group
	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		// Shorten accepts anonymous callers; authenticated ones own the record
		api.POST("/shorten", middleware.OptionalAuthMiddleware(jwtService), shortenerController.CreateShortURL)

		// Protected routes - require JWT authentication
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.GET("/urls", shortenerController.GetUserURLs)
			protected.PUT("/url/:id", shortenerController.UpdateURL)
			protected.DELETE("/url/:id", shortenerController.DeleteURL)
		}

		// QR Code generation
		api.GET("/qrcode/:shortCode", qrcodeController.GenerateQRCode)
	}

	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
