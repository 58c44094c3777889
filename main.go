package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/marti-georgiev/camprating/config"
	"github.com/marti-georgiev/camprating/handlers"
	"github.com/marti-georgiev/camprating/middleware"
	"github.com/marti-georgiev/camprating/models"
	"github.com/marti-georgiev/camprating/repositories"
	"github.com/marti-georgiev/camprating/services"
	"github.com/marti-georgiev/camprating/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	db := config.InitDB()

	if err := config.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Photo uploads live under the public static-asset root
	photoRoot := os.Getenv("PHOTO_PATH")
	if photoRoot == "" {
		photoRoot = "public"
	}
	photoStore, err := storage.NewLocalPhotoStore(photoRoot)
	if err != nil {
		log.Fatalf("Failed to initialize photo store: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	campPlaceRepo := repositories.NewCampPlaceRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	campPlaceService := services.NewCampPlaceService(campPlaceRepo, photoStore)
	reviewService := services.NewReviewService(reviewRepo, campPlaceRepo)
	userService := services.NewUserService(userRepo)
	homeService := services.NewHomeService(campPlaceRepo, reviewRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	campPlaceHandler := handlers.NewCampPlaceHandler(campPlaceService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	userHandler := handlers.NewUserHandler(userService)
	homeHandler := handlers.NewHomeHandler(homeService)

	// Setup router
	router := gin.Default()
	router.Use(middleware.RequestID())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Uploaded photos are publicly reachable
	router.Static("/images", filepath.Join(photoRoot, "images"))

	// Home/search and static pages
	router.GET("/", middleware.OptionalAuth(), homeHandler.Index)
	router.GET("/privacy", homeHandler.Privacy)
	router.GET("/access-denied", homeHandler.AccessDenied)
	router.GET("/error", homeHandler.Error)

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public browsing
		v1.GET("/campplaces", campPlaceHandler.List)
		v1.GET("/campplaces/:id", campPlaceHandler.Details)

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Profile
			protected.GET("/profile", authHandler.GetProfile)

			// Camp places
			campPlaces := protected.Group("/campplaces")
			{
				campPlaces.POST("", campPlaceHandler.Create)
				campPlaces.PUT("/:id", campPlaceHandler.Update)
				campPlaces.DELETE("/:id", campPlaceHandler.Delete)
			}

			// Reviews
			reviews := protected.Group("/reviews")
			{
				reviews.GET("", reviewHandler.List)
				reviews.POST("", reviewHandler.Create)
				reviews.PUT("/:id", reviewHandler.Update)
				reviews.DELETE("/:id", reviewHandler.Delete)
			}

			// User administration (Admin only)
			users := protected.Group("/users")
			users.Use(middleware.RequireRole(models.RoleAdmin))
			{
				users.GET("", userHandler.List)
				users.PUT("/:id", userHandler.Edit)
				users.DELETE("/:id", userHandler.Delete)
			}
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
