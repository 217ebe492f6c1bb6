package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/JonOuellette/Twitter-Close-Warbler/internal/config"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/constants"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/database"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/handlers"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/logger"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/middleware"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/repository"
	"github.com/JonOuellette/Twitter-Close-Warbler/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.GinMode)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logrus.Fatalf("Failed to create indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logrus.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, followRepo, messageRepo)
	messageService := services.NewMessageService(messageRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	messageHandler := handlers.NewMessageHandler(messageService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Warbler API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User routes; browsing is public, the follow graph requires auth
		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/following", middleware.RequireAuth(), userHandler.ListFollowing)
			users.GET("/:id/followers", middleware.RequireAuth(), userHandler.ListFollowers)
			users.GET("/:id/likes", middleware.RequireAuth(), userHandler.ListLikes)
			users.POST("/:id/follow", middleware.RequireAuth(), userHandler.Follow)
			users.DELETE("/:id/follow", middleware.RequireAuth(), userHandler.Unfollow)
			users.PATCH("/profile", middleware.RequireAuth(), authHandler.UpdateProfile)
			users.DELETE("/profile", middleware.RequireAuth(), authHandler.DeleteAccount)
		}

		// Message routes
		messages := api.Group("/messages")
		{
			messages.GET("/feed", middleware.RequireAuth(), messageHandler.HomeFeed)
			messages.POST("", middleware.RequireAuth(), messageHandler.CreateMessage)
			messages.GET("/:id", messageHandler.GetMessage)
			messages.DELETE("/:id", middleware.RequireAuth(), messageHandler.DeleteMessage)
			messages.POST("/:id/like", middleware.RequireAuth(), messageHandler.ToggleLike)
		}
	}

	// Start server
	logrus.Info("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
