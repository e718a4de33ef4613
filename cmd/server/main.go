package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"book_market/internal/api"         // Custom package for API handlers
	"book_market/internal/config"      // Custom package for configuration
	"book_market/internal/db"          // Custom package for database access
	"book_market/internal/marketplace" // Marketplace service
	"book_market/internal/middleware"  // Custom package for middleware
	"book_market/internal/token"       // Identity token service

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Refuse to start on a weak signing key
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Connect to the database and apply the schema
	conn, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.AutoMigrate(conn); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Token service; the key length was already validated above
	tokens, err := token.New(cfg.JWTSecret, token.DefaultTTL)
	if err != nil {
		logrus.Fatalf("failed to build token service: %v", err)
	}

	// Marketplace service over the database and token service
	svc := marketplace.New(conn, tokens)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Liveness and public routes
	r.GET("/", func(c *gin.Context) { c.String(200, "Book Store API is running!") })
	r.POST("/register", api.RegisterHandler(svc))           // Registration endpoint
	r.POST("/login", api.LoginHandler(svc))                 // Login endpoint
	r.GET("/books", api.ListBooksHandler(svc, redisClient)) // Public listing endpoint

	// Authenticated routes
	auth := r.Group("")
	auth.Use(middleware.JWTAuthMiddleware(tokens))
	auth.POST("/buy/:bookId", api.BuyHandler(svc, redisClient))        // Purchase endpoint
	auth.GET("/myorders", api.MyOrdersHandler(svc))                    // Buyer order history endpoint
	auth.PUT("/books/:id", api.EditBookHandler(svc, redisClient))      // Edit listing endpoint (owner only)
	auth.DELETE("/books/:id", api.DeleteBookHandler(svc, redisClient)) // Remove listing endpoint (owner only)

	// Seller routes (seller flag re-checked against the database)
	seller := r.Group("")
	seller.Use(middleware.JWTAuthMiddleware(tokens), middleware.SellerOnlyMiddleware(conn))
	seller.POST("/books", api.AddBookHandler(svc, redisClient)) // Create listing endpoint
	seller.GET("/mybooks", api.MyBooksHandler(svc))             // Seller listing endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
