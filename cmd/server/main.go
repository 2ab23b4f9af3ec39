package main

import (
	"context"                    // context package is needed for Redis operations
	"log"                        // log package is needed for logging
	"owambe/internal/api"        // Custom package for API handlers
	"owambe/internal/config"     // Custom package for configuration
	"owambe/internal/middleware" // Custom package for middleware
	"owambe/internal/notify"     // Realtime broadcast worker
	"owambe/internal/paystack"   // Payment provider client
	"owambe/internal/service"    // Transaction coordinator

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Realtime broadcasts go out over Redis pub/sub through a buffered
	// worker, so a slow or down Redis never blocks a spray
	broadcaster := notify.NewWorker(notify.NewRedisPublisher(redisClient), 256)
	broadcaster.Start()
	defer broadcaster.Shutdown()

	// Payment provider client and the transaction coordinator
	payClient := paystack.NewClient(cfg.PaystackBaseURL, cfg.PaystackSecret)
	svc := service.New(db, service.DefaultLimits(), broadcaster, payClient, cfg.PaystackWebhookSecret, cfg.ScreenModeSecret)

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

	// Auth routes
	r.POST("/auth/register", api.RegisterHandler(db))            // Registration endpoint
	r.GET("/auth/login", api.LoginHandler(db, cfg.JWTSecret))    // Login endpoint

	// Provider webhook: authenticated by signature, not bearer token
	r.POST("/webhooks/paystack", api.PaystackWebhookHandler(svc))

	// Event routes (protected by JWT)
	eventGroup := r.Group("/events")
	eventGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	eventGroup.POST("", api.CreateEventHandler(svc))                // Create event endpoint
	eventGroup.POST("/join", api.JoinEventHandler(svc))             // Join event endpoint
	eventGroup.POST("/recipients", api.AddRecipientHandler(svc))    // Add recipient endpoint (host only)
	eventGroup.POST("/spray", api.SprayHandler(svc, redisClient))   // Spray endpoint

	// Wallet routes (protected by JWT)
	walletGroup := r.Group("/wallet")
	walletGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	walletGroup.GET("", api.GetWalletHandler(svc, redisClient))                         // Get wallet endpoint
	walletGroup.POST("/fund", api.InitFundHandler(svc))                                 // Fund initialization endpoint
	walletGroup.POST("/withdraw", api.WithdrawHandler(svc, redisClient))                // Withdrawal endpoint
	walletGroup.GET("/transactions", api.GetTransactionHistoryHandler(db, redisClient)) // Transaction history endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/transactions", api.ListTransactionsHandler(db, redisClient)) // List transactions endpoint
	adminGroup.GET("/audit-logs", api.ListAuditLogsHandler(db))                   // Audit trail endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
