package main

import (
	"context" // context package is needed for Redis operations

	"tabungan/internal/api"    // Custom package for API handlers
	"tabungan/internal/auth"   // Custom package for authentication
	"tabungan/internal/config" // Custom package for configuration
	"tabungan/internal/db"     // Custom package for database setup
	"tabungan/internal/ledger" // Custom package for ledger rules
	"tabungan/internal/store"  // Custom package for persistence
	"tabungan/internal/utils"  // Custom package for sessions and cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Connect to the database and make sure the schema exists
	gdb, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}
	if err := db.Seed(gdb, cfg.SeedDemo); err != nil {
		logrus.Fatalf("failed to seed DB: %v", err)
	}

	// Setup Redis client, optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set: dashboard caching and idempotency keys are disabled")
	}

	// Session cookies
	if cfg.SessionSecret == config.DefaultSessionSecret {
		if cfg.IsProd {
			logrus.Fatal("SESSION_SECRET must be set in production")
		}
		logrus.Warn("Using development SESSION_SECRET")
	}
	sessions, err := utils.NewSessionCodec(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		logrus.Fatalf("failed to set up sessions: %v", err)
	}

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

	st := store.New(gdb)
	api.RegisterRoutes(r, api.Deps{
		Store:         st,
		Ledger:        ledger.New(st),
		Auth:          auth.NewService(st),
		Sessions:      sessions,
		Cache:         utils.NewCache(redisClient),
		Location:      cfg.Location(),
		SecureCookies: cfg.IsProd,
		AppName:       cfg.AppName,
	})

	logrus.WithField("port", cfg.AppPort).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
