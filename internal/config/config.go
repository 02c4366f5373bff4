package config

import (
	"os"            // For environment variables
	"strconv"       // For string to int conversion
	"time"          // For durations and locations
	_ "time/tzdata" // Embedded zone database for images without tzdata

	"github.com/joho/godotenv"   // For loading .env files
	"github.com/sirupsen/logrus" // Logging
)

// Config holds the application configuration
type Config struct {
	AppPort       string        // Application port
	AppName       string        // Display name of the application
	DBDriver      string        // Database driver: mysql, postgres or sqlite
	DBUser        string        // Database user
	DBPassword    string        // Database password
	DBHost        string        // Database host
	DBPort        string        // Database port
	DBName        string        // Database name (file path for sqlite)
	DatabaseURL   string        // Full DSN, overrides the composed one
	SessionSecret string        // Secret used to sign and encrypt session cookies
	SessionTTL    time.Duration // Absolute session lifetime
	RedisAddr     string        // Redis server address
	RedisPass     string        // Redis password
	RedisDB       int           // Redis database number
	IsProd        bool          // Is production environment
	Timezone      string        // Timezone used for day boundaries
	SeedDemo      bool          // Seed the demo student and member login
}

// Defaults used when the environment leaves a value empty.
const (
	DefaultPort          = "8080"
	DefaultAppName       = "Tabungan Santri Alhidayah"
	DefaultDriver        = "mysql"
	DefaultSessionSecret = "dev-secret"
	DefaultSessionTTL    = 8 * time.Hour
	DefaultTimezone      = "Asia/Jakarta"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	ttl, err := time.ParseDuration(os.Getenv("SESSION_TTL"))
	if err != nil || ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Config{
		AppPort:       getenv("APP_PORT", DefaultPort),                // Application port
		AppName:       getenv("APP_NAME", DefaultAppName),             // Application name
		DBDriver:      getenv("DB_DRIVER", DefaultDriver),             // Database driver
		DBUser:        os.Getenv("DB_USER"),                           // Database user
		DBPassword:    os.Getenv("DB_PASSWORD"),                       // Database password
		DBHost:        os.Getenv("DB_HOST"),                           // Database host
		DBPort:        os.Getenv("DB_PORT"),                           // Database port
		DBName:        os.Getenv("DB_NAME"),                           // Database name
		DatabaseURL:   os.Getenv("DATABASE_URL"),                      // DSN override
		SessionSecret: getenv("SESSION_SECRET", DefaultSessionSecret), // Session secret
		SessionTTL:    ttl,                                            // Session lifetime
		RedisAddr:     os.Getenv("REDIS_ADDR"),                        // Redis server address
		RedisPass:     os.Getenv("REDIS_PASS"),                        // Redis password
		RedisDB:       redisDB,                                        // Redis database number
		IsProd:        os.Getenv("IS_PROD") == "true",                 // Is production environment
		Timezone:      getenv("APP_TIMEZONE", DefaultTimezone),        // Day boundary timezone
		SeedDemo:      os.Getenv("SEED_DEMO") != "false",              // Demo seed toggle
	}
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DBDriver {
	case "postgres":
		return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword +
			" dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=disable"
	case "sqlite":
		return c.DBName
	default:
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
	}
}

// Location resolves the configured timezone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		logrus.WithError(err).WithField("timezone", c.Timezone).Warn("Unknown timezone, falling back to UTC")
		return time.UTC
	}
	return loc
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
