package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	AllowedOrigin string
	JWTSecret     string

	// Durable cart storage. Empty DSN degrades to session-only in-memory
	// collections (carts are lost on restart, nothing else changes).
	DBUrl             string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration

	// Remote commerce API (GraphQL)
	CommerceAPIURL     string
	CommerceAPITimeout time.Duration

	// Product cache
	CacheProductTTL time.Duration

	// Business rules (minor currency units: paise)
	FreeShippingThreshold int64
	ShippingFlatRate      int64
	TaxRateBasisPoints    int64
	MaxCartQuantity       int
}

func LoadConfig() *Config {
	// A specific config file can be requested via CONFIG_FILE; otherwise try
	// .env and fall back to system env vars (docker/prod).
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		}
	} else if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env vars")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		JWTSecret:     getEnv("JWT_SECRET", "default_secret_CHANGE_ME"),

		DBUrl:             getEnv("DB_DSN", ""),
		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 20),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		CommerceAPIURL:     getEnv("COMMERCE_API_URL", ""),
		CommerceAPITimeout: getDurationEnv("COMMERCE_API_TIMEOUT", 15*time.Second),

		CacheProductTTL: getDurationEnv("CACHE_PRODUCT_TTL", 10*time.Minute),

		// Defaults match the storefront: free shipping at ₹500, flat ₹25
		// shipping below it, 8% tax.
		FreeShippingThreshold: getInt64Env("FREE_SHIPPING_THRESHOLD", 50000),
		ShippingFlatRate:      getInt64Env("SHIPPING_FLAT_RATE", 2500),
		TaxRateBasisPoints:    getInt64Env("TAX_RATE_BP", 800),
		MaxCartQuantity:       getIntEnv("MAX_CART_QUANTITY", 1000),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.CommerceAPIURL == "" {
		log.Fatal("CRITICAL: COMMERCE_API_URL environment variable is required")
	}
	if c.JWTSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default JWT secret. Authenticated checkout will not verify real tokens.")
	}
	if c.DBUrl == "" {
		log.Println("WARNING: DB_DSN not set; carts will be session-only (lost on restart)")
	}
	if c.FreeShippingThreshold < 0 || c.ShippingFlatRate < 0 || c.TaxRateBasisPoints < 0 {
		log.Fatal("CRITICAL: pricing configuration must be non-negative")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
		log.Printf("Invalid int64 for %s, using fallback", key)
	}
	return fallback
}

func getInt32Env(key string, fallback int32) int32 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(i)
		}
		log.Printf("Invalid int32 for %s, using fallback", key)
	}
	return fallback
}
