package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	AppEnv            string
	DBUrl             string
	SupabaseUrl       string
	SupabaseJWTSecret string
	FrontendURL       string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Chart Configuration
	ChartLocation     *time.Location // calendar used to derive YYYY-MM month keys
	ChartMonthlyLimit int
	ChartByJobLimit   int
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// JWKSURL returns the Supabase JWKS endpoint, or "" when Supabase is not configured.
func (c *Config) JWKSURL() string {
	if c.SupabaseUrl == "" {
		return ""
	}
	return c.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; production relies on real environment variables
	_ = godotenv.Load()

	cfg := &Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: strings.ToLower(getEnv("APP_ENV", "development")),
		DBUrl:  getEnv("DATABASE_URL", ""),
		// Trailing slash would produce .co//auth
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Chart Configuration
		ChartMonthlyLimit: getEnvInt("CHART_MONTHLY_LIMIT", 12),
		ChartByJobLimit:   getEnvInt("CHART_BY_JOB_LIMIT", 10),
	}

	loc, err := time.LoadLocation(getEnv("CHART_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid CHART_TIMEZONE: %w", err)
	}
	cfg.ChartLocation = loc

	if cfg.ChartMonthlyLimit <= 0 || cfg.ChartByJobLimit <= 0 {
		return nil, fmt.Errorf("config: chart limits must be positive (monthly=%d, by-job=%d)",
			cfg.ChartMonthlyLimit, cfg.ChartByJobLimit)
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.SupabaseJWTSecret == "" && cfg.SupabaseUrl == "" {
		log.Println("WARNING: neither SUPABASE_JWT_SECRET nor SUPABASE_URL is set. Every request will be rejected as unauthenticated.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
