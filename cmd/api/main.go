package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hr-dashboard-backend/config"
	_ "go-hr-dashboard-backend/docs" // Important for Swagger
	v1 "go-hr-dashboard-backend/internal/delivery/http/v1"
	"go-hr-dashboard-backend/internal/repository/postgres"
	"go-hr-dashboard-backend/internal/usecase"
	"go-hr-dashboard-backend/pkg/auth"
	"go-hr-dashboard-backend/pkg/database"
	"go-hr-dashboard-backend/pkg/logger"
	"go-hr-dashboard-backend/pkg/redis"
	"go-hr-dashboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// @title           HR Dashboard API
// @version         1.0
// @description     Application statistics charts for the HR dashboard.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := run(cfg); err != nil {
		logger.Log.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

// run serves until SIGINT/SIGTERM or until the listener fails.
func run(cfg *config.Config) error {
	// 2. Setup Loggers
	logger.Init(cfg.IsProduction())
	securityLogger := security.InitSecurityLogger("hr-dashboard", cfg.AppEnv)
	defer securityLogger.Sync()
	logger.Log.Info("Starting HR dashboard backend", "port", cfg.Port, "env", cfg.AppEnv, "chart_timezone", cfg.ChartLocation.String())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, rate limiting falls back to memory)
	var redisHealth func(context.Context) error
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable - rate limiting will use in-memory counters", "error", err)
		} else {
			defer redis.Close()
		}
		redisHealth = redis.HealthCheck
	}

	// 5. Setup Repositories
	profileRepo := postgres.NewProfileRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	dashboardUC := usecase.NewDashboardUsecase(profileRepo, jobRepo, applicationRepo, validate, usecase.ChartOptions{
		Location:     cfg.ChartLocation,
		MonthlyLimit: cfg.ChartMonthlyLimit,
		ByJobLimit:   cfg.ChartByJobLimit,
	})
	healthUC := usecase.NewHealthUsecase(dbPool, redisHealth)

	// 7. Setup Auth (HS256 secret and/or Supabase JWKS)
	var jwksProvider *auth.Provider
	if jwksURL := cfg.JWKSURL(); jwksURL != "" {
		jwksProvider = auth.NewProvider(jwksURL)
	}
	if cfg.SupabaseJWTSecret == "" && jwksProvider == nil {
		logger.Log.Error("Neither SUPABASE_JWT_SECRET nor SUPABASE_URL is set - every dashboard request will be rejected")
	}
	verifier := auth.NewVerifier(cfg.SupabaseJWTSecret, jwksProvider)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		DashboardUC: dashboardUC,
		HealthUC:    healthUC,
		Verifier:    verifier,
		RedisClient: redis.Client,
		Config:      cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	if err := serve(srv, quit, 5*time.Second); err != nil {
		return err
	}

	logger.Log.Info("Server exiting")
	return nil
}
