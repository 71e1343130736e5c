package v1

import (
	"time"

	"go-hr-dashboard-backend/config"
	"go-hr-dashboard-backend/internal/delivery/http/middleware"
	"go-hr-dashboard-backend/internal/domain"
	"go-hr-dashboard-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	DashboardUC domain.DashboardUsecase
	HealthUC    usecase.HealthUsecase
	Verifier    middleware.SessionVerifier
	// Shared Redis client for rate limiting; nil counts in memory
	RedisClient func() *goredis.Client
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Config.IsProduction())) // CORS must be first!
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	if !deps.Config.IsProduction() {
		r.Use(gin.Logger())
	}
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
		deps.RedisClient,
	)))

	// Health Check
	NewHealthHandler(r, deps.HealthUC)

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	dashboard := r.Group("/api/hr/dashboard")
	dashboard.Use(middleware.AuthMiddleware(deps.Verifier))
	{
		NewDashboardHandler(dashboard, deps.DashboardUC)
	}

	return r
}
