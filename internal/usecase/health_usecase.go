package usecase

import (
	"context"
	"time"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Healthy  bool   `json:"healthy"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

type healthUsecase struct {
	db          Pinger
	redisHealth func(ctx context.Context) error
}

// NewHealthUsecase reports database and Redis reachability. redisHealth may
// be nil when Redis is not part of the deployment.
func NewHealthUsecase(db Pinger, redisHealth func(ctx context.Context) error) HealthUsecase {
	return &healthUsecase{db: db, redisHealth: redisHealth}
}

// Check treats only the database as critical; Redis only backs rate limiting.
func (u *healthUsecase) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := HealthStatus{Healthy: true, Database: "ok", Redis: "disabled"}

	if u.db == nil || u.db.Ping(ctx) != nil {
		status.Healthy = false
		status.Database = "unreachable"
	}

	if u.redisHealth != nil {
		if err := u.redisHealth(ctx); err != nil {
			status.Redis = "unavailable"
		} else {
			status.Redis = "ok"
		}
	}
	return status
}
