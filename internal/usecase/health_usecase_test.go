package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-hr-dashboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("down") })

	t.Run("Healthy without Redis", func(t *testing.T) {
		status := usecase.NewHealthUsecase(ok, nil).Check(context.Background())
		assert.True(t, status.Healthy)
		assert.Equal(t, "disabled", status.Redis)
	})

	t.Run("Redis outage does not make the service unhealthy", func(t *testing.T) {
		status := usecase.NewHealthUsecase(ok, down.Ping).Check(context.Background())
		assert.True(t, status.Healthy)
		assert.Equal(t, "unavailable", status.Redis)
	})

	t.Run("Database outage does", func(t *testing.T) {
		status := usecase.NewHealthUsecase(down, ok.Ping).Check(context.Background())
		assert.False(t, status.Healthy)
		assert.Equal(t, "unreachable", status.Database)
		assert.Equal(t, "ok", status.Redis)
	})
}
