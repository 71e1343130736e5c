package domain

import (
	"context"
	"time"
)

type Job struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type JobRepository interface {
	// ListIDsByOwner returns the ids of jobs whose created_by is ownerID.
	ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
}
