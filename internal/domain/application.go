package domain

import (
	"context"
	"time"
)

// ApplicationJobRow is an application joined with its job. Both fields are
// nil when the application carries no job_id; JobTitle alone is nil when the
// job_id references a job that no longer exists.
type ApplicationJobRow struct {
	JobID    *string `json:"job_id"`
	JobTitle *string `json:"job_title"`
}

type ApplicationRepository interface {
	// ListCreatedAt returns created_at of every application visible in scope.
	ListCreatedAt(ctx context.Context, scope Scope) ([]time.Time, error)
	// ListWithJobTitle returns every application visible in scope joined with
	// its job title, ordered by created_at then id.
	ListWithJobTitle(ctx context.Context, scope Scope) ([]ApplicationJobRow, error)
}
