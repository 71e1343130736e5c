package postgres

import (
	"context"
	"fmt"
	"time"

	"go-hr-dashboard-backend/internal/domain"
	"go-hr-dashboard-backend/pkg/apperror"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// ListCreatedAt returns the submission time of every application in scope
func (r *applicationRepo) ListCreatedAt(ctx context.Context, scope domain.Scope) ([]time.Time, error) {
	where, args, err := scopeFilter(scope, "a.job_id")
	if err != nil {
		return nil, err
	}
	query := `SELECT a.created_at FROM applications a` + where + ` ORDER BY a.created_at, a.id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError(err)
	}
	defer rows.Close()

	timestamps := []time.Time{}
	for rows.Next() {
		var createdAt time.Time
		if err := rows.Scan(&createdAt); err != nil {
			return nil, storeError(err)
		}
		timestamps = append(timestamps, createdAt)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err)
	}
	return timestamps, nil
}

// ListWithJobTitle returns every application in scope with its job title
func (r *applicationRepo) ListWithJobTitle(ctx context.Context, scope domain.Scope) ([]domain.ApplicationJobRow, error) {
	where, args, err := scopeFilter(scope, "a.job_id")
	if err != nil {
		return nil, err
	}
	query := `
		SELECT a.job_id::text, j.title
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id` + where + `
		ORDER BY a.created_at, a.id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError(err)
	}
	defer rows.Close()

	result := []domain.ApplicationJobRow{}
	for rows.Next() {
		var row domain.ApplicationJobRow
		if err := rows.Scan(&row.JobID, &row.JobTitle); err != nil {
			return nil, storeError(err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err)
	}
	return result, nil
}

// scopeFilter renders the WHERE clause restricting column to the scope's job
// ids. AllJobs renders no clause.
func scopeFilter(scope domain.Scope, column string) (string, []interface{}, error) {
	switch s := scope.(type) {
	case domain.AllJobs:
		return "", nil, nil
	case domain.OwnedJobs:
		return "\n\t\tWHERE " + column + " = ANY($1)", []interface{}{pq.Array(s.IDs)}, nil
	default:
		return "", nil, apperror.Internal(fmt.Errorf("postgres: unsupported scope %T", scope))
	}
}
