package postgres

import (
	"context"
	"errors"

	"go-hr-dashboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT id::text, COALESCE(role, '') FROM profiles WHERE id = $1`

	var profile domain.Profile
	err := r.db.QueryRow(ctx, query, id).Scan(&profile.ID, &profile.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeError(err)
	}
	return &profile, nil
}
