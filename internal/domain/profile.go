package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when a lookup matches no row.
var ErrNotFound = errors.New("resource not found")

// Role is the dashboard role stored on a profile.
type Role string

const (
	RoleHR    Role = "HR"
	RoleAdmin Role = "ADMIN"
)

// CanViewDashboard reports whether the role may read recruiting charts.
func (r Role) CanViewDashboard() bool {
	return r == RoleHR || r == RoleAdmin
}

// Profile is the one-per-user record carrying the caller's role.
type Profile struct {
	ID   string `json:"id"` // Supabase user UUID
	Role Role   `json:"role"`
}

type ProfileRepository interface {
	// GetByID returns ErrNotFound when the user has no profile.
	GetByID(ctx context.Context, id string) (*Profile, error)
}
