package database

import (
	"context"
	"errors"
)

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint (player_id or student_id already enrolled, admin username
// or email already taken).
var ErrDuplicate = errors.New("duplicate record")

// EnrollmentStore provides access to player enrollments.
// Enrollments are written once and never mutated; Create must be atomic
// so a record never exists without a template or device binding.
type EnrollmentStore interface {
	// Create stores a new enrollment. Returns ErrDuplicate if the
	// player_id or student_id is already taken.
	Create(ctx context.Context, enrollment PlayerEnrollment) error
	// GetByID retrieves an enrollment, returns nil if not found.
	GetByID(ctx context.Context, playerID string) (*PlayerEnrollment, error)
	// List returns all enrollments without templates (roster view).
	List(ctx context.Context) ([]PlayerEnrollment, error)
}

// AuditLogStore provides append-only access to verification attempts.
type AuditLogStore interface {
	// Append stores one attempt and returns the assigned log_id.
	Append(ctx context.Context, attempt VerificationAttempt) (int64, error)
	// ListByPlayer returns attempts for a player, most recent first.
	ListByPlayer(ctx context.Context, playerID string, limit int) ([]VerificationAttempt, error)
	// ListRecent returns system-wide attempts joined with the player
	// display name, most recent first.
	ListRecent(ctx context.Context, limit int) ([]AttemptWithPlayer, error)
}

// AdminStore provides access to dashboard accounts.
type AdminStore interface {
	// Create stores a new admin account with a pre-hashed password.
	// Returns ErrDuplicate if the username or email is taken.
	Create(ctx context.Context, admin AdminUser) (int64, error)
	// GetByUsername retrieves an account, returns nil if not found.
	GetByUsername(ctx context.Context, username string) (*AdminUser, error)
	// UpdateLastLogin records a successful login.
	UpdateLastLogin(ctx context.Context, id int64) error
}
