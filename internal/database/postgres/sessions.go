package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kozaktomas/player-verify/internal/web/middleware"
)

// SessionRepository provides PostgreSQL-backed admin session storage.
type SessionRepository struct {
	pool *Pool
}

func NewSessionRepository(pool *Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Save stores a session, replacing any existing row with the same ID.
func (r *SessionRepository) Save(ctx context.Context, s middleware.StoredSession) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sessions (id, username, role, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			role = EXCLUDED.role,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at
	`, s.ID, s.Username, s.Role, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID, returns nil if not found or expired.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*middleware.StoredSession, error) {
	var s middleware.StoredSession
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, role, created_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > NOW()
	`, sessionID).Scan(
		&s.ID,
		&s.Username,
		&s.Role,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// Delete removes a session.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM sessions WHERE id = $1", sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes all expired sessions and returns the count deleted.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.pool.Exec(ctx, "DELETE FROM sessions WHERE expires_at <= NOW()")
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return count, nil
}
