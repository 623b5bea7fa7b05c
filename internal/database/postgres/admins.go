package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kozaktomas/player-verify/internal/database"
)

// AdminRepository implements database.AdminStore on PostgreSQL.
type AdminRepository struct {
	pool *Pool
}

func NewAdminRepository(pool *Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) Create(ctx context.Context, admin database.AdminUser) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO admin_users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, admin.Username, admin.Email, admin.PasswordHash, admin.Role).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, database.ErrDuplicate
		}
		return 0, fmt.Errorf("insert admin: %w", err)
	}
	return id, nil
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*database.AdminUser, error) {
	var admin database.AdminUser
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, role, created_at, last_login, is_active
		FROM admin_users
		WHERE username = $1
	`, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Role,
		&admin.CreatedAt,
		&admin.LastLogin,
		&admin.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get admin %s: %w", username, err)
	}
	return &admin, nil
}

func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `
		UPDATE admin_users SET last_login = NOW() WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
