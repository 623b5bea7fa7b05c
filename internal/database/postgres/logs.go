package postgres

import (
	"context"
	"fmt"

	"github.com/kozaktomas/player-verify/internal/database"
)

// AuditLogRepository implements database.AuditLogStore on PostgreSQL.
// The verification_logs table is append-only; rows are never updated or
// deleted.
type AuditLogRepository struct {
	pool *Pool
}

func NewAuditLogRepository(pool *Pool) *AuditLogRepository {
	return &AuditLogRepository{pool: pool}
}

func (r *AuditLogRepository) Append(ctx context.Context, attempt database.VerificationAttempt) (int64, error) {
	var logID int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO verification_logs (player_id, verification_status, confidence_score, image_path, device_matched)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING log_id
	`, attempt.PlayerID, attempt.Status, attempt.Confidence,
		attempt.ImagePath, attempt.DeviceMatched).Scan(&logID)
	if err != nil {
		return 0, fmt.Errorf("append verification log: %w", err)
	}
	return logID, nil
}

func (r *AuditLogRepository) ListByPlayer(ctx context.Context, playerID string, limit int) ([]database.VerificationAttempt, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT log_id, player_id, timestamp, verification_status, confidence_score, image_path, device_matched
		FROM verification_logs
		WHERE player_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list logs for player %s: %w", playerID, err)
	}
	defer rows.Close()

	var attempts []database.VerificationAttempt
	for rows.Next() {
		var a database.VerificationAttempt
		if err := rows.Scan(&a.LogID, &a.PlayerID, &a.Timestamp, &a.Status,
			&a.Confidence, &a.ImagePath, &a.DeviceMatched); err != nil {
			return nil, fmt.Errorf("scan verification log: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification logs: %w", err)
	}
	return attempts, nil
}

func (r *AuditLogRepository) ListRecent(ctx context.Context, limit int) ([]database.AttemptWithPlayer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.log_id, l.player_id, l.timestamp, l.verification_status,
		       l.confidence_score, l.image_path, l.device_matched,
		       COALESCE(p.name, 'Unknown')
		FROM verification_logs l
		LEFT JOIN players p ON p.player_id = l.player_id
		ORDER BY l.timestamp DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent logs: %w", err)
	}
	defer rows.Close()

	var attempts []database.AttemptWithPlayer
	for rows.Next() {
		var a database.AttemptWithPlayer
		if err := rows.Scan(&a.LogID, &a.PlayerID, &a.Timestamp, &a.Status,
			&a.Confidence, &a.ImagePath, &a.DeviceMatched, &a.PlayerName); err != nil {
			return nil, fmt.Errorf("scan recent log: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent logs: %w", err)
	}
	return attempts, nil
}
