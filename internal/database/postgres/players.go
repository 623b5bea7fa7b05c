package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kozaktomas/player-verify/internal/database"
	"github.com/pgvector/pgvector-go"
)

// EnrollmentRepository implements database.EnrollmentStore on PostgreSQL.
// Facial templates are stored in a pgvector column.
type EnrollmentRepository struct {
	pool *Pool
}

func NewEnrollmentRepository(pool *Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment database.PlayerEnrollment) error {
	studentID := sql.NullString{String: enrollment.StudentID, Valid: enrollment.StudentID != ""}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO players (player_id, name, student_id, facial_template, dim, machine_guid)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, enrollment.PlayerID, enrollment.Name, studentID,
		pgvector.NewVector(enrollment.FacialTemplate), len(enrollment.FacialTemplate),
		enrollment.MachineGUID)
	if err != nil {
		if isUniqueViolation(err) {
			return database.ErrDuplicate
		}
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *EnrollmentRepository) GetByID(ctx context.Context, playerID string) (*database.PlayerEnrollment, error) {
	var (
		enrollment database.PlayerEnrollment
		studentID  sql.NullString
		template   pgvector.Vector
	)

	err := r.pool.QueryRow(ctx, `
		SELECT player_id, name, student_id, facial_template, machine_guid, registered_at
		FROM players
		WHERE player_id = $1
	`, playerID).Scan(
		&enrollment.PlayerID,
		&enrollment.Name,
		&studentID,
		&template,
		&enrollment.MachineGUID,
		&enrollment.RegisteredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get player %s: %w", playerID, err)
	}

	enrollment.StudentID = studentID.String
	enrollment.FacialTemplate = template.Slice()
	return &enrollment, nil
}

func (r *EnrollmentRepository) List(ctx context.Context) ([]database.PlayerEnrollment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT player_id, name, student_id, machine_guid, registered_at
		FROM players
		ORDER BY registered_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []database.PlayerEnrollment
	for rows.Next() {
		var (
			enrollment database.PlayerEnrollment
			studentID  sql.NullString
		)
		if err := rows.Scan(
			&enrollment.PlayerID,
			&enrollment.Name,
			&studentID,
			&enrollment.MachineGUID,
			&enrollment.RegisteredAt,
		); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		enrollment.StudentID = studentID.String
		players = append(players, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}
