package database

import (
	"time"
)

// VerificationStatus is the overall verdict of a verification attempt.
type VerificationStatus string

const (
	StatusVerified VerificationStatus = "VERIFIED"
	StatusFailed   VerificationStatus = "FAILED"
)

// Admin roles.
const (
	RoleSuperAdmin      = "super_admin"
	RoleTournamentAdmin = "tournament_admin"
)

// PlayerEnrollment is the durable record binding a player identity to a
// facial template and a device fingerprint. Created once at enrollment,
// read-only afterwards.
type PlayerEnrollment struct {
	PlayerID       string    `json:"player_id"`
	Name           string    `json:"name"`
	StudentID      string    `json:"student_id,omitempty"`
	FacialTemplate []float32 `json:"-"`
	MachineGUID    string    `json:"machine_guid,omitempty"`
	RegisteredAt   time.Time `json:"registered_at"`
}

// VerificationAttempt is one append-only audit record of a verification.
type VerificationAttempt struct {
	LogID         int64              `json:"log_id"`
	PlayerID      string             `json:"player_id"`
	Timestamp     time.Time          `json:"timestamp"`
	Status        VerificationStatus `json:"verification_status"`
	Confidence    float64            `json:"confidence_score"`
	ImagePath     string             `json:"image_path"`
	DeviceMatched bool               `json:"device_matched"`
}

// AttemptWithPlayer joins an audit record with the player's display name
// for the system-wide recent log view.
type AttemptWithPlayer struct {
	VerificationAttempt
	PlayerName string `json:"player_name"`
}

// AdminUser is a dashboard account.
type AdminUser struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	IsActive     bool       `json:"is_active"`
}
