// Package mock provides in-memory implementations of the database
// interfaces for testing.
package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kozaktomas/player-verify/internal/database"
)

// EnrollmentStore is an in-memory database.EnrollmentStore.
type EnrollmentStore struct {
	mu      sync.RWMutex
	players map[string]database.PlayerEnrollment

	// Error injection
	CreateError error
	GetError    error
	ListError   error
}

// NewEnrollmentStore creates an empty mock enrollment store.
func NewEnrollmentStore() *EnrollmentStore {
	return &EnrollmentStore{
		players: make(map[string]database.PlayerEnrollment),
	}
}

// Create stores a new enrollment.
func (s *EnrollmentStore) Create(ctx context.Context, enrollment database.PlayerEnrollment) error {
	if s.CreateError != nil {
		return s.CreateError
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[enrollment.PlayerID]; ok {
		return database.ErrDuplicate
	}
	for _, p := range s.players {
		if enrollment.StudentID != "" && p.StudentID == enrollment.StudentID {
			return database.ErrDuplicate
		}
	}
	if enrollment.RegisteredAt.IsZero() {
		enrollment.RegisteredAt = time.Now()
	}
	s.players[enrollment.PlayerID] = enrollment
	return nil
}

// GetByID retrieves an enrollment, nil if not found.
func (s *EnrollmentStore) GetByID(ctx context.Context, playerID string) (*database.PlayerEnrollment, error) {
	if s.GetError != nil {
		return nil, s.GetError
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[playerID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// List returns all enrollments sorted by player ID.
func (s *EnrollmentStore) List(ctx context.Context) ([]database.PlayerEnrollment, error) {
	if s.ListError != nil {
		return nil, s.ListError
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]database.PlayerEnrollment, 0, len(s.players))
	for _, p := range s.players {
		p.FacialTemplate = nil
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].PlayerID < result[j].PlayerID })
	return result, nil
}

// AuditLogStore is an in-memory database.AuditLogStore.
type AuditLogStore struct {
	mu       sync.RWMutex
	attempts []database.VerificationAttempt
	nextID   int64

	// Names of enrolled players, used by ListRecent to fill player_name.
	playerNames map[string]string

	// Error injection
	AppendError error
	ListError   error
}

// NewAuditLogStore creates an empty mock audit log store.
func NewAuditLogStore() *AuditLogStore {
	return &AuditLogStore{
		nextID:      1,
		playerNames: make(map[string]string),
	}
}

// SetPlayerName registers a display name for ListRecent joins.
func (s *AuditLogStore) SetPlayerName(playerID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerNames[playerID] = name
}

// Append stores one attempt and returns the assigned log_id.
func (s *AuditLogStore) Append(ctx context.Context, attempt database.VerificationAttempt) (int64, error) {
	if s.AppendError != nil {
		return 0, s.AppendError
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt.LogID = s.nextID
	s.nextID++
	s.attempts = append(s.attempts, attempt)
	return attempt.LogID, nil
}

// ListByPlayer returns attempts for a player, most recent first.
func (s *AuditLogStore) ListByPlayer(ctx context.Context, playerID string, limit int) ([]database.VerificationAttempt, error) {
	if s.ListError != nil {
		return nil, s.ListError
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []database.VerificationAttempt
	for _, a := range s.attempts {
		if a.PlayerID == playerID {
			result = append(result, a)
		}
	}
	sortDesc(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ListRecent returns system-wide attempts with player names, most recent first.
func (s *AuditLogStore) ListRecent(ctx context.Context, limit int) ([]database.AttemptWithPlayer, error) {
	if s.ListError != nil {
		return nil, s.ListError
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	attempts := make([]database.VerificationAttempt, len(s.attempts))
	copy(attempts, s.attempts)
	sortDesc(attempts)
	if limit > 0 && len(attempts) > limit {
		attempts = attempts[:limit]
	}

	result := make([]database.AttemptWithPlayer, 0, len(attempts))
	for _, a := range attempts {
		result = append(result, database.AttemptWithPlayer{
			VerificationAttempt: a,
			PlayerName:          s.playerNames[a.PlayerID],
		})
	}
	return result, nil
}

// Count returns the total number of stored attempts.
func (s *AuditLogStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.attempts)
}

func sortDesc(attempts []database.VerificationAttempt) {
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].Timestamp.After(attempts[j].Timestamp)
	})
}

// AdminStore is an in-memory database.AdminStore.
type AdminStore struct {
	mu     sync.RWMutex
	admins map[string]database.AdminUser
	nextID int64

	// Error injection
	CreateError error
	GetError    error
}

// NewAdminStore creates an empty mock admin store.
func NewAdminStore() *AdminStore {
	return &AdminStore{
		admins: make(map[string]database.AdminUser),
		nextID: 1,
	}
}

// Create stores a new admin account.
func (s *AdminStore) Create(ctx context.Context, admin database.AdminUser) (int64, error) {
	if s.CreateError != nil {
		return 0, s.CreateError
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.admins[admin.Username]; ok {
		return 0, database.ErrDuplicate
	}
	for _, a := range s.admins {
		if a.Email == admin.Email {
			return 0, database.ErrDuplicate
		}
	}
	admin.ID = s.nextID
	s.nextID++
	admin.CreatedAt = time.Now()
	admin.IsActive = true
	s.admins[admin.Username] = admin
	return admin.ID, nil
}

// GetByUsername retrieves an account, nil if not found.
func (s *AdminStore) GetByUsername(ctx context.Context, username string) (*database.AdminUser, error) {
	if s.GetError != nil {
		return nil, s.GetError
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.admins[username]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// UpdateLastLogin records a successful login.
func (s *AdminStore) UpdateLastLogin(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for username, a := range s.admins {
		if a.ID == id {
			now := time.Now()
			a.LastLogin = &now
			s.admins[username] = a
			return nil
		}
	}
	return nil
}
