package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	sessionCookieName = "player_verify_session"
	sessionDuration   = 24 * time.Hour
	cleanupInterval   = time.Hour
)

// Session represents an authenticated admin session.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StoredSession is the persisted form of a session.
type StoredSession struct {
	ID        string
	Username  string
	Role      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionRepository persists sessions so logins survive restarts.
type SessionRepository interface {
	Save(ctx context.Context, s StoredSession) error
	Get(ctx context.Context, sessionID string) (*StoredSession, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionManager handles session creation and validation. Sessions are
// cached in memory and written through to the repository when one is
// configured.
type SessionManager struct {
	secret   []byte
	repo     SessionRepository
	sessions map[string]*Session
	mu       sync.RWMutex
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionManager creates a new session manager. repo may be nil, in
// which case sessions live only in memory.
func NewSessionManager(secret string, repo SessionRepository) *SessionManager {
	// Use a default secret if none provided (for development)
	if secret == "" {
		secret = "player-verify-dev-secret-change-in-production"
	}
	sm := &SessionManager{
		secret:   []byte(secret),
		repo:     repo,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}
	if repo != nil {
		go sm.cleanupLoop()
	}
	return sm
}

// CreateSession creates a new session for an admin user.
func (sm *SessionManager) CreateSession(ctx context.Context, username, role string) (*Session, error) {
	idBytes := make([]byte, 32)
	if _, err := rand.Read(idBytes); err != nil {
		return nil, err
	}
	sessionID := base64.URLEncoding.EncodeToString(idBytes)

	session := &Session{
		ID:        sessionID,
		Username:  username,
		Role:      role,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(sessionDuration),
	}

	sm.mu.Lock()
	sm.sessions[sessionID] = session
	sm.mu.Unlock()

	if sm.repo != nil {
		if err := sm.repo.Save(ctx, StoredSession(*session)); err != nil {
			log.Printf("Failed to persist session: %v", err)
		}
	}

	return session, nil
}

// GetSession retrieves a session by ID, falling back to the repository
// for sessions created before the last restart.
func (sm *SessionManager) GetSession(ctx context.Context, sessionID string) *Session {
	sm.mu.RLock()
	session, ok := sm.sessions[sessionID]
	sm.mu.RUnlock()

	if ok {
		if time.Now().After(session.ExpiresAt) {
			sm.DeleteSession(ctx, sessionID)
			return nil
		}
		return session
	}

	if sm.repo == nil {
		return nil
	}

	stored, err := sm.repo.Get(ctx, sessionID)
	if err != nil {
		log.Printf("Failed to load session: %v", err)
		return nil
	}
	if stored == nil {
		return nil
	}
	if time.Now().After(stored.ExpiresAt) {
		if err := sm.repo.Delete(ctx, sessionID); err != nil {
			log.Printf("Failed to delete session: %v", err)
		}
		return nil
	}

	session = (*Session)(stored)
	sm.mu.Lock()
	sm.sessions[sessionID] = session
	sm.mu.Unlock()
	return session
}

// DeleteSession removes a session from the cache and the repository.
func (sm *SessionManager) DeleteSession(ctx context.Context, sessionID string) {
	sm.mu.Lock()
	delete(sm.sessions, sessionID)
	sm.mu.Unlock()

	if sm.repo != nil {
		if err := sm.repo.Delete(ctx, sessionID); err != nil {
			log.Printf("Failed to delete session: %v", err)
		}
	}
}

// Stop terminates the background cleanup goroutine.
func (sm *SessionManager) Stop() {
	sm.stopOnce.Do(func() {
		close(sm.stop)
	})
}

func (sm *SessionManager) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sm.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			count, err := sm.repo.DeleteExpired(ctx)
			cancel()
			if err != nil {
				log.Printf("Failed to clean up expired sessions: %v", err)
			} else if count > 0 {
				log.Printf("Cleaned up %d expired sessions", count)
			}
		}
	}
}

// SetSessionCookie sets the signed session cookie on the response.
func (sm *SessionManager) SetSessionCookie(w http.ResponseWriter, session *Session) {
	signature := sm.signData(session.ID)
	cookieValue := session.ID + "." + signature

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    cookieValue,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionDuration.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func (sm *SessionManager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// GetSessionFromRequest extracts and validates the session from a request.
func (sm *SessionManager) GetSessionFromRequest(r *http.Request) *Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	parts := strings.SplitN(cookie.Value, ".", 2)
	if len(parts) != 2 {
		return nil
	}
	sessionID := parts[0]
	signature := parts[1]
	if !sm.verifySignature(sessionID, signature) {
		return nil
	}

	return sm.GetSession(r.Context(), sessionID)
}

// signData creates an HMAC signature for data.
func (sm *SessionManager) signData(data string) string {
	h := hmac.New(sha256.New, sm.secret)
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

// verifySignature verifies an HMAC signature.
func (sm *SessionManager) verifySignature(data, signature string) bool {
	expected := sm.signData(data)
	return hmac.Equal([]byte(signature), []byte(expected))
}
