// Package sessions tracks which players currently have an active
// verification session. The registry is ephemeral: nothing here is
// persisted.
package sessions

import (
	"sort"
	"sync"
	"time"
)

const cleanupInterval = 30 * time.Second

// ActiveSession is one player's live verification session.
type ActiveSession struct {
	PlayerID  string    `json:"player_id"`
	StartTime time.Time `json:"start_time"`
	Status    string    `json:"status"`
}

// Registry holds active sessions keyed by player ID. Clients that
// disconnect without sending an end signal are evicted after the TTL.
// Concurrent start/end for the same player is a last-writer-wins race.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]ActiveSession
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRegistry creates a session registry and starts its eviction
// janitor. A non-positive ttl disables eviction.
func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[string]ActiveSession),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
	if ttl > 0 {
		go r.janitor()
	}
	return r
}

// Start records a session for the player, replacing any existing one.
func (r *Registry) Start(playerID string) ActiveSession {
	session := ActiveSession{
		PlayerID:  playerID,
		StartTime: time.Now(),
		Status:    "ACTIVE",
	}

	r.mu.Lock()
	r.sessions[playerID] = session
	r.mu.Unlock()

	return session
}

// End removes the player's session. Ending an unknown session is a
// no-op.
func (r *Registry) End(playerID string) {
	r.mu.Lock()
	delete(r.sessions, playerID)
	r.mu.Unlock()
}

// Active returns all current sessions sorted by start time, oldest
// first.
func (r *Registry) Active() []ActiveSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ActiveSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result
}

// Touch refreshes the start time of the player's session so a steady
// stream of verification attempts keeps it from being evicted.
func (r *Registry) Touch(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[playerID]; ok {
		s.StartTime = time.Now()
		r.sessions[playerID] = s
	}
}

// Stop shuts down the eviction janitor.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
	})
}

func (r *Registry) janitor() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.evictStale()
		}
	}
}

func (r *Registry) evictStale() {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.StartTime.Before(cutoff) {
			delete(r.sessions, id)
		}
	}
}
