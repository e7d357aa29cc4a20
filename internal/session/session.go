// Package session tracks the players connected to `t2048 serve`.
// Every SSH connection owns an independent game; the registry only records
// who is connected and what they are playing, for logging and shutdown.
package session

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// ID uniquely identifies a connection.
type ID string

// NewID derives an ID from the SSH user name and the current time.
func NewID(user string) ID {
	if user == "" {
		user = "user"
	}
	return ID(fmt.Sprintf("%s-%d", user, time.Now().UnixNano()))
}

// Info describes one active connection.
type Info struct {
	ID         ID
	User       string
	RemoteAddr string
	GameID     string // Empty while the player is in the menu
	StartedAt  time.Time
}

// Registry tracks active sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	sessions map[ID]Info
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[ID]Info),
	}
}

// Add registers a session. A zero StartedAt is set to now.
// Adding an ID twice replaces the earlier entry.
func (r *Registry) Add(info Info) {
	if info.StartedAt.IsZero() {
		info.StartedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[info.ID] = info
}

// Remove drops a session. Unknown IDs are ignored.
func (r *Registry) Remove(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// SetGame records which mode a session is playing.
// Returns false if the session is not registered.
func (r *Registry) SetGame(id ID, gameID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, ok := r.sessions[id]
	if !ok {
		return false
	}
	info.GameID = gameID
	r.sessions[id] = info
	return true
}

// Get retrieves a session by ID.
func (r *Registry) Get(id ID) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.sessions[id]
	return info, ok
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// List returns a snapshot of all sessions, oldest first.
func (r *Registry) List() []Info {
	r.mu.RLock()
	list := make([]Info, 0, len(r.sessions))
	for _, info := range r.sessions {
		list = append(list, info)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].StartedAt.Equal(list[j].StartedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].StartedAt.Before(list[j].StartedAt)
	})
	return list
}
