// internal/store/memory.go
//
// In-memory session store: one *game.Engine per player session.
//
// Characteristics:
//   - Engines are keyed by session ID (see httpserver session tokens).
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; sessions never outlive it.
//   - Each session carries the expiry of its token; Sweep drops the ones
//     that have passed it.
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/hangman/internal/game"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the lookup interface for game sessions.
type Store interface {
	// Save registers or replaces the engine for a session that lives
	// until expires.
	Save(ctx context.Context, id string, e *game.Engine, expires time.Time) error

	// Get retrieves the engine for a session.
	// Returns ErrNotFound if the session is unknown.
	Get(ctx context.Context, id string) (*game.Engine, error)

	// Delete drops a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Sweep removes every session expired at now and returns their IDs.
	Sweep(ctx context.Context, now time.Time) []string

	// Len reports the number of live sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions map
	sessions map[string]entry // keyed by session ID
}

type entry struct {
	engine  *game.Engine
	expires time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]entry)}
}

func (m *memory) Save(ctx context.Context, id string, e *game.Engine, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = entry{engine: e, expires: expires}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Engine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if ent, ok := m.sessions[id]; ok {
		return ent.engine, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, now time.Time) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expired []string
	for id, ent := range m.sessions {
		if !now.Before(ent.expires) {
			delete(m.sessions, id)
			expired = append(expired, id)
		}
	}
	return expired
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
