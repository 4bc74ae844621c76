package session

import (
	"sync"
	"time"

	"atelier-boutique/internal/checkout"
	"atelier-boutique/internal/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager owns the live sessions, keyed by id. It is the composition
// layer's handle to per-browser state; sessions never outlive the process.
type Manager struct {
	cfg       Config
	scheduler checkout.Scheduler
	notifier  notify.Notifier
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager(cfg Config, scheduler checkout.Scheduler, notifier notify.Notifier, logger *zap.Logger) *Manager {
	return &Manager{
		cfg:       cfg,
		scheduler: scheduler,
		notifier:  notifier,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Get returns the session with the given id, if it exists.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Create makes a new session. With an empty id a fresh uuid is assigned;
// otherwise the provided id is adopted, so a client whose session was
// evicted keeps its identifier and simply starts over from seed data.
func (m *Manager) Create(id string) *Session {
	if id == "" {
		id = uuid.New().String()
	}

	s := New(id, m.cfg, m.scheduler, m.notifier, m.logger)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Info("Session created", zap.String("session_id", id))
	return s
}

// Acquire returns the existing session for id or creates one, and records
// the activity.
func (m *Manager) Acquire(id string) *Session {
	if s, ok := m.Get(id); ok {
		s.Touch()
		return s
	}
	return m.Create(id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// EvictIdle drops sessions with no activity for at least maxIdle, returning
// how many were removed. Pending payment timers on evicted sessions keep
// their own references and complete harmlessly.
func (m *Manager) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		if s.IdleSince().Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		m.logger.Info("Idle sessions evicted", zap.Int("count", evicted))
	}
	return evicted
}
