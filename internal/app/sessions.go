package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/PixabayGallery/internal/domain"
	"github.com/PixabayGallery/internal/infra/metrics"
	"github.com/rs/xid"
)

type sessionEntry struct {
	session  domain.Session
	lastSeen time.Time
}

// SessionStore holds one gallery session per page load. At most one
// trigger per session may be in flight.
type SessionStore struct {
	pageSize    int
	idleTimeout time.Duration
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	inFlight sync.Map // Track sessions with a running trigger
}

func NewSessionStore(pageSize int, idleTimeout time.Duration) *SessionStore {
	return &SessionStore{
		pageSize:    pageSize,
		idleTimeout: idleTimeout,
		now:         time.Now,
		sessions:    make(map[string]*sessionEntry),
	}
}

// Open registers a fresh session and returns its id.
func (s *SessionStore) Open() (string, domain.Session) {
	id := xid.New().String()
	session := domain.NewSession(s.pageSize)

	s.mu.Lock()
	s.sessions[id] = &sessionEntry{session: session, lastSeen: s.now()}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return id, session
}

func (s *SessionStore) Get(id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	entry.lastSeen = s.now()
	return entry.session, nil
}

// Put overwrites the session stored under id.
func (s *SessionStore) Put(id string, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	entry.session = session
	entry.lastSeen = s.now()
	return nil
}

// Acquire marks id as running a trigger. The returned release must be
// called once the trigger has finished.
func (s *SessionStore) Acquire(id string) (func(), error) {
	s.mu.RLock()
	_, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	if _, loaded := s.inFlight.LoadOrStore(id, true); loaded {
		slog.Warn("Skipping overlapping trigger", "session", id)
		metrics.RejectedTriggers.WithLabelValues("in_flight").Inc()
		return nil, domain.ErrTriggerInFlight
	}

	var once sync.Once
	return func() {
		once.Do(func() { s.inFlight.Delete(id) })
	}, nil
}

// Len returns the number of sessions held.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts idle sessions that have no trigger in flight.
func (s *SessionStore) Sweep() int {
	cutoff := s.now().Add(-s.idleTimeout)

	s.mu.Lock()
	evicted := 0
	for id, entry := range s.sessions {
		if entry.lastSeen.After(cutoff) {
			continue
		}
		if _, busy := s.inFlight.Load(id); busy {
			continue
		}
		delete(s.sessions, id)
		evicted++
	}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	if evicted > 0 {
		slog.Debug("Evicted idle sessions", "evicted", evicted, "remaining", n)
	}
	return evicted
}

// Run sweeps idle sessions until ctx is cancelled.
func (s *SessionStore) Run(ctx context.Context) {
	interval := s.idleTimeout / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("Starting session sweeper", "interval", interval, "idle_timeout", s.idleTimeout)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Session sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
