// Package session provides the bounded, TTL-expiring conversation store.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cartline-ai/shop-assistant/internal/model"
	"github.com/cartline-ai/shop-assistant/pkg/logger"
	"github.com/cartline-ai/shop-assistant/pkg/metrics"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// Eviction reasons, reported to the eviction callback and metrics.
const (
	EvictIdle   = "idle"
	EvictStale  = "stale"
	EvictManual = "manual"
)

// Session holds one conversation's bounded history.
type Session struct {
	ID        string
	History   []model.ChatMessage
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// Store maps session ids to bounded histories. Concurrent requests for
// different sessions never block each other beyond map access; history
// writes are last-writer-wins but never corrupt eviction bookkeeping.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl        time.Duration
	staleAfter time.Duration
	now        func() time.Time
	onEvict    func(id, reason string)
	log        *logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock injects a clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithEvictionCallback registers a callback invoked after each eviction.
func WithEvictionCallback(fn func(id, reason string)) Option {
	return func(s *Store) { s.onEvict = fn }
}

// NewStore creates a session store. ttl is the inactivity window after
// which a session expires; staleAfter is the coarse bound after which a
// session is evicted regardless of the ttl bookkeeping.
func NewStore(ttl, staleAfter time.Duration, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		sessions:   make(map[string]*Session),
		ttl:        ttl,
		staleAfter: staleAfter,
		now:        time.Now,
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create allocates a new session with a fresh id.
func (s *Store) Create() *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.Must(uuid.NewV7()).String(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	size := len(s.sessions)
	s.mu.Unlock()

	metrics.SessionsActive.Set(float64(size))
	return sess
}

// Get returns a copy of the session's state, or ErrSessionNotFound for
// unknown ids. Expired entries are treated as missing and removed lazily.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	var snapshot Session
	if ok {
		snapshot = *sess
		snapshot.History = append([]model.ChatMessage(nil), sess.History...)
	}
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.now().After(snapshot.ExpiresAt) {
		s.evict(id, EvictIdle)
		return nil, ErrSessionNotFound
	}
	return &snapshot, nil
}

// SetHistory replaces a session's history and refreshes its expiry.
func (s *Store) SetHistory(id string, history []model.ChatMessage) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.History = append([]model.ChatMessage(nil), history...)
	sess.UpdatedAt = now
	sess.ExpiresAt = now.Add(s.ttl)
	return nil
}

// Touch resets a session's inactivity timer.
func (s *Store) Touch(id string) error {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || now.After(sess.ExpiresAt) {
		return ErrSessionNotFound
	}
	sess.UpdatedAt = now
	sess.ExpiresAt = now.Add(s.ttl)
	return nil
}

// Delete removes a session immediately.
func (s *Store) Delete(id string) error {
	s.mu.RLock()
	_, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.evict(id, EvictManual)
	return nil
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts expired and stale sessions and returns how many were
// removed. Run calls this on an interval; it is also usable directly in
// tests.
func (s *Store) Sweep() int {
	now := s.now()

	type victim struct{ id, reason string }
	victims := []victim{}

	s.mu.RLock()
	for id, sess := range s.sessions {
		switch {
		case now.Sub(sess.UpdatedAt) > s.staleAfter:
			victims = append(victims, victim{id, EvictStale})
		case now.After(sess.ExpiresAt):
			victims = append(victims, victim{id, EvictIdle})
		}
	}
	s.mu.RUnlock()

	for _, v := range victims {
		s.evict(v.id, v.reason)
	}
	return len(victims)
}

// Run sweeps the store on a fixed interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debug("session sweep", zap.Int("evicted", n))
			}
		}
	}
}

func (s *Store) evict(id, reason string) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	size := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return
	}
	metrics.SessionsActive.Set(float64(size))
	metrics.SessionsEvictedTotal.WithLabelValues(reason).Inc()
	if s.onEvict != nil {
		s.onEvict(id, reason)
	}
}
