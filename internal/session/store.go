// Package session holds one interview session per user, keyed by an opaque
// token. Sessions live in memory only: a reload starts over, and nothing is
// shared across sessions.
package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prepify/backend/internal/domain/interview"
)

var ErrNotFound = errors.New("session not found")

type entry struct {
	mu         sync.Mutex
	controller *interview.Controller
	lastSeen   time.Time
}

// Store is the per-user session registry. Each entry carries its own lock so
// a second request against the same session is rejected instead of queued
// while a generation or evaluation call is in flight.
type Store struct {
	source    interview.QuestionSource
	evaluator interview.AnswerEvaluator
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewStore creates an empty registry. New controllers are wired to the given
// question source and answer evaluator.
func NewStore(source interview.QuestionSource, evaluator interview.AnswerEvaluator, logger *slog.Logger) *Store {
	return &Store{
		source:    source,
		evaluator: evaluator,
		logger:    logger,
		sessions:  make(map[string]*entry),
	}
}

// Create registers a fresh idle session and returns its token.
func (s *Store) Create() string {
	token := uuid.NewString()

	s.mu.Lock()
	s.sessions[token] = &entry{
		controller: interview.NewController(s.source, s.evaluator),
		lastSeen:   time.Now(),
	}
	s.mu.Unlock()

	return token
}

// With runs fn against the session's controller while holding its lock.
// It fails with ErrNotFound for unknown tokens and with interview.ErrBusy
// when another request on the same session is still running.
func (s *Store) With(token string, fn func(*interview.Controller) error) error {
	s.mu.Lock()
	e, ok := s.sessions[token]
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	return s.withEntry(token, e, fn)
}

// withEntry locks the entry, then re-checks membership: the janitor or a
// delete may have evicted the session between the lookup and the lock, and an
// orphaned controller must not serve the request.
func (s *Store) withEntry(token string, e *entry, fn func(*interview.Controller) error) error {
	if !e.mu.TryLock() {
		return interview.ErrBusy
	}
	defer e.mu.Unlock()

	s.mu.Lock()
	_, ok := s.sessions[token]
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	e.lastSeen = time.Now()
	return fn(e.controller)
}

// Delete discards a session and all its data. It fails with interview.ErrBusy
// while a request on the session is still running, so an in-flight call can
// never complete against a deleted session.
func (s *Store) Delete(token string) error {
	s.mu.Lock()
	e, ok := s.sessions[token]
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	if !e.mu.TryLock() {
		return interview.ErrBusy
	}
	defer e.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, token)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// evictIdle removes sessions that have not been touched within ttl and
// returns how many were dropped. Entries still locked by an in-flight
// request are left alone.
func (s *Store) evictIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	evicted := 0

	s.mu.Lock()
	defer s.mu.Unlock()

	for token, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		idle := e.lastSeen.Before(cutoff)
		e.mu.Unlock()

		if idle {
			delete(s.sessions, token)
			evicted++
		}
	}
	return evicted
}
