// Package session holds server-side login state. The signed cookie only
// carries a session ID; everything else lives behind this interface.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bucketbuddy/bucketbuddy/internal/model"
)

// ErrNoSession is returned when a session ID is unknown or expired.
var ErrNoSession = errors.New("session not found")

// Store persists sessions across requests.
type Store interface {
	Create(ctx context.Context, user model.User, ttl time.Duration) (*model.Session, error)
	Get(ctx context.Context, sessionID string) (*model.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// NewMemoryStore returns a Store backed by a process-local map. Expired
// sessions are rejected on read and swept by StartJanitor.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]model.Session)}
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

func (s *MemoryStore) Create(ctx context.Context, user model.User, ttl time.Duration) (*model.Session, error) {
	sess := model.Session{
		ID:        uuid.New().String(),
		User:      user,
		ExpiresAt: time.Now().Add(ttl),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return &sess, nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok || time.Now().After(sess.ExpiresAt) {
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// StartJanitor sweeps expired sessions until ctx is cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, sess := range s.sessions {
				if now.After(sess.ExpiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
