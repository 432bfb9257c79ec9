// pkg/memcache/clarifications.go
package mem

import (
	"context"
	"sync"
	"time"
)

// PendingClarification is a trip request still waiting for its day count.
type PendingClarification struct {
	Keyword    string    `json:"keyword"`
	LandmarkID uint      `json:"landmark_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ClarificationStore holds at most one pending clarification per conversation.
type ClarificationStore interface {
	Get(ctx context.Context, conversationID string) (*PendingClarification, bool, error)

	// Set replaces any clarification already held for the conversation.
	Set(ctx context.Context, conversationID string, pending PendingClarification, ttl time.Duration) error

	Clear(ctx context.Context, conversationID string) error
}

type entry struct {
	pending   PendingClarification
	expiresAt time.Time
}

type Clarifications struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewClarifications() *Clarifications {
	return &Clarifications{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *Clarifications) Set(_ context.Context, conversationID string, pending PendingClarification, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[conversationID] = entry{
		pending:   pending,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *Clarifications) Get(_ context.Context, conversationID string) (*PendingClarification, bool, error) {
	s.mu.RLock()
	e, ok := s.data[conversationID]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, conversationID) // cleanup expired
		s.mu.Unlock()
		return nil, false, nil
	}
	p := e.pending
	return &p, true, nil
}

func (s *Clarifications) Clear(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, conversationID)
	return nil
}
