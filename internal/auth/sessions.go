package auth

import (
	"context"
	"sync"
	"time"

	"github.com/nikolayk812/coinvault/internal/domain"
)

// State is what the server knows about a signed-in user.
type State struct {
	Session domain.Session
	Profile *domain.Profile
}

// IsAdmin is false when the profile could not be loaded.
func (s State) IsAdmin() bool {
	return s.Profile != nil && s.Profile.IsAdmin()
}

func (s State) expired(now time.Time) bool {
	return !s.Session.ExpiresAt.IsZero() && !now.Before(s.Session.ExpiresAt)
}

// Sessions is the local session table keyed by access token.
type Sessions struct {
	mu    sync.RWMutex
	byTok map[string]State
	now   func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{
		byTok: make(map[string]State),
		now:   time.Now,
	}
}

// Get returns the state for token unless it is unknown or expired.
// Expired entries are dropped.
func (s *Sessions) Get(token string) (State, bool) {
	s.mu.RLock()
	state, ok := s.byTok[token]
	s.mu.RUnlock()
	if !ok {
		return State{}, false
	}

	if state.expired(s.now()) {
		s.Delete(token)
		return State{}, false
	}

	return state, true
}

func (s *Sessions) Put(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byTok[state.Session.AccessToken] = state
}

func (s *Sessions) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byTok, token)
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byTok)
}

// Sweep drops every expired session and returns how many went.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	swept := 0
	for token, state := range s.byTok {
		if state.expired(now) {
			delete(s.byTok, token)
			swept++
		}
	}
	return swept
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
