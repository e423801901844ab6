package apiclient

import (
	"sync"

	"trainercal/internal/events"
)

// Session holds the bearer token used by a Client. Losing the token
// publishes LoggedOut on the bus.
type Session struct {
	bus *events.Bus

	mu    sync.RWMutex
	token string
}

func NewSession(token string, bus *events.Bus) *Session {
	return &Session{token: token, bus: bus}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Logout drops the token. LoggedOut is published once per lost token.
func (s *Session) Logout(reason string) {
	s.mu.Lock()
	hadToken := s.token != ""
	s.token = ""
	s.mu.Unlock()

	if hadToken && s.bus != nil {
		s.bus.Publish(events.LoggedOut{Reason: reason})
	}
}
