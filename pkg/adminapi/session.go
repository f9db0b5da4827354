package adminapi

import "sync"

// Session carries the bearer token for one operator. It is passed explicitly into
// every resource call; the client clears it when the backend answers 401.
type Session struct {
	id string

	mu    sync.RWMutex
	token string
}

// NewSession creates a session; id identifies it to the UnauthorizedHandler
func NewSession(id, token string) *Session {
	return &Session{id: id, token: token}
}

// Anonymous returns a session without a token, used for login
func Anonymous() *Session {
	return &Session{}
}

func (s *Session) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Clear drops the token and reports whether one was present
func (s *Session) Clear() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.token != ""
	s.token = ""
	return had
}
