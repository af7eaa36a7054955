package client

import (
	"sync"

	"github.com/freshfruit/storefront/models"
)

// Session holds the current token and profile, the way the browser
// storefront kept them in localStorage. It only gates calls on token
// presence; the server's auth guard is the actual security boundary.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *models.PublicUser
}

func NewSession() *Session {
	return &Session{}
}

// Set stores the token and profile from a successful login.
func (s *Session) Set(token string, user models.PublicUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &user
}

// Clear discards the session. Because tokens are stateless this is
// the only invalidation there is.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() (models.PublicUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.PublicUser{}, false
	}
	return *s.user, true
}

// Authenticated reports whether a token is held. It does not verify
// the signature; only the server can.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
