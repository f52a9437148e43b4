// Package session holds process-wide authentication state: a bearer token
// plus the user it belongs to, persisted to disk so the client stays logged
// in across runs. The store is single-writer (login/logout/profile update),
// many-reader, and notifies subscribers on every transition so mounted
// views can re-read it without a reload.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"yagomarket/internal/types"
)

// Store is the observable session store. The zero value is not usable;
// construct with New or NewAt.
type Store struct {
	filePath string

	mu          sync.RWMutex
	session     *types.Session
	subscribers []func()
}

// New creates a store persisted at ~/.yago/session.json and loads any
// existing session from disk.
func New() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewAt(filepath.Join(home, ".yago", "session.json"))
}

// NewAt creates a store persisted at the given path. A missing or
// unreadable file just means an anonymous session.
func NewAt(path string) (*Store, error) {
	s := &Store{filePath: path}
	s.load()
	return s, nil
}

func (s *Store) load() {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return
	}
	var sess types.Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		return
	}
	s.session = &sess
}

// Authenticated reports whether a token is present. Token presence is the
// only check the client performs; validity is the backend's verdict.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// Current returns the session, or false when anonymous.
func (s *Store) Current() (types.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return types.Session{}, false
	}
	return *s.session, true
}

// Token returns the bearer token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// SetSession transitions Anonymous -> Authenticated, persists, and
// notifies subscribers.
func (s *Store) SetSession(token string, user types.User) error {
	s.mu.Lock()
	s.session = &types.Session{Token: token, User: user}
	err := s.saveLocked()
	s.mu.Unlock()

	s.notify()
	return err
}

// SetUser replaces the stored user record, keeping the token. Used after a
// profile edit so the navigation bar shows the new name without re-login.
func (s *Store) SetUser(user types.User) error {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil
	}
	s.session.User = user
	err := s.saveLocked()
	s.mu.Unlock()

	s.notify()
	return err
}

// Clear transitions Authenticated -> Anonymous, removes the persisted
// session, and notifies subscribers.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.session = nil
	err := os.Remove(s.filePath)
	if os.IsNotExist(err) {
		err = nil
	}
	s.mu.Unlock()

	s.notify()
	return err
}

// Subscribe registers fn to run after every session transition. Intended
// for view models; fn must not block.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}

func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}
