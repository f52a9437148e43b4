package session

import (
	"path/filepath"
	"testing"

	"yagomarket/internal/types"
)

func TestStore_AnonymousWhenNoFile(t *testing.T) {
	s, err := NewAt(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewAt: %v", err)
	}
	if s.Authenticated() {
		t.Fatal("fresh store should be anonymous")
	}
	if s.Token() != "" {
		t.Fatalf("Token() = %q, want empty", s.Token())
	}
	if _, ok := s.Current(); ok {
		t.Fatal("Current() should report no session")
	}
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := NewAt(path)
	if err != nil {
		t.Fatalf("NewAt: %v", err)
	}
	user := types.User{ID: 7, Name: "Ana", Email: "ana@example.com", Role: "client"}
	if err := s.SetSession("tok-123", user); err != nil {
		t.Fatalf("SetSession: %v", err)
	}

	reopened, err := NewAt(path)
	if err != nil {
		t.Fatalf("NewAt reopen: %v", err)
	}
	sess, ok := reopened.Current()
	if !ok {
		t.Fatal("reopened store should be authenticated")
	}
	if sess.Token != "tok-123" || sess.User.Name != "Ana" {
		t.Fatalf("reopened session = %+v", sess)
	}
}

func TestStore_ClearRemovesPersistedSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, _ := NewAt(path)
	if err := s.SetSession("tok", types.User{ID: 1}); err != nil {
		t.Fatalf("SetSession: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Authenticated() {
		t.Fatal("store should be anonymous after Clear")
	}

	// Clearing an already-anonymous store is fine.
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}

	reopened, _ := NewAt(path)
	if reopened.Authenticated() {
		t.Fatal("cleared session must not survive a restart")
	}
}

func TestStore_NotifiesSubscribersOnTransitions(t *testing.T) {
	s, _ := NewAt(filepath.Join(t.TempDir(), "session.json"))

	var events int
	s.Subscribe(func() { events++ })

	_ = s.SetSession("tok", types.User{ID: 1, Name: "Ana"})
	_ = s.SetUser(types.User{ID: 1, Name: "Ana Maria"})
	_ = s.Clear()

	if events != 3 {
		t.Fatalf("subscriber ran %d times, want 3", events)
	}

	sessAfter, ok := s.Current()
	if ok {
		t.Fatalf("expected anonymous after logout, got %+v", sessAfter)
	}
}

func TestStore_SetUserKeepsToken(t *testing.T) {
	s, _ := NewAt(filepath.Join(t.TempDir(), "session.json"))
	_ = s.SetSession("tok", types.User{ID: 1, Name: "Ana"})
	_ = s.SetUser(types.User{ID: 1, Name: "Ana Maria"})

	sess, ok := s.Current()
	if !ok {
		t.Fatal("should stay authenticated")
	}
	if sess.Token != "tok" {
		t.Fatalf("token changed: %q", sess.Token)
	}
	if sess.User.Name != "Ana Maria" {
		t.Fatalf("user not updated: %+v", sess.User)
	}

	// SetUser on an anonymous store is a no-op.
	s2, _ := NewAt(filepath.Join(t.TempDir(), "session.json"))
	if err := s2.SetUser(types.User{ID: 2}); err != nil {
		t.Fatalf("SetUser anonymous: %v", err)
	}
	if s2.Authenticated() {
		t.Fatal("SetUser must not authenticate an anonymous store")
	}
}
