package memory

import (
	"testing"

	"country-quiz-game/internal/app"
	"country-quiz-game/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	session := app.NewSession("s1", "p1", domain.ModeFlags, nil)
	store.Put(session)
	if got, ok := store.Get("s1"); !ok || got != session {
		t.Fatalf("expected stored session back")
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session removed")
	}
}
