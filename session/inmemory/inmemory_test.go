package inmemory

import (
	"testing"
	"time"

	"github.com/mohammad-safakhou/webchat/models"
)

func TestEnsureSession_CreatesAndReuses(t *testing.T) {
	store := NewInMemorySessionStore()

	first, err := store.EnsureSession("", time.Hour)
	if err != nil {
		t.Fatalf("EnsureSession: %v", err)
	}
	if first.ID() == "" {
		t.Fatal("expected a generated id")
	}

	again, err := store.EnsureSession(first.ID(), time.Hour)
	if err != nil {
		t.Fatalf("EnsureSession: %v", err)
	}
	if again.ID() != first.ID() {
		t.Errorf("expected the same session, got %s and %s", first.ID(), again.ID())
	}
}

func TestEnsureSession_UnknownIDGetsFreshSession(t *testing.T) {
	store := NewInMemorySessionStore()
	sess, err := store.EnsureSession("does-not-exist", time.Hour)
	if err != nil {
		t.Fatalf("EnsureSession: %v", err)
	}
	if sess.ID() == "does-not-exist" {
		t.Error("unknown ids must not be adopted as-is")
	}
}

func TestGetSession(t *testing.T) {
	store := NewInMemorySessionStore()
	sess, _ := store.EnsureSession("", time.Hour)

	got, err := store.GetSession(sess.ID())
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil || got.ID() != sess.ID() {
		t.Fatalf("GetSession returned %v", got)
	}

	missing, err := store.GetSession("nope")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if missing != nil {
		t.Error("missing session should be nil, nil")
	}
}

func TestSession_Expiry(t *testing.T) {
	store := NewInMemorySessionStore()
	sess, _ := store.EnsureSession("", time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	got, err := store.GetSession(sess.ID())
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Error("expired session should not be returned")
	}

	fresh, err := store.EnsureSession(sess.ID(), time.Hour)
	if err != nil {
		t.Fatalf("EnsureSession: %v", err)
	}
	if fresh.ID() == sess.ID() {
		t.Error("expired session must be replaced, not revived")
	}
}

func TestSession_AppendAndTurns(t *testing.T) {
	store := NewInMemorySessionStore()
	sess, _ := store.EnsureSession("", time.Hour)

	if err := sess.Append(models.ConversationTurn{Role: models.RoleUser, Text: "hi"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := sess.Append(models.ConversationTurn{Role: models.RoleAssistant, Text: "hello", Sources: []string{"https://a.example"}}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	turns := sess.Turns()
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[1].Sources[0] != "https://a.example" {
		t.Errorf("sources not preserved: %+v", turns[1])
	}

	// Turns returns a copy; mutating it must not corrupt the session.
	turns[0].Text = "mutated"
	if sess.Turns()[0].Text != "hi" {
		t.Error("Turns leaked the internal slice")
	}
}
