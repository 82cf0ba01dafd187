package handlers

import (
	"testing"
	"time"

	"phonicscode/internal/game"
	"phonicscode/internal/quiz"
)

func newTestController() *game.Controller {
	return game.NewController(game.Config{
		Game:  game.Builder,
		Store: quiz.NewStatic(nil, nil),
	})
}

func TestRegistryPutGetRemove(t *testing.T) {
	reg := NewRegistry(time.Hour)

	ctrl := newTestController()
	reg.Put("player-1", game.Builder, ctrl, 7)

	entry := reg.Get("player-1", game.Builder)
	if entry == nil {
		t.Fatal("entry not found after Put")
	}
	if entry.ctrl != ctrl || entry.recordID != 7 {
		t.Errorf("entry = %+v, want the stored controller and record 7", entry)
	}

	// Different game slot is distinct.
	if reg.Get("player-1", game.Shadow) != nil {
		t.Error("shadow slot returned the builder controller")
	}

	reg.Remove("player-1", game.Builder)
	if reg.Get("player-1", game.Builder) != nil {
		t.Error("entry still present after Remove")
	}
}

func TestRegistryPutReplacesAndCloses(t *testing.T) {
	reg := NewRegistry(time.Hour)

	first := newTestController()
	reg.Put("player-1", game.Builder, first, 1)
	second := newTestController()
	reg.Put("player-1", game.Builder, second, 2)

	if entry := reg.Get("player-1", game.Builder); entry.ctrl != second {
		t.Error("Get returned the replaced controller")
	}
	// The replaced controller must be closed: Resolve on it is a no-op.
	if first.Resolve("anything") {
		t.Error("replaced controller still accepts answers")
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestRegistryCleanupExpired(t *testing.T) {
	reg := NewRegistry(10 * time.Millisecond)

	reg.Put("stale", game.Builder, newTestController(), 0)
	time.Sleep(30 * time.Millisecond)
	reg.Put("fresh", game.Builder, newTestController(), 0)

	if removed := reg.CleanupExpired(); removed != 1 {
		t.Fatalf("CleanupExpired removed %d entries, want 1", removed)
	}
	if reg.Get("stale", game.Builder) != nil {
		t.Error("stale entry survived cleanup")
	}
	if reg.Get("fresh", game.Builder) == nil {
		t.Error("fresh entry was removed")
	}
}

func TestRegistryGetRefreshesIdleTimer(t *testing.T) {
	reg := NewRegistry(50 * time.Millisecond)

	reg.Put("player-1", game.Builder, newTestController(), 0)
	for i := 0; i < 4; i++ {
		time.Sleep(20 * time.Millisecond)
		if reg.Get("player-1", game.Builder) == nil {
			t.Fatal("entry expired despite being touched")
		}
	}
	if removed := reg.CleanupExpired(); removed != 0 {
		t.Errorf("CleanupExpired removed %d entries, want 0", removed)
	}
}
