package game

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestWorldState_Players(t *testing.T) {
	w := NewWorldState(nil)

	if err := w.AddPlayer("bob", &Character{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.AddPlayer("bob", &Character{}); !errors.Is(err, ErrPlayerExists) {
		t.Errorf("expected ErrPlayerExists, got %v", err)
	}

	before := w.GetPlayer("bob").LastActivity
	w.MarkPlayerActive("bob")
	if w.GetPlayer("bob").LastActivity.Before(before) {
		t.Error("activity went backwards")
	}

	count := 0
	w.ForEachPlayer(func(string, *PlayerState) { count++ })
	testutil.AssertEqual(t, "players", count, 1)

	if err := w.RemovePlayer("bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.RemovePlayer("bob"); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got %v", err)
	}
	if w.GetPlayer("bob") != nil {
		t.Error("expected player to be gone")
	}
}
