package rent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/mudsave/internal/game"
)

type fakeSaver struct {
	fail  map[string]bool
	saves map[string][]Reason
}

func (f *fakeSaver) Save(_ context.Context, ch *game.Character, reason Reason) error {
	if f.saves == nil {
		f.saves = map[string][]Reason{}
	}
	if f.fail[ch.Name] {
		return errors.New("disk full")
	}
	f.saves[ch.Name] = append(f.saves[ch.Name], reason)
	return nil
}

func TestAutosaveTicker(t *testing.T) {
	base := time.Now()
	now := base
	clock := func() time.Time { return now }

	world := game.NewWorldState(nil)
	for _, name := range []string{"alice", "bob", "carol"} {
		if err := world.AddPlayer(name, game.NewCharacter(name, game.ClassCleric, game.RaceHuman)); err != nil {
			t.Fatal(err)
		}
	}
	world.GetPlayer("carol").LastActivity = base.Add(-time.Hour)

	saver := &fakeSaver{fail: map[string]bool{"alice": true}}
	n := &recordingNotifier{}
	at := NewAutosaveTicker(world, saver,
		WithAutosaveInterval(5*time.Minute),
		WithIdleTimeout(15*time.Minute),
		WithTickerNotifier(n),
		WithTickerClock(clock))

	now = base.Add(time.Minute)
	if err := at.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	testutil.AssertEqual(t, "carol idle save", len(saver.saves["carol"]), 1)
	testutil.AssertEqual(t, "carol reason", saver.saves["carol"][0], ReasonIdle)
	testutil.AssertEqual(t, "carol removed", world.GetPlayer("carol") == nil, true)
	testutil.AssertEqual(t, "carol notified", len(n.msgs["carol"]), 1)
	testutil.AssertEqual(t, "no sweep yet", len(saver.saves["bob"]), 0)

	now = base.Add(5 * time.Minute)
	if err := at.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	testutil.AssertEqual(t, "bob saved despite alice failing", len(saver.saves["bob"]), 1)
	testutil.AssertEqual(t, "bob reason", saver.saves["bob"][0], ReasonCrash)
	testutil.AssertEqual(t, "alice still playing", world.GetPlayer("alice") != nil, true)

	now = base.Add(6 * time.Minute)
	if err := at.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	testutil.AssertEqual(t, "no second sweep", len(saver.saves["bob"]), 1)
}

func TestAutosaveTicker_IdleSaveFailureKeepsPlayer(t *testing.T) {
	base := time.Now()
	world := game.NewWorldState(nil)
	if err := world.AddPlayer("dave", game.NewCharacter("dave", game.ClassThief, game.RaceHalfling)); err != nil {
		t.Fatal(err)
	}
	world.GetPlayer("dave").LastActivity = base.Add(-time.Hour)

	at := NewAutosaveTicker(world, &fakeSaver{fail: map[string]bool{"dave": true}},
		WithTickerClock(func() time.Time { return base }))

	if err := at.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	testutil.AssertEqual(t, "dave kept", world.GetPlayer("dave") != nil, true)
}

type failingNotifier struct {
	calls int
}

func (n *failingNotifier) PublishToPlayer(string, []byte) error {
	n.calls++
	return errors.New("no connection")
}

func TestAutosaveTicker_IdleNoticeFailureStillRemoves(t *testing.T) {
	now := time.Now()
	world := game.NewWorldState(nil)
	if err := world.AddPlayer("dave", game.NewCharacter("dave", game.ClassThief, game.RaceElf)); err != nil {
		t.Fatal(err)
	}
	world.GetPlayer("dave").LastActivity = now.Add(-time.Hour)

	saver := &fakeSaver{}
	n := &failingNotifier{}
	at := NewAutosaveTicker(world, saver,
		WithIdleTimeout(15*time.Minute),
		WithTickerNotifier(n),
		WithTickerClock(func() time.Time { return now }))

	if err := at.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	testutil.AssertEqual(t, "notice attempted", n.calls, 1)
	testutil.AssertEqual(t, "saved", len(saver.saves["dave"]), 1)
	testutil.AssertEqual(t, "removed", world.GetPlayer("dave") == nil, true)
}
