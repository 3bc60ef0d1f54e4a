package rent

import (
	"context"
	"log/slog"
	"time"

	"github.com/pixil98/mudsave/internal/game"
	"github.com/pixil98/mudsave/internal/metrics"
)

const (
	DefaultAutosaveInterval = 5 * time.Minute
	DefaultIdleTimeout      = 15 * time.Minute
)

// Saver writes a character's belongings. *Service satisfies it.
type Saver interface {
	Save(ctx context.Context, ch *game.Character, reason Reason) error
}

// AutosaveTicker implements game.Ticker. Every interval it crash-saves all
// playing characters, and on every tick it saves and removes players who
// have been idle too long.
type AutosaveTicker struct {
	world    *game.WorldState
	saver    Saver
	notifier Notifier
	metrics  *metrics.Recorder

	interval    time.Duration
	idleTimeout time.Duration
	now         func() time.Time
	lastSweep   time.Time
}

type AutosaveTickerOpt func(*AutosaveTicker)

func WithAutosaveInterval(d time.Duration) AutosaveTickerOpt {
	return func(at *AutosaveTicker) {
		at.interval = d
	}
}

func WithIdleTimeout(d time.Duration) AutosaveTickerOpt {
	return func(at *AutosaveTicker) {
		at.idleTimeout = d
	}
}

func WithTickerNotifier(n Notifier) AutosaveTickerOpt {
	return func(at *AutosaveTicker) {
		at.notifier = n
	}
}

func WithTickerMetrics(m *metrics.Recorder) AutosaveTickerOpt {
	return func(at *AutosaveTicker) {
		at.metrics = m
	}
}

func WithTickerClock(now func() time.Time) AutosaveTickerOpt {
	return func(at *AutosaveTicker) {
		at.now = now
	}
}

func NewAutosaveTicker(world *game.WorldState, saver Saver, opts ...AutosaveTickerOpt) *AutosaveTicker {
	at := &AutosaveTicker{
		world:       world,
		saver:       saver,
		interval:    DefaultAutosaveInterval,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(at)
	}
	at.lastSweep = at.now()
	return at
}

// Tick never returns an error: a failed save is logged and the sweep moves
// on to the next player.
func (at *AutosaveTicker) Tick(ctx context.Context) error {
	now := at.now()
	idleCutoff := now.Add(-at.idleTimeout)
	sweep := now.Sub(at.lastSweep) >= at.interval

	// Collect first; ForEachPlayer holds the world's read lock.
	var idle, playing []*game.PlayerState
	at.world.ForEachPlayer(func(_ string, ps *game.PlayerState) {
		if ps.LastActivity.Before(idleCutoff) {
			idle = append(idle, ps)
		} else if sweep {
			playing = append(playing, ps)
		}
	})

	for _, ps := range idle {
		if err := at.saver.Save(ctx, ps.Character, ReasonIdle); err != nil {
			slog.ErrorContext(ctx, "saving idle player, keeping them in the world", "charId", ps.CharId, "error", err)
			continue
		}
		if at.notifier != nil {
			if err := at.notifier.PublishToPlayer(ps.CharId, []byte("You have been idle too long. Your belongings have been stored.")); err != nil {
				slog.WarnContext(ctx, "notifying idle player", "charId", ps.CharId, "error", err)
			}
		}
		if err := at.world.RemovePlayer(ps.CharId); err != nil {
			slog.ErrorContext(ctx, "removing idle player", "charId", ps.CharId, "error", err)
			continue
		}
		slog.InfoContext(ctx, "idle player saved and removed", "charId", ps.CharId)
	}

	if sweep {
		failed := 0
		for _, ps := range playing {
			if err := at.saver.Save(ctx, ps.Character, ReasonCrash); err != nil {
				failed++
				slog.ErrorContext(ctx, "autosaving player", "charId", ps.CharId, "error", err)
			}
		}
		at.lastSweep = now
		at.metrics.Sweep(metrics.KindRent, at.now().Sub(now).Seconds())
		slog.DebugContext(ctx, "autosave sweep complete", "players", len(playing), "failed", failed)
	}

	return nil
}
