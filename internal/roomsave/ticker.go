package roomsave

import (
	"context"
	"log/slog"
	"time"

	"github.com/pixil98/mudsave/internal/game"
	"github.com/pixil98/mudsave/internal/metrics"
)

const DefaultSaveInterval = 10 * time.Minute

// RoomSaver writes one room's snapshot. *Service satisfies it.
type RoomSaver interface {
	SaveRoom(ctx context.Context, ri *game.RoomInstance) error
}

// SnapshotTicker implements game.Ticker, saving every persistent room once
// per interval.
type SnapshotTicker struct {
	world   *game.WorldState
	saver   RoomSaver
	metrics *metrics.Recorder

	interval time.Duration
	now      func() time.Time
	lastSave time.Time
}

type SnapshotTickerOpt func(*SnapshotTicker)

func WithSaveInterval(d time.Duration) SnapshotTickerOpt {
	return func(st *SnapshotTicker) {
		st.interval = d
	}
}

func WithTickerMetrics(m *metrics.Recorder) SnapshotTickerOpt {
	return func(st *SnapshotTicker) {
		st.metrics = m
	}
}

func WithTickerClock(now func() time.Time) SnapshotTickerOpt {
	return func(st *SnapshotTicker) {
		st.now = now
	}
}

func NewSnapshotTicker(world *game.WorldState, saver RoomSaver, opts ...SnapshotTickerOpt) *SnapshotTicker {
	st := &SnapshotTicker{
		world:    world,
		saver:    saver,
		interval: DefaultSaveInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(st)
	}
	st.lastSave = st.now()
	return st
}

func (st *SnapshotTicker) Tick(ctx context.Context) error {
	now := st.now()
	if now.Sub(st.lastSave) < st.interval {
		return nil
	}
	st.lastSave = now

	var rooms []*game.RoomInstance
	st.world.ForEachRoom(func(_ string, ri *game.RoomInstance) {
		if def := ri.Room.Get(); def != nil && def.Persistent {
			rooms = append(rooms, ri)
		}
	})

	failed := 0
	for _, ri := range rooms {
		if err := st.saver.SaveRoom(ctx, ri); err != nil {
			failed++
			slog.ErrorContext(ctx, "saving room snapshot", "roomId", ri.Room.Id(), "error", err)
		}
	}

	st.metrics.Sweep(metrics.KindRoom, st.now().Sub(now).Seconds())
	slog.DebugContext(ctx, "room snapshot sweep complete", "rooms", len(rooms), "failed", failed)
	return nil
}
