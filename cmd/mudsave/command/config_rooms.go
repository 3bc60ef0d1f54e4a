package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/mudsave/internal/game"
	"github.com/pixil98/mudsave/internal/metrics"
	"github.com/pixil98/mudsave/internal/roomsave"
)

type RoomSnapshotConfig struct {
	Path         string `json:"path"`
	SaveInterval string `json:"save_interval"`
	CacheSize    int    `json:"cache_size"`
}

func (c *RoomSnapshotConfig) validate() error {
	el := errors.NewErrorList()

	if c.Path == "" {
		el.Add(fmt.Errorf("room_snapshots: path is required"))
	}
	if _, err := parseOptionalDuration(c.SaveInterval, roomsave.DefaultSaveInterval); err != nil {
		el.Add(fmt.Errorf("room_snapshots: parsing save_interval: %w", err))
	}
	if c.CacheSize < 0 {
		el.Add(fmt.Errorf("room_snapshots: cache_size must not be negative"))
	}

	return el.Err()
}

func (c *RoomSnapshotConfig) buildService(dict *game.Dictionary, m *metrics.Recorder) (*roomsave.Service, error) {
	opts := []roomsave.ServiceOpt{roomsave.WithMetrics(m)}
	if c.CacheSize > 0 {
		opts = append(opts, roomsave.WithCacheSize(c.CacheSize))
	}
	return roomsave.NewService(c.Path, dict.Objects, dict.Mobiles, opts...)
}

func (c *RoomSnapshotConfig) buildTicker(world *game.WorldState, svc *roomsave.Service, m *metrics.Recorder) (*roomsave.SnapshotTicker, error) {
	interval, err := parseOptionalDuration(c.SaveInterval, roomsave.DefaultSaveInterval)
	if err != nil {
		return nil, fmt.Errorf("parsing save_interval: %w", err)
	}
	return roomsave.NewSnapshotTicker(world, svc,
		roomsave.WithSaveInterval(interval),
		roomsave.WithTickerMetrics(m)), nil
}
