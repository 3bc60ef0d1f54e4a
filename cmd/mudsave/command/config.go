package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/mudsave/internal/logging"
)

type Config struct {
	TickInterval  string             `json:"tick_interval"`
	Log           logging.Config     `json:"log"`
	Storage       StorageConfig      `json:"storage"`
	Rent          RentConfig         `json:"rent"`
	RoomSnapshots RoomSnapshotConfig `json:"room_snapshots"`
	Nats          NatsConfig         `json:"nats"`
	Metrics       MetricsConfig      `json:"metrics"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		el.Add(fmt.Errorf("parsing tick_interval: %w", err))
	} else if d < time.Second {
		el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
	}

	if err := c.Log.Validate(); err != nil {
		el.Add(fmt.Errorf("log: %w", err))
	}
	el.Add(c.Storage.validate())
	el.Add(c.Rent.validate())
	el.Add(c.RoomSnapshots.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Metrics.validate())

	return el.Err()
}

// parseOptionalDuration returns def when s is empty.
func parseOptionalDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
