package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/mudsave/internal/game"
	"github.com/pixil98/mudsave/internal/metrics"
	"github.com/pixil98/mudsave/internal/objsave"
	"github.com/pixil98/mudsave/internal/rent"
)

type RentConfig struct {
	Path             string `json:"path"`
	AutosaveInterval string `json:"autosave_interval"`
	IdleTimeout      string `json:"idle_timeout"`
	ChargeRent       bool   `json:"charge_rent"`
}

func (c *RentConfig) validate() error {
	el := errors.NewErrorList()

	if c.Path == "" {
		el.Add(fmt.Errorf("rent: path is required"))
	}
	if _, err := parseOptionalDuration(c.AutosaveInterval, rent.DefaultAutosaveInterval); err != nil {
		el.Add(fmt.Errorf("rent: parsing autosave_interval: %w", err))
	}
	if _, err := parseOptionalDuration(c.IdleTimeout, rent.DefaultIdleTimeout); err != nil {
		el.Add(fmt.Errorf("rent: parsing idle_timeout: %w", err))
	}

	return el.Err()
}

func (c *RentConfig) buildService(protos objsave.Prototypes, n rent.Notifier, m *metrics.Recorder) *rent.Service {
	opts := []rent.ServiceOpt{
		rent.WithMetrics(m),
		rent.WithRentCharge(c.ChargeRent),
	}
	if n != nil {
		opts = append(opts, rent.WithNotifier(n))
	}
	return rent.NewService(c.Path, protos, opts...)
}

func (c *RentConfig) buildTicker(world *game.WorldState, svc *rent.Service, n rent.Notifier, m *metrics.Recorder) (*rent.AutosaveTicker, error) {
	interval, err := parseOptionalDuration(c.AutosaveInterval, rent.DefaultAutosaveInterval)
	if err != nil {
		return nil, fmt.Errorf("parsing autosave_interval: %w", err)
	}
	idle, err := parseOptionalDuration(c.IdleTimeout, rent.DefaultIdleTimeout)
	if err != nil {
		return nil, fmt.Errorf("parsing idle_timeout: %w", err)
	}

	opts := []rent.AutosaveTickerOpt{
		rent.WithAutosaveInterval(interval),
		rent.WithIdleTimeout(idle),
		rent.WithTickerMetrics(m),
	}
	if n != nil {
		opts = append(opts, rent.WithTickerNotifier(n))
	}
	return rent.NewAutosaveTicker(world, svc, opts...), nil
}
