package command

import (
	"fmt"
	"net"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pixil98/mudsave/internal/metrics"
)

type MetricsConfig struct {
	// Addr is where /metrics is served; empty disables metrics.
	Addr string `json:"addr"`
}

func (c *MetricsConfig) validate() error {
	if c.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("metrics: invalid addr %q: %w", c.Addr, err)
	}
	return nil
}

// build returns the recorder and its server, or nils when disabled.
func (c *MetricsConfig) build() (*metrics.Recorder, *metrics.Server) {
	if c.Addr == "" {
		return nil, nil
	}
	reg := prometheus.NewRegistry()
	return metrics.NewRecorder(reg), metrics.NewServer(c.Addr, reg)
}
