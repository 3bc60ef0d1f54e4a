package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/mudsave/internal/game"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	for _, sub := range []string{"zones", "rooms", "mobiles", "objects"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			t.Fatalf("creating %s: %v", sub, err)
		}
	}

	return &Config{
		TickInterval: "2s",
		Storage: StorageConfig{
			Zones:   AssetConfig[*game.Zone]{Path: filepath.Join(dir, "zones")},
			Rooms:   AssetConfig[*game.Room]{Path: filepath.Join(dir, "rooms")},
			Mobiles: AssetConfig[*game.Mobile]{Path: filepath.Join(dir, "mobiles")},
			Objects: AssetConfig[*game.Object]{Path: filepath.Join(dir, "objects")},
		},
		Rent:          RentConfig{Path: filepath.Join(dir, "rent")},
		RoomSnapshots: RoomSnapshotConfig{Path: filepath.Join(dir, "rooms-saved")},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		modify func(*Config)
		expErr string
	}{
		"valid": {
			modify: func(*Config) {},
		},
		"bad tick interval": {
			modify: func(c *Config) { c.TickInterval = "soon" },
			expErr: "parsing tick_interval",
		},
		"tick interval too short": {
			modify: func(c *Config) { c.TickInterval = "10ms" },
			expErr: "at least 1 second",
		},
		"bad log level": {
			modify: func(c *Config) { c.Log.Level = "loud" },
			expErr: "unknown log level",
		},
		"missing object path": {
			modify: func(c *Config) { c.Storage.Objects.Path = "" },
			expErr: "objects: path is required",
		},
		"nonexistent zone path": {
			modify: func(c *Config) { c.Storage.Zones.Path = "/nonexistent/zones" },
			expErr: "zones: invalid path",
		},
		"missing rent path": {
			modify: func(c *Config) { c.Rent.Path = "" },
			expErr: "rent: path is required",
		},
		"bad idle timeout": {
			modify: func(c *Config) { c.Rent.IdleTimeout = "forever" },
			expErr: "parsing idle_timeout",
		},
		"bad save interval": {
			modify: func(c *Config) { c.RoomSnapshots.SaveInterval = "hourly" },
			expErr: "parsing save_interval",
		},
		"negative cache size": {
			modify: func(c *Config) { c.RoomSnapshots.CacheSize = -1 },
			expErr: "cache_size must not be negative",
		},
		"bad nats timeout": {
			modify: func(c *Config) { c.Nats.StartTimeout = "later" },
			expErr: "parsing start_timeout",
		},
		"nats port out of range": {
			modify: func(c *Config) { c.Nats.Port = 70000 },
			expErr: "out of range",
		},
		"bad metrics addr": {
			modify: func(c *Config) { c.Metrics.Addr = "nohost" },
			expErr: "metrics: invalid addr",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t)
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tc.expErr)
		})
	}
}

func TestBuildWorkers(t *testing.T) {
	tests := map[string]struct {
		modify     func(*Config)
		expWorkers []string
	}{
		"driver only": {
			modify:     func(*Config) {},
			expWorkers: []string{"driver"},
		},
		"with metrics": {
			modify:     func(c *Config) { c.Metrics.Addr = "127.0.0.1:0" },
			expWorkers: []string{"driver", "metrics"},
		},
		"with nats": {
			modify: func(c *Config) {
				c.Nats.Enabled = true
				c.Nats.InProcess = true
			},
			expWorkers: []string{"driver", "nats"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t)
			tc.modify(cfg)

			workers, err := BuildWorkers(cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "worker count", len(workers), len(tc.expWorkers))
			for _, name := range tc.expWorkers {
				if _, ok := workers[name]; !ok {
					t.Errorf("missing worker %q", name)
				}
			}
		})
	}
}

func TestBuildWorkers_WrongConfigType(t *testing.T) {
	_, err := BuildWorkers("not a config")
	testutil.AssertErrorContains(t, err, "unable to cast config")
}
