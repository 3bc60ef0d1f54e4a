package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		cfg    Config
		expErr string
	}{
		"defaults":      {cfg: Config{}},
		"json debug":    {cfg: Config{Level: "DEBUG", Format: "json"}},
		"bad level":     {cfg: Config{Level: "loud"}, expErr: `unknown log level "loud"`},
		"bad format":    {cfg: Config{Format: "xml"}, expErr: `unknown log format "xml"`},
		"warn spelling": {cfg: Config{Level: "warning", Format: "text"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := Config{Level: "warn", Format: "json"}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("object nested too deep, clamping", "depth", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	testutil.AssertEqual(t, "lines", len(lines), 1)

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not json: %v", err)
	}
	testutil.AssertEqual(t, "msg", entry["msg"], any("object nested too deep, clamping"))
	testutil.AssertEqual(t, "depth", entry["depth"], any(float64(7)))
	testutil.AssertEqual(t, "service", entry["service"], any("mudsave"))
}
