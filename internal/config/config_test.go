package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SeamusWaldron/ravenscube"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFull(t *testing.T) {
	src := `
animation {
  duration = "200ms"
}

shuffle {
  moves    = 30
  interval = "1s"
  legacy   = true
  seed     = 42
}

orbit {
  sensitivity    = 0.25
  drag_threshold = 8
  pitch          = -10
  yaw            = 90
}

journal {
  enabled = false
  path    = "/tmp/cube.db"
}
`
	cfg, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)

	want := &Config{
		AnimationDuration: 200 * time.Millisecond,
		ShuffleMoves:      30,
		ShuffleInterval:   time.Second,
		LegacyShuffle:     true,
		Seed:              42,
		OrbitSensitivity:  0.25,
		DragThreshold:     8,
		Pitch:             -10,
		Yaw:               90,
		JournalEnabled:    false,
		JournalPath:       "/tmp/cube.db",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`shuffle { moves = 5 }`), "partial.hcl")
	require.NoError(t, err)

	want := Default()
	want.ShuffleMoves = 5
	assert.Equal(t, want, cfg)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil, "empty.hcl")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		invalid bool
	}{
		{"syntax", `animation {`, false},
		{"unknown block", `colors {}`, false},
		{"wrong type", `shuffle { moves = "many" }`, false},
		{"bad duration", `animation { duration = "soon" }`, true},
		{"negative duration", `shuffle { interval = "-1s" }`, true},
		{"negative moves", `shuffle { moves = -3 }`, true},
		{"negative threshold", `orbit { drag_threshold = -1 }`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`orbit { yaw = 0 }`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Yaw)
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.Pitch = 10
	cfg.Yaw = 20
	cfg.OrbitSensitivity = 1

	e := ravenscube.NewEngine(cfg.EngineOptions()...)
	e.Open()
	pitch, yaw := e.Orientation()
	assert.Equal(t, 10.0, pitch)
	assert.Equal(t, 20.0, yaw)

	e.Orbit(5, 0)
	_, yaw = e.Orientation()
	assert.Equal(t, 25.0, yaw)
}

func TestEngineOptionsSeed(t *testing.T) {
	cfg := Default()
	cfg.Seed = 7
	assert.Len(t, cfg.EngineOptions(), 8)

	cfg.Seed = 0
	assert.Len(t, cfg.EngineOptions(), 7)
}
