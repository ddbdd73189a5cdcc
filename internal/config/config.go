// Package config loads ravenscube settings from an HCL file.
//
// Every block and attribute is optional:
//
//	animation {
//	  duration = "380ms"
//	}
//
//	shuffle {
//	  moves    = 15
//	  interval = "420ms"
//	  legacy   = false
//	  seed     = 0 # 0 picks a time-based seed
//	}
//
//	orbit {
//	  sensitivity    = 0.5
//	  drag_threshold = 5
//	  pitch          = -25
//	  yaw            = 35
//	}
//
//	journal {
//	  enabled = true
//	  path    = "~/.ravenscube/ravenscube.db"
//	}
package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SeamusWaldron/ravenscube"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ErrInvalidConfig is returned for values that parse but make no sense.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config holds the resolved settings.
type Config struct {
	AnimationDuration time.Duration
	ShuffleMoves      int
	ShuffleInterval   time.Duration
	LegacyShuffle     bool
	Seed              int64

	OrbitSensitivity float64
	DragThreshold    float64
	Pitch            float64
	Yaw              float64

	JournalEnabled bool
	JournalPath    string // empty means the default database path
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		AnimationDuration: ravenscube.DefaultAnimationDuration,
		ShuffleMoves:      ravenscube.DefaultShuffleMoves,
		ShuffleInterval:   ravenscube.DefaultShuffleInterval,
		OrbitSensitivity:  ravenscube.DefaultOrbitSensitivity,
		DragThreshold:     ravenscube.DefaultDragThreshold,
		Pitch:             ravenscube.DefaultPitch,
		Yaw:               ravenscube.DefaultYaw,
		JournalEnabled:    true,
	}
}

// hclFile mirrors the file layout for decoding.
type hclFile struct {
	Animation *hclAnimation `hcl:"animation,block"`
	Shuffle   *hclShuffle   `hcl:"shuffle,block"`
	Orbit     *hclOrbit     `hcl:"orbit,block"`
	Journal   *hclJournal   `hcl:"journal,block"`
}

type hclAnimation struct {
	Duration *string `hcl:"duration,optional"`
}

type hclShuffle struct {
	Moves    *int    `hcl:"moves,optional"`
	Interval *string `hcl:"interval,optional"`
	Legacy   *bool   `hcl:"legacy,optional"`
	Seed     *int64  `hcl:"seed,optional"`
}

type hclOrbit struct {
	Sensitivity   *float64 `hcl:"sensitivity,optional"`
	DragThreshold *float64 `hcl:"drag_threshold,optional"`
	Pitch         *float64 `hcl:"pitch,optional"`
	Yaw           *float64 `hcl:"yaw,optional"`
}

type hclJournal struct {
	Enabled *bool   `hcl:"enabled,optional"`
	Path    *string `hcl:"path,optional"`
}

// Load reads the file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	var raw hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}

	cfg := Default()
	if err := cfg.apply(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

func (c *Config) apply(raw *hclFile) error {
	var err error

	if a := raw.Animation; a != nil && a.Duration != nil {
		if c.AnimationDuration, err = parseDuration("animation.duration", *a.Duration); err != nil {
			return err
		}
	}

	if s := raw.Shuffle; s != nil {
		if s.Moves != nil {
			if *s.Moves < 0 {
				return fmt.Errorf("%w: shuffle.moves must not be negative, got %d", ErrInvalidConfig, *s.Moves)
			}
			c.ShuffleMoves = *s.Moves
		}
		if s.Interval != nil {
			if c.ShuffleInterval, err = parseDuration("shuffle.interval", *s.Interval); err != nil {
				return err
			}
		}
		if s.Legacy != nil {
			c.LegacyShuffle = *s.Legacy
		}
		if s.Seed != nil {
			c.Seed = *s.Seed
		}
	}

	if o := raw.Orbit; o != nil {
		if o.Sensitivity != nil {
			c.OrbitSensitivity = *o.Sensitivity
		}
		if o.DragThreshold != nil {
			if *o.DragThreshold < 0 {
				return fmt.Errorf("%w: orbit.drag_threshold must not be negative", ErrInvalidConfig)
			}
			c.DragThreshold = *o.DragThreshold
		}
		if o.Pitch != nil {
			c.Pitch = *o.Pitch
		}
		if o.Yaw != nil {
			c.Yaw = *o.Yaw
		}
	}

	if j := raw.Journal; j != nil {
		if j.Enabled != nil {
			c.JournalEnabled = *j.Enabled
		}
		if j.Path != nil {
			c.JournalPath = expandHome(*j.Path)
		}
	}

	return nil
}

func parseDuration(name, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, name)
	}
	return d, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// EngineOptions converts the settings to engine options.
func (c *Config) EngineOptions() []ravenscube.Option {
	opts := []ravenscube.Option{
		ravenscube.WithAnimationDuration(c.AnimationDuration),
		ravenscube.WithShuffleMoves(c.ShuffleMoves),
		ravenscube.WithShuffleInterval(c.ShuffleInterval),
		ravenscube.WithLegacyShuffle(c.LegacyShuffle),
		ravenscube.WithOrbitSensitivity(c.OrbitSensitivity),
		ravenscube.WithDragThreshold(c.DragThreshold),
		ravenscube.WithDefaultOrbit(c.Pitch, c.Yaw),
	}
	if c.Seed != 0 {
		opts = append(opts, ravenscube.WithRand(rand.New(rand.NewSource(c.Seed))))
	}
	return opts
}

// DefaultPath returns ~/.ravenscube/config.hcl.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ravenscube", "config.hcl"), nil
}
