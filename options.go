package ravenscube

import (
	"io"
	"log/slog"
	"math/rand"
	"time"
)

// Defaults match the widget's reference timings and feel.
const (
	DefaultAnimationDuration = 380 * time.Millisecond
	DefaultShuffleInterval   = 420 * time.Millisecond
	DefaultShuffleMoves      = 15
	DefaultOrbitSensitivity  = 0.5
	DefaultDragThreshold     = 5.0
	DefaultPitch             = -25.0
	DefaultYaw               = 35.0
	MaxPitch                 = 80.0

	DefaultStickerSize = 58.0
	DefaultStickerGap  = 3.0
)

// Option configures Engine behavior.
type Option func(*config)

type config struct {
	animationDuration time.Duration
	shuffleMoves      int
	shuffleInterval   time.Duration
	legacyShuffle     bool
	sensitivity       float64
	dragThreshold     float64
	pitch             float64
	yaw               float64
	scheduler         Scheduler
	rand              *rand.Rand
	logger            *slog.Logger
}

func defaultConfig() *config {
	return &config{
		animationDuration: DefaultAnimationDuration,
		shuffleMoves:      DefaultShuffleMoves,
		shuffleInterval:   DefaultShuffleInterval,
		sensitivity:       DefaultOrbitSensitivity,
		dragThreshold:     DefaultDragThreshold,
		pitch:             DefaultPitch,
		yaw:               DefaultYaw,
		scheduler:         TimerScheduler{},
		rand:              rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithAnimationDuration sets how long a layer rotation animates before the
// new state is committed.
func WithAnimationDuration(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.animationDuration = d
		}
	}
}

// WithShuffleMoves sets how many random rotations a shuffle performs.
func WithShuffleMoves(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.shuffleMoves = n
		}
	}
}

// WithShuffleInterval sets the spacing between shuffle steps. In the default
// mode a step never starts before the previous one has settled, so only the
// part of the interval that exceeds the animation duration adds a pause.
func WithShuffleInterval(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.shuffleInterval = d
		}
	}
}

// WithLegacyShuffle enables the fixed-interval shuffle: each step clears the
// busy flag and fires regardless of whether the previous rotation settled.
// With an interval shorter than the animation duration, visual and logical
// state can disagree until the last step settles.
func WithLegacyShuffle(enabled bool) Option {
	return func(c *config) {
		c.legacyShuffle = enabled
	}
}

// WithOrbitSensitivity sets the degrees of orbit per pixel of drag.
func WithOrbitSensitivity(s float64) Option {
	return func(c *config) {
		c.sensitivity = s
	}
}

// WithDragThreshold sets the displacement, in pixels on either axis, beyond
// which a press becomes a drag instead of a click.
func WithDragThreshold(px float64) Option {
	return func(c *config) {
		if px >= 0 {
			c.dragThreshold = px
		}
	}
}

// WithDefaultOrbit sets the pitch and yaw restored on open and reset.
func WithDefaultOrbit(pitch, yaw float64) Option {
	return func(c *config) {
		c.pitch = clampPitch(pitch)
		c.yaw = yaw
	}
}

// WithScheduler sets the scheduler used for deferred rotation completion.
func WithScheduler(s Scheduler) Option {
	return func(c *config) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithRand sets the random source used by Shuffle.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithLogger sets the logger. By default the engine logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func clampPitch(p float64) float64 {
	if p > MaxPitch {
		return MaxPitch
	}
	if p < -MaxPitch {
		return -MaxPitch
	}
	return p
}
