package ravenscube

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleQueued(t *testing.T) {
	e, s := newTestEngine(t)

	done := 0
	var sources []Source
	e.OnShuffleDone(func() { done++ })
	e.OnSettle(func(r Rotation) { sources = append(sources, r.Source) })

	require.Equal(t, Accepted, e.Shuffle())
	assert.True(t, e.Busy())
	assert.Equal(t, RejectedBusy, e.RotateLayer(R))
	assert.Equal(t, RejectedBusy, e.TriggerFromFaceClick(Top))
	assert.Equal(t, RejectedBusy, e.Shuffle())

	// Steps are spaced by the shuffle interval.
	s.Advance(DefaultShuffleInterval)
	assert.Len(t, e.Moves(), 1)

	s.Advance(time.Duration(DefaultShuffleMoves) * DefaultShuffleInterval)

	assert.Len(t, e.Moves(), DefaultShuffleMoves)
	assert.Equal(t, 1, done)
	assert.False(t, e.Busy())
	require.NoError(t, e.Cube().Validate())
	for _, src := range sources {
		assert.Equal(t, SourceShuffle, src)
	}

	assert.Equal(t, Accepted, e.RotateLayer(R), "commands are accepted again once the shuffle is done")
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	run := func() []Move {
		s := &manualScheduler{}
		e := NewEngine(WithScheduler(s), WithRand(rand.New(rand.NewSource(99))))
		e.Open()
		require.Equal(t, Accepted, e.Shuffle())
		s.Advance(time.Minute)
		return e.Moves()
	}

	first, second := run(), run()
	assert.Len(t, first, DefaultShuffleMoves)
	assert.Equal(t, first, second)
}

func TestShuffleUsesEveryLayer(t *testing.T) {
	e, s := newTestEngine(t, WithShuffleMoves(400))
	require.Equal(t, Accepted, e.Shuffle())
	s.Advance(time.Hour)

	seen := make(map[Move]bool)
	for _, m := range e.Moves() {
		require.NoError(t, m.Validate())
		seen[m] = true
	}
	assert.Len(t, seen, 18, "axis, layer and direction should all vary")
}

func TestShuffleShortInterval(t *testing.T) {
	// An interval below the animation duration still waits for each step
	// to settle.
	e, s := newTestEngine(t, WithShuffleInterval(50*time.Millisecond))
	require.Equal(t, Accepted, e.Shuffle())

	s.Advance(DefaultAnimationDuration)
	assert.Len(t, e.Moves(), 1)
	assert.True(t, e.Snapshot().Rotation != nil, "the next step should start immediately")

	s.Advance(time.Duration(DefaultShuffleMoves) * DefaultAnimationDuration)
	assert.Len(t, e.Moves(), DefaultShuffleMoves)
	assert.False(t, e.Busy())
}

func TestShuffleZeroMoves(t *testing.T) {
	e, _ := newTestEngine(t, WithShuffleMoves(0))
	done := false
	e.OnShuffleDone(func() { done = true })

	assert.Equal(t, Accepted, e.Shuffle())
	assert.True(t, done)
	assert.False(t, e.Busy())
	assert.True(t, e.Cube().IsSolved())
}

func TestShuffleRejectedWhenBusyOrClosed(t *testing.T) {
	e, _ := newTestEngine(t)
	require.Equal(t, Accepted, e.RotateLayer(F))
	assert.Equal(t, RejectedBusy, e.Shuffle())

	e.Close()
	assert.Equal(t, RejectedClosed, e.Shuffle())
}

func TestResetAbandonsShuffle(t *testing.T) {
	e, s := newTestEngine(t)
	done := false
	e.OnShuffleDone(func() { done = true })

	require.Equal(t, Accepted, e.Shuffle())
	s.Advance(3 * DefaultShuffleInterval)
	e.Reset()

	assert.False(t, e.Busy())
	s.Advance(time.Minute)
	assert.Empty(t, e.Moves())
	assert.True(t, e.Cube().IsSolved())
	assert.False(t, done)
}

func TestLegacyShuffle(t *testing.T) {
	e, s := newTestEngine(t, WithLegacyShuffle(true))
	done := 0
	e.OnShuffleDone(func() { done++ })

	require.Equal(t, Accepted, e.Shuffle())
	assert.Equal(t, RejectedBusy, e.RotateLayer(R))

	s.Advance(time.Duration(DefaultShuffleMoves-1) * DefaultShuffleInterval)
	assert.Len(t, e.Moves(), DefaultShuffleMoves-1)
	assert.True(t, e.Busy())

	s.Advance(DefaultAnimationDuration)
	assert.Len(t, e.Moves(), DefaultShuffleMoves)
	assert.Equal(t, 1, done)
	assert.False(t, e.Busy())
	require.NoError(t, e.Cube().Validate())
}

func TestLegacyShuffleOverlappingSteps(t *testing.T) {
	// With the interval shorter than the animation, steps overlap. Every
	// step must still commit exactly once.
	e, s := newTestEngine(t,
		WithLegacyShuffle(true),
		WithShuffleInterval(100*time.Millisecond),
	)

	var started []Move
	e.OnRotate(func(r Rotation) { started = append(started, r.Move) })

	require.Equal(t, Accepted, e.Shuffle())
	s.Advance(250 * time.Millisecond)
	assert.Len(t, started, 3)
	assert.Empty(t, e.Moves(), "nothing has settled yet")

	s.Advance(time.Minute)
	assert.Equal(t, started, e.Moves())
	assert.False(t, e.Busy())
	require.NoError(t, e.Cube().Validate())
}
