package ravenscube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerClick(t *testing.T) {
	e, s := newTestEngine(t)

	e.PointerDown(100, 100, Front)
	require.Equal(t, Accepted, e.PointerUp())
	s.Advance(DefaultAnimationDuration)
	assert.Equal(t, []Move{F}, e.Moves())
}

func TestPointerJitterStillClicks(t *testing.T) {
	e, _ := newTestEngine(t)

	e.PointerDown(100, 100, Right)
	e.PointerMove(103, 104)
	e.PointerMove(105, 95) // exactly at the threshold on both axes
	assert.False(t, e.Dragging())

	// Small moves still orbit.
	_, yaw := e.Orientation()
	assert.Equal(t, DefaultYaw+2.5, yaw)

	assert.Equal(t, Accepted, e.PointerUp())
}

func TestPointerDragIsNotClick(t *testing.T) {
	e, _ := newTestEngine(t)

	e.PointerDown(100, 100, Front)
	e.PointerMove(106, 100)
	assert.True(t, e.Dragging())

	pitch, yaw := e.Orientation()
	assert.Equal(t, DefaultYaw+3, yaw)
	assert.Equal(t, DefaultPitch, pitch)

	// Coming back near the press point does not undo the drag.
	e.PointerMove(100, 100)
	assert.Equal(t, Ignored, e.PointerUp())
	assert.Equal(t, StateIdle, e.State())
}

func TestPointerVerticalDrag(t *testing.T) {
	e, _ := newTestEngine(t)

	e.PointerDown(50, 50, FaceNone)
	e.PointerMove(50, 60)
	e.PointerMove(50, 70)
	pitch, _ := e.Orientation()
	assert.Equal(t, DefaultPitch-10, pitch)
	assert.Equal(t, Ignored, e.PointerUp())
}

func TestPointerMissIgnored(t *testing.T) {
	e, _ := newTestEngine(t)

	e.PointerDown(10, 10, FaceNone)
	assert.Equal(t, Ignored, e.PointerUp())
	assert.Equal(t, StateIdle, e.State())
}

func TestPointerUpWithoutDown(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.Equal(t, Ignored, e.PointerUp())

	e.PointerMove(500, 500)
	pitch, yaw := e.Orientation()
	assert.Equal(t, DefaultPitch, pitch)
	assert.Equal(t, DefaultYaw, yaw)
}

func TestPointerCancel(t *testing.T) {
	e, _ := newTestEngine(t)

	e.PointerDown(100, 100, Top)
	e.PointerCancel()
	assert.Equal(t, Ignored, e.PointerUp())
	assert.Equal(t, StateIdle, e.State())
}

func TestPointerClickWhileBusy(t *testing.T) {
	e, _ := newTestEngine(t)

	require.Equal(t, Accepted, e.RotateLayer(L))
	e.PointerDown(100, 100, Back)
	assert.Equal(t, RejectedBusy, e.PointerUp())
}

func TestPointerCustomThreshold(t *testing.T) {
	e, _ := newTestEngine(t, WithDragThreshold(20))

	e.PointerDown(0, 0, Bottom)
	e.PointerMove(15, 15)
	assert.False(t, e.Dragging())
	assert.Equal(t, Accepted, e.PointerUp())
}
