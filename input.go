package ravenscube

import "math"

// gesture tracks one press-move-release sequence.
type gesture struct {
	active bool
	moved  bool
	startX float64
	startY float64
	lastX  float64
	lastY  float64
	target Face
}

// PointerDown starts a gesture at (x, y). target is the face of the sticker
// under the pointer, or FaceNone if the press missed every sticker. Mouse and
// touch input share this path.
func (e *Engine) PointerDown(x, y float64, target Face) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gesture = gesture{
		active: true,
		startX: x,
		startY: y,
		lastX:  x,
		lastY:  y,
		target: target,
	}
}

// PointerMove orbits the cube by the displacement since the last sample.
// Once the pointer has strayed past the drag threshold on either axis, the
// gesture can no longer become a click.
func (e *Engine) PointerMove(x, y float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := &e.gesture
	if !g.active {
		return
	}
	if math.Abs(x-g.startX) > e.cfg.dragThreshold || math.Abs(y-g.startY) > e.cfg.dragThreshold {
		g.moved = true
	}
	e.orbitLocked(x-g.lastX, y-g.lastY)
	g.lastX = x
	g.lastY = y
}

// PointerUp ends the gesture. A release that never crossed the drag threshold
// and started on a sticker is a click on that sticker's face; anything else
// returns Ignored.
func (e *Engine) PointerUp() Result {
	e.mu.Lock()
	g := e.gesture
	e.gesture = gesture{}
	e.mu.Unlock()

	if !g.active || g.moved || !g.target.Valid() {
		return Ignored
	}
	return e.TriggerFromFaceClick(g.target)
}

// PointerCancel abandons the gesture without clicking.
func (e *Engine) PointerCancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gesture = gesture{}
}

// Dragging reports whether a gesture is in progress and has become a drag.
func (e *Engine) Dragging() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gesture.active && e.gesture.moved
}
