package ravenscube

import (
	"sync"
	"time"
)

// State is the engine's animation state.
type State int

const (
	// StateIdle accepts rotation commands.
	StateIdle State = iota
	// StateAnimating rejects rotation commands until the current rotation
	// (or shuffle) has settled.
	StateAnimating
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// Result is the outcome of a rotation command.
type Result int

const (
	Accepted        Result = iota // Rotation started
	RejectedBusy                  // Another rotation or shuffle is in progress
	RejectedInvalid               // Move or face not recognized
	RejectedClosed                // Widget is closed
	Ignored                       // Pointer release that was a drag, not a click
)

func (r Result) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case RejectedBusy:
		return "busy"
	case RejectedInvalid:
		return "invalid"
	case RejectedClosed:
		return "closed"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

// OK reports whether the command started a rotation.
func (r Result) OK() bool {
	return r == Accepted
}

// Source identifies what issued a rotation.
type Source int

const (
	SourceAPI     Source = iota // RotateLayer called directly
	SourceFace                  // Sticker click
	SourceShuffle               // Shuffle step
)

func (s Source) String() string {
	switch s {
	case SourceAPI:
		return "api"
	case SourceFace:
		return "face"
	case SourceShuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// Rotation describes a layer rotation in flight. The view should turn the
// listed cubies by Move.Angle() degrees around Move.Axis over Duration, then
// redraw from the committed state once the rotation settles.
type Rotation struct {
	Seq      uint64
	Move     Move
	Cubies   []int // IDs of the cubies on the layer when the rotation started
	Source   Source
	Duration time.Duration
}

// Snapshot is a copy of everything a view needs to draw the widget.
type Snapshot struct {
	Open     bool
	State    State
	Pitch    float64
	Yaw      float64
	Cubies   [CubieCount]Cubie
	Rotation *Rotation // nil unless a rotation is in flight
}

// Engine owns one widget session: the cube, the orbit angles, the
// Idle/Animating state machine and the pointer gesture in progress.
//
// Create an Engine with NewEngine, then Open it:
//
//	e := ravenscube.NewEngine(ravenscube.WithAnimationDuration(300 * time.Millisecond))
//	e.OnSettle(func(r ravenscube.Rotation) { redraw(e.Snapshot()) })
//	e.Open()
//	e.TriggerFromFaceClick(ravenscube.Front)
//
// All methods are safe for concurrent use. Callbacks run outside the
// engine's lock and may call back into the engine.
type Engine struct {
	cfg *config

	mu        sync.Mutex
	open      bool
	tracker   *Tracker // nil while closed
	pitch     float64
	yaw       float64
	animating bool
	pending   int // rotations started but not yet committed
	inflight  *Rotation
	seq       uint64
	shuffle   *shuffleRun
	gesture   gesture

	// gen invalidates scheduled work on open, reset and close.
	gen      uint64
	timerSeq uint64
	timers   map[uint64]func() bool

	// Callbacks
	onRotate      func(Rotation)
	onSettle      func(Rotation)
	onSolved      func()
	onShuffleDone func()
}

type shuffleRun struct {
	remaining []Move
	legacy    bool
}

// effect is work collected under the lock and run after releasing it.
type effect func()

func runEffects(effects []effect) {
	for _, fn := range effects {
		fn()
	}
}

// NewEngine creates a closed engine. Call Open to build the cube.
func NewEngine(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Engine{
		cfg:    cfg,
		pitch:  cfg.pitch,
		yaw:    cfg.yaw,
		timers: make(map[uint64]func() bool),
	}
}

// Event callbacks

// OnRotate sets a callback that fires when a rotation starts animating.
func (e *Engine) OnRotate(cb func(Rotation)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onRotate = cb
}

// OnSettle sets a callback that fires when a rotation has been committed to
// the cube.
func (e *Engine) OnSettle(cb func(Rotation)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onSettle = cb
}

// OnSolved sets a callback that fires when a rotation returns a scrambled
// cube to the solved state.
func (e *Engine) OnSolved(cb func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onSolved = cb
}

// OnShuffleDone sets a callback that fires when the last shuffle step has
// settled.
func (e *Engine) OnShuffleDone(cb func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onShuffleDone = cb
}

// Lifecycle

// Open builds a fresh solved cube, restores the default orbit and makes the
// widget visible.
func (e *Engine) Open() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.restartLocked()
	e.open = true
	e.cfg.logger.Debug("cube opened")
}

// Reset rebuilds the solved cube and restores the default orbit without
// changing visibility. It is always permitted; any rotation or shuffle in
// progress is abandoned and its scheduled completion will not run.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.restartLocked()
	e.cfg.logger.Debug("cube reset", "open", e.open)
}

// Close discards the cube and abandons any pending work.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLocked()
	e.tracker = nil
	e.open = false
	e.gesture = gesture{}
	e.cfg.logger.Debug("cube closed")
}

func (e *Engine) restartLocked() {
	e.cancelLocked()
	if e.tracker == nil {
		e.tracker = NewTracker()
	} else {
		e.tracker.Reset()
	}
	e.pitch = e.cfg.pitch
	e.yaw = e.cfg.yaw
}

// cancelLocked invalidates every scheduled completion and shuffle step.
func (e *Engine) cancelLocked() {
	e.gen++
	for id, stop := range e.timers {
		stop()
		delete(e.timers, id)
	}
	e.animating = false
	e.pending = 0
	e.inflight = nil
	e.shuffle = nil
}

// State access

// IsOpen returns true while the widget is open.
func (e *Engine) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

// State returns StateAnimating while a rotation or shuffle is in progress.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busyLocked() {
		return StateAnimating
	}
	return StateIdle
}

// Busy reports whether rotation commands would currently be rejected as busy.
func (e *Engine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busyLocked()
}

func (e *Engine) busyLocked() bool {
	return e.animating || e.shuffle != nil
}

// Cube returns a copy of the committed cube state, or nil while closed.
func (e *Engine) Cube() *Cube {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tracker == nil {
		return nil
	}
	return e.tracker.Cube().Clone()
}

// Moves returns the rotations committed since the last open or reset.
func (e *Engine) Moves() []Move {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tracker == nil {
		return nil
	}
	return e.tracker.Moves()
}

// Orientation returns the orbit pitch and yaw in degrees.
func (e *Engine) Orientation() (pitch, yaw float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pitch, e.yaw
}

// Snapshot returns a copy of the state a view needs to draw the widget.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		Open:  e.open,
		State: StateIdle,
		Pitch: e.pitch,
		Yaw:   e.yaw,
	}
	if e.busyLocked() {
		s.State = StateAnimating
	}
	if e.tracker != nil {
		s.Cubies = e.tracker.Cube().Cubies()
	}
	if e.inflight != nil {
		r := *e.inflight
		r.Cubies = append([]int(nil), e.inflight.Cubies...)
		s.Rotation = &r
	}
	return s
}

// Orbit

// Orbit turns the view by a pointer displacement. Yaw is unbounded; pitch is
// clamped to [-80, 80] degrees. Orbit is never blocked by an animation.
func (e *Engine) Orbit(dx, dy float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orbitLocked(dx, dy)
}

func (e *Engine) orbitLocked(dx, dy float64) {
	e.yaw += dx * e.cfg.sensitivity
	e.pitch = clampPitch(e.pitch - dy*e.cfg.sensitivity)
}

// Rotation commands

// RotateLayer starts a quarter turn of one layer. The cube state changes
// when the animation settles, not when this returns. Commands issued while
// another rotation is in flight are rejected, not queued.
func (e *Engine) RotateLayer(m Move) Result {
	return e.rotate(m, SourceAPI)
}

// TriggerFromFaceClick rotates the layer that a click on face f controls.
func (e *Engine) TriggerFromFaceClick(f Face) Result {
	m, ok := FaceMove(f)
	if !ok {
		e.mu.Lock()
		open := e.open
		e.mu.Unlock()
		if !open {
			return RejectedClosed
		}
		e.cfg.logger.Debug("face click rejected", "face", f, "result", RejectedInvalid)
		return RejectedInvalid
	}
	return e.rotate(m, SourceFace)
}

func (e *Engine) rotate(m Move, src Source) Result {
	e.mu.Lock()
	res, effects := e.startLocked(m, src)
	e.mu.Unlock()

	if res != Accepted {
		e.cfg.logger.Debug("rotation rejected", "move", m.Notation(), "source", src, "result", res)
	}
	runEffects(effects)
	return res
}

// startLocked validates m and begins its animation.
func (e *Engine) startLocked(m Move, src Source) (Result, []effect) {
	if !e.open || e.tracker == nil {
		return RejectedClosed, nil
	}
	if m.Validate() != nil {
		return RejectedInvalid, nil
	}
	if src != SourceShuffle && e.busyLocked() {
		return RejectedBusy, nil
	}

	e.seq++
	rot := Rotation{
		Seq:      e.seq,
		Move:     m,
		Cubies:   e.tracker.Cube().Layer(m.Axis, m.Layer),
		Source:   src,
		Duration: e.cfg.animationDuration,
	}
	e.animating = true
	e.pending++
	e.inflight = &rot

	var effects []effect
	if cb := e.onRotate; cb != nil {
		r := rot
		effects = append(effects, func() { cb(r) })
	}
	effects = append(effects, e.scheduleLocked(e.cfg.animationDuration, func() []effect {
		return e.settleLocked(rot)
	}))
	return Accepted, effects
}

// settleLocked commits a rotation whose animation has finished.
func (e *Engine) settleLocked(rot Rotation) []effect {
	solved := e.tracker.ApplyMove(rot.Move)
	e.pending--
	if e.pending <= 0 {
		e.pending = 0
		e.animating = false
		e.inflight = nil
	}
	e.cfg.logger.Debug("rotation settled", "move", rot.Move.Notation(), "source", rot.Source, "seq", rot.Seq)

	var effects []effect
	if cb := e.onSettle; cb != nil {
		effects = append(effects, func() { cb(rot) })
	}
	if solved {
		if cb := e.onSolved; cb != nil {
			effects = append(effects, cb)
		}
	}
	if rot.Source == SourceShuffle {
		effects = append(effects, e.continueShuffleLocked()...)
	}
	return effects
}

// scheduleLocked returns an effect that schedules task on the configured
// scheduler. The task runs under the lock and is dropped if the generation
// has moved on by the time it fires.
func (e *Engine) scheduleLocked(d time.Duration, task func() []effect) effect {
	e.timerSeq++
	id := e.timerSeq
	gen := e.gen

	return func() {
		// Set once the task has run. A scheduler may fire before AfterFunc
		// returns, and the stop func must not be kept after that.
		var fired bool
		stop := e.cfg.scheduler.AfterFunc(d, func() {
			e.mu.Lock()
			fired = true
			delete(e.timers, id)
			if e.gen != gen {
				e.mu.Unlock()
				return
			}
			effects := task()
			e.mu.Unlock()
			runEffects(effects)
		})

		e.mu.Lock()
		switch {
		case fired:
		case e.gen == gen:
			e.timers[id] = stop
		default:
			stop()
		}
		e.mu.Unlock()
	}
}
