package ravenscube

import (
	"math/rand"
	"sync"
	"testing"
	"time"
)

// manualScheduler is a Scheduler whose clock only moves when Advance is
// called. Tasks fire in due order on the caller's goroutine.
type manualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask

	// ignoreStop makes stop functions report success without stopping
	// anything, so late completions still fire.
	ignoreStop bool
}

type manualTask struct {
	due     time.Duration
	seq     int
	f       func()
	fired   bool
	stopped bool
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTask{due: s.now + d, seq: s.seq, f: f}
	s.tasks = append(s.tasks, t)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.ignoreStop || t.fired || t.stopped {
			return !t.fired
		}
		t.stopped = true
		return true
	}
}

// Advance moves the clock forward by d, firing every task that comes due,
// including tasks scheduled by tasks that fire along the way.
func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		var next *manualTask
		for _, t := range s.tasks {
			if t.fired || t.stopped || t.due > target {
				continue
			}
			if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
				next = t
			}
		}
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		next.fired = true
		s.now = next.due
		s.mu.Unlock()

		next.f()
	}
}

// Pending returns the number of tasks that have neither fired nor stopped.
func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// newTestEngine returns an open engine driven by a manual scheduler.
func newTestEngine(t *testing.T, opts ...Option) (*Engine, *manualScheduler) {
	t.Helper()
	s := &manualScheduler{}
	opts = append([]Option{WithScheduler(s), WithRand(rand.New(rand.NewSource(1)))}, opts...)
	e := NewEngine(opts...)
	e.Open()
	return e, s
}

// allMoves returns every quarter turn: 3 axes x 3 layers x 2 directions.
func allMoves() []Move {
	var moves []Move
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		for layer := -1; layer <= 1; layer++ {
			for _, d := range []Direction{CW, CCW} {
				moves = append(moves, Move{Axis: a, Layer: layer, Dir: d})
			}
		}
	}
	return moves
}

// randomMoves returns n moves from a seeded source.
func randomMoves(seed int64, n int) []Move {
	r := rand.New(rand.NewSource(seed))
	all := allMoves()
	out := make([]Move, n)
	for i := range out {
		out[i] = all[r.Intn(len(all))]
	}
	return out
}

// inlineScheduler runs every task before AfterFunc returns.
type inlineScheduler struct{}

func (inlineScheduler) AfterFunc(_ time.Duration, f func()) func() bool {
	f()
	return func() bool { return false }
}

// undo returns the sequence that reverses moves.
func undo(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}
