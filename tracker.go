package ravenscube

// Tracker wraps a Cube, keeps the history of applied moves and detects when
// the cube comes back to a solved state.
type Tracker struct {
	cube      *Cube
	history   []Move
	scrambled bool // true once a move has left the cube unsolved
}

// NewTracker creates a new tracker starting from a solved cube.
func NewTracker() *Tracker {
	return &Tracker{cube: NewCube()}
}

// Reset resets the tracker to a solved cube and clears the history.
func (t *Tracker) Reset() {
	t.cube.Reset()
	t.history = nil
	t.scrambled = false
}

// ApplyMove applies a move and reports whether it returned a scrambled cube
// to solved. Solved follows Cube.IsSolved, so finishing a whole-cube
// rotation counts.
func (t *Tracker) ApplyMove(m Move) bool {
	if m.Validate() != nil {
		return false
	}
	t.cube.Apply(m)
	t.history = append(t.history, m)

	if !t.cube.IsSolved() {
		t.scrambled = true
		return false
	}
	if !t.scrambled {
		return false
	}
	t.scrambled = false
	return true
}

// Moves returns a copy of the applied moves.
func (t *Tracker) Moves() []Move {
	out := make([]Move, len(t.history))
	copy(out, t.history)
	return out
}

// Cube returns the underlying cube for inspection.
func (t *Tracker) Cube() *Cube {
	return t.cube
}
