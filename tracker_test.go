package ravenscube

import "testing"

func TestTrackerReset(t *testing.T) {
	tr := NewTracker()
	if !tr.Cube().IsSolved() {
		t.Error("New tracker should start solved")
	}

	tr.ApplyMove(R)
	if tr.Cube().IsSolved() {
		t.Error("Tracker should not be solved after move")
	}
	if len(tr.Moves()) != 1 {
		t.Errorf("len(Moves()) = %d, want 1", len(tr.Moves()))
	}

	tr.Reset()
	if !tr.Cube().IsSolved() {
		t.Error("Tracker should be solved after reset")
	}
	if len(tr.Moves()) != 0 {
		t.Error("Reset should clear history")
	}
}

func TestTrackerReportsSolve(t *testing.T) {
	tr := NewTracker()

	for _, m := range []Move{R, U} {
		if tr.ApplyMove(m) {
			t.Fatalf("%s reported a solve while scrambling", m.Notation())
		}
	}

	// Undo in reverse order
	if tr.ApplyMove(UPrime) {
		t.Error("cube should still be scrambled after U'")
	}
	if !tr.ApplyMove(RPrime) {
		t.Error("R' should report the solve")
	}

	// Four quarter turns pass through solved only at the end.
	solves := 0
	for _, m := range []Move{F, F, F, F} {
		if tr.ApplyMove(m) {
			solves++
		}
	}
	if solves != 1 {
		t.Errorf("F F F F reported %d solves, want 1", solves)
	}
}

func TestTrackerWholeCubeRotationCountsAsSolved(t *testing.T) {
	tr := NewTracker()

	var solved bool
	for layer := -1; layer <= 1; layer++ {
		solved = tr.ApplyMove(Move{Axis: AxisX, Layer: layer, Dir: CW})
		if layer < 1 && solved {
			t.Fatalf("layer %d reported a solve", layer)
		}
	}

	if !solved {
		t.Error("turning every x layer should report a solve")
	}
	if tr.Cube().Equal(NewCube()) {
		t.Error("a whole-cube rotation should move the centers")
	}
}

func TestTrackerIgnoresInvalidMove(t *testing.T) {
	tr := NewTracker()
	if tr.ApplyMove(Move{Axis: AxisZ, Layer: 4, Dir: CW}) {
		t.Error("invalid move should not report a solve")
	}
	if len(tr.Moves()) != 0 {
		t.Error("invalid move should not be recorded")
	}
}

func TestTrackerMovesIsCopy(t *testing.T) {
	tr := NewTracker()
	tr.ApplyMove(L)
	moves := tr.Moves()
	moves[0] = R
	if tr.Moves()[0] != L {
		t.Error("Moves() should return a copy")
	}
}
