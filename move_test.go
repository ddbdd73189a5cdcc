package ravenscube

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMoves(t *testing.T) {
	tests := []struct {
		in   string
		want []Move
	}{
		{"R U R' U'", SexyMove},
		{"F", []Move{F}},
		{"b'", []Move{BPrime}},
		{"R2", []Move{R, R}},
		{"M", []Move{{Axis: AxisX, Layer: 0, Dir: CCW}}},
		{"E'", []Move{{Axis: AxisY, Layer: 0, Dir: CCW}}},
		{"S", []Move{{Axis: AxisZ, Layer: 0, Dir: CW}}},
		{"  L   D  ", []Move{L, D}},
		{"", []Move{}},
	}

	for _, tt := range tests {
		got, err := ParseMoves(tt.in)
		if err != nil {
			t.Errorf("ParseMoves(%q) error: %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseMoves(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestParseMovesInvalid(t *testing.T) {
	for _, in := range []string{"Q", "R3", "U''", "x", "R U Z"} {
		_, err := ParseMoves(in)
		if !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMoves(%q) = %v, want ErrInvalidNotation", in, err)
		}
	}
}

func TestNotationRoundTrip(t *testing.T) {
	for _, m := range allMoves() {
		parsed, err := ParseMove(m.Notation())
		if err != nil {
			t.Errorf("ParseMove(%q): %v", m.Notation(), err)
			continue
		}
		if len(parsed) != 1 || parsed[0] != m {
			t.Errorf("%+v -> %q -> %+v", m, m.Notation(), parsed)
		}
	}

	seq := randomMoves(5, 40)
	got, err := ParseMoves(FormatMoves(seq))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(seq, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveNotationFallback(t *testing.T) {
	m := Move{Axis: AxisX, Layer: 2, Dir: CW}
	if got := m.Notation(); got != "x2+1" {
		t.Errorf("Notation() = %q, want x2+1", got)
	}
}

func TestMoveValidate(t *testing.T) {
	bad := []Move{
		{Axis: Axis(3), Layer: 0, Dir: CW},
		{Axis: AxisY, Layer: -2, Dir: CW},
		{Axis: AxisZ, Layer: 1, Dir: 0},
	}
	for _, m := range bad {
		if err := m.Validate(); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("%+v: Validate() = %v, want ErrInvalidMove", m, err)
		}
	}
	for _, m := range allMoves() {
		if err := m.Validate(); err != nil {
			t.Errorf("%+v: unexpected error %v", m, err)
		}
	}
}

func TestSequenceThenInverseIsIdentity(t *testing.T) {
	c := NewCube()
	seq := randomMoves(9, 25)
	c.ApplyMoves(seq)
	c.ApplyMoves(undo(seq))
	if !c.IsSolved() {
		t.Error("sequence followed by its inverse should be identity")
	}
}

func TestMoveAngle(t *testing.T) {
	if R.Angle() != 90 || RPrime.Angle() != -90 {
		t.Errorf("angles: %v %v", R.Angle(), RPrime.Angle())
	}
}

func TestParseAxis(t *testing.T) {
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		got, err := ParseAxis(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAxis(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAxis("w"); !errors.Is(err, ErrInvalidAxis) {
		t.Errorf("expected ErrInvalidAxis, got %v", err)
	}
}

func TestFaceMoveTable(t *testing.T) {
	tests := []struct {
		face  Face
		axis  Axis
		layer int
		dir   Direction
	}{
		{Front, AxisZ, 1, CW},
		{Back, AxisZ, -1, CCW},
		{Right, AxisX, 1, CW},
		{Left, AxisX, -1, CCW},
		{Top, AxisY, -1, CCW},
		{Bottom, AxisY, 1, CW},
	}

	for _, tt := range tests {
		m, ok := FaceMove(tt.face)
		if !ok {
			t.Errorf("no move for %v", tt.face)
			continue
		}
		want := Move{Axis: tt.axis, Layer: tt.layer, Dir: tt.dir}
		if m != want {
			t.Errorf("FaceMove(%v) = %+v, want %+v", tt.face, m, want)
		}
	}

	if _, ok := FaceMove(FaceNone); ok {
		t.Error("FaceNone should not map to a move")
	}
}

func TestApplyNotation(t *testing.T) {
	c := NewCube()
	if err := c.ApplyNotation("F B' M E2"); err != nil {
		t.Fatal(err)
	}
	if err := c.ApplyNotation("E2 M' B F'"); err != nil {
		t.Fatal(err)
	}
	if !c.IsSolved() {
		t.Error("notation followed by its inverse should be identity")
	}

	if err := c.ApplyNotation("R X"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("expected ErrInvalidNotation, got %v", err)
	}
}
