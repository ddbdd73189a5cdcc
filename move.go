package ravenscube

import (
	"fmt"
	"strings"
)

// Axis is one of the three rotation axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Valid reports whether a is x, y or z.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// ParseAxis parses "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

// Direction is the sense of a quarter turn, as viewed from the positive end
// of the rotation axis.
type Direction int

const (
	CW  Direction = 1  // Clockwise quarter turn
	CCW Direction = -1 // Counter-clockwise quarter turn
)

// Move is a quarter turn of one layer.
type Move struct {
	Axis  Axis      // Rotation axis
	Layer int       // Coordinate of the layer on Axis: -1, 0 or 1
	Dir   Direction // CW or CCW
}

// Validate returns ErrInvalidMove if any field is out of range.
func (m Move) Validate() error {
	if !m.Axis.Valid() {
		return fmt.Errorf("%w: axis %d", ErrInvalidMove, m.Axis)
	}
	if !inUnit(m.Layer) {
		return fmt.Errorf("%w: layer %d", ErrInvalidMove, m.Layer)
	}
	if m.Dir != CW && m.Dir != CCW {
		return fmt.Errorf("%w: direction %d", ErrInvalidMove, m.Dir)
	}
	return nil
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	inv := m
	inv.Dir = -m.Dir
	return inv
}

// Angle returns the signed rotation in degrees.
func (m Move) Angle() float64 {
	return float64(m.Dir) * 90
}

// Notation returns the letter notation for this move: F, B, R, L, U, D for
// face layers, M, E, S for the middle slices, with ' for the inverse of the
// layer's base direction.
func (m Move) Notation() string {
	for _, l := range layerLetters {
		if l.base.Axis != m.Axis || l.base.Layer != m.Layer {
			continue
		}
		if l.base.Dir == m.Dir {
			return string(l.letter)
		}
		return string(l.letter) + "'"
	}
	return fmt.Sprintf("%v%d%+d", m.Axis, m.Layer, m.Dir)
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// layerLetters gives each letter its layer and unprimed direction. Face
// letters spin the way a click on that face does; M follows L, E follows D
// and S follows F.
var layerLetters = []struct {
	letter byte
	base   Move
}{
	{'F', Move{AxisZ, 1, CW}},
	{'B', Move{AxisZ, -1, CCW}},
	{'R', Move{AxisX, 1, CW}},
	{'L', Move{AxisX, -1, CCW}},
	{'U', Move{AxisY, -1, CCW}},
	{'D', Move{AxisY, 1, CW}},
	{'M', Move{AxisX, 0, CCW}},
	{'E', Move{AxisY, 0, CW}},
	{'S', Move{AxisZ, 0, CW}},
}

// ParseMove parses a single notation token. A "2" suffix yields two quarter
// turns.
// Examples: R, R', R2, M, E'
func ParseMove(s string) ([]Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return nil, ErrInvalidNotation
	}

	var base Move
	found := false
	letter := s[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	for _, l := range layerLetters {
		if l.letter == letter {
			base = l.base
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	switch s[1:] {
	case "":
		return []Move{base}, nil
	case "'", "`":
		return []Move{base.Inverse()}, nil
	case "2", "2'", "2`":
		return []Move{base, base}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		parsed, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, parsed...)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
