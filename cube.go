package ravenscube

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Color represents a sticker color.
type Color byte

const (
	NoSticker Color = 0 // Interior-facing side of a cubie
	Red       Color = 1 // Front face when solved
	Orange    Color = 2 // Back face when solved
	Blue      Color = 3 // Right face when solved
	Green     Color = 4 // Left face when solved
	Yellow    Color = 5 // Top face when solved
	White     Color = 6 // Bottom face when solved
)

func (c Color) String() string {
	switch c {
	case Red:
		return "R"
	case Orange:
		return "O"
	case Blue:
		return "B"
	case Green:
		return "G"
	case Yellow:
		return "Y"
	case White:
		return "W"
	case NoSticker:
		return "."
	default:
		return "?"
	}
}

// Hex returns the display color used by the widget.
func (c Color) Hex() string {
	switch c {
	case Red:
		return "#c41e3a"
	case Orange:
		return "#ff5800"
	case Blue:
		return "#0051ba"
	case Green:
		return "#009e60"
	case Yellow:
		return "#ffd500"
	case White:
		return "#ffffff"
	default:
		return "#111"
	}
}

// Face is one of the six outer directions of the cube.
type Face int

const (
	FaceNone Face = -1

	Front  Face = 0
	Back   Face = 1
	Right  Face = 2
	Left   Face = 3
	Top    Face = 4
	Bottom Face = 5
)

// Faces lists the six faces in index order.
var Faces = [6]Face{Front, Back, Right, Left, Top, Bottom}

func (f Face) String() string {
	switch f {
	case Front:
		return "front"
	case Back:
		return "back"
	case Right:
		return "right"
	case Left:
		return "left"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "none"
	}
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f >= Front && f <= Bottom
}

// ParseFace parses a face name such as "front" or its initial ("f", "u" for top,
// "d" for bottom).
func ParseFace(s string) (Face, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front", "f":
		return Front, nil
	case "back", "b":
		return Back, nil
	case "right", "r":
		return Right, nil
	case "left", "l":
		return Left, nil
	case "top", "up", "u":
		return Top, nil
	case "bottom", "down", "d":
		return Bottom, nil
	}
	return FaceNone, fmt.Errorf("%w: %q", ErrUnknownFace, s)
}

// Normal returns the outward unit vector of the face. Y grows downward, so
// the top face points to -Y.
func (f Face) Normal() Position {
	switch f {
	case Front:
		return Position{0, 0, 1}
	case Back:
		return Position{0, 0, -1}
	case Right:
		return Position{1, 0, 0}
	case Left:
		return Position{-1, 0, 0}
	case Top:
		return Position{0, -1, 0}
	case Bottom:
		return Position{0, 1, 0}
	default:
		return Position{}
	}
}

// Boundary returns the axis and coordinate value of the layer that lies on f.
func (f Face) Boundary() (Axis, int) {
	n := f.Normal()
	switch {
	case n.X != 0:
		return AxisX, n.X
	case n.Y != 0:
		return AxisY, n.Y
	default:
		return AxisZ, n.Z
	}
}

// faceFromNormal is the inverse of Normal.
func faceFromNormal(n Position) Face {
	for _, f := range Faces {
		if f.Normal() == n {
			return f
		}
	}
	return FaceNone
}

// solvedColor returns the color of a face when solved.
func solvedColor(f Face) Color {
	switch f {
	case Front:
		return Red
	case Back:
		return Orange
	case Right:
		return Blue
	case Left:
		return Green
	case Top:
		return Yellow
	case Bottom:
		return White
	default:
		return NoSticker
	}
}

// Position is a cubie's grid coordinate; each component is -1, 0 or 1.
type Position struct {
	X, Y, Z int
}

// Coord returns the component of p on axis a.
func (p Position) Coord(a Axis) int {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// InGrid reports whether every component is in {-1, 0, 1}.
func (p Position) InGrid() bool {
	return inUnit(p.X) && inUnit(p.Y) && inUnit(p.Z)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

func inUnit(v int) bool {
	return v >= -1 && v <= 1
}

// Cubie is one of the 27 unit sub-cubes.
type Cubie struct {
	// ID is the cubie's index in the solved layout. It never changes.
	ID int
	// Pos is the current grid position.
	Pos Position
	// Faces[f] is the color currently facing world direction f.
	Faces [6]Color
}

// Offset returns the cubie's 3D pixel offset for a view that draws stickers
// of the given size separated by gap.
func (c Cubie) Offset(size, gap float64) (x, y, z float64) {
	unit := size + gap
	return float64(c.Pos.X) * unit, float64(c.Pos.Y) * unit, float64(c.Pos.Z) * unit
}

// CubieCount is the number of cubies in a 3x3x3 cube.
const CubieCount = 27

// Cube is a 3x3x3 cube modeled as 27 cubies.
//
// Cubies are stored in solved-layout order (x-major, then y, then z, each
// from -1 to 1), so Cubies()[i].ID == i for the life of the cube.
type Cube struct {
	cubies [CubieCount]Cubie
}

// NewCube creates a solved cube.
func NewCube() *Cube {
	c := &Cube{}
	c.Reset()
	return c
}

// Reset puts every cubie back in its solved position with solved colors.
func (c *Cube) Reset() {
	i := 0
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				p := Position{x, y, z}
				cb := Cubie{ID: i, Pos: p}
				for _, f := range Faces {
					axis, edge := f.Boundary()
					if p.Coord(axis) == edge {
						cb.Faces[f] = solvedColor(f)
					}
				}
				c.cubies[i] = cb
				i++
			}
		}
	}
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// Equal reports whether both cubes have every cubie in the same place with
// the same colors.
func (c *Cube) Equal(o *Cube) bool {
	return c.cubies == o.cubies
}

// Cubies returns a copy of the 27 cubies, indexed by ID.
func (c *Cube) Cubies() [CubieCount]Cubie {
	return c.cubies
}

// CubieAt returns the cubie currently occupying p.
func (c *Cube) CubieAt(p Position) (Cubie, bool) {
	for _, cb := range c.cubies {
		if cb.Pos == p {
			return cb, true
		}
	}
	return Cubie{}, false
}

// Layer returns the IDs of the cubies whose coordinate on axis equals value.
func (c *Cube) Layer(axis Axis, value int) []int {
	ids := make([]int, 0, 9)
	for _, cb := range c.cubies {
		if cb.Pos.Coord(axis) == value {
			ids = append(ids, cb.ID)
		}
	}
	return ids
}

// Apply rotates one layer a quarter turn. Invalid moves are ignored.
func (c *Cube) Apply(m Move) {
	if m.Validate() != nil {
		return
	}
	for i := range c.cubies {
		cb := &c.cubies[i]
		if cb.Pos.Coord(m.Axis) != m.Layer {
			continue
		}
		cb.Pos = quarterTurn(cb.Pos, m.Axis, m.Dir)

		var faces [6]Color
		for _, f := range Faces {
			to := faceFromNormal(quarterTurn(f.Normal(), m.Axis, m.Dir))
			faces[to] = cb.Faces[f]
		}
		cb.Faces = faces
	}
}

// ApplyMoves applies a sequence of moves.
func (c *Cube) ApplyMoves(moves []Move) {
	for _, m := range moves {
		c.Apply(m)
	}
}

// ApplyNotation parses and applies a space-separated move sequence.
func (c *Cube) ApplyNotation(s string) error {
	moves, err := ParseMoves(s)
	if err != nil {
		return err
	}
	c.ApplyMoves(moves)
	return nil
}

// quarterTurn rotates p by 90 degrees around axis. It is exact on integers
// and maps {-1,0,1}^3 onto itself.
func quarterTurn(p Position, axis Axis, dir Direction) Position {
	switch axis {
	case AxisX:
		if dir > 0 {
			return Position{p.X, p.Z, -p.Y}
		}
		return Position{p.X, -p.Z, p.Y}
	case AxisY:
		if dir > 0 {
			return Position{-p.Z, p.Y, p.X}
		}
		return Position{p.Z, p.Y, -p.X}
	case AxisZ:
		if dir > 0 {
			return Position{p.Y, -p.X, p.Z}
		}
		return Position{-p.Y, p.X, p.Z}
	}
	return p
}

// Sticker returns the color shown on face f at the given row and column of
// that face as seen from outside the cube (row 0 is the upper row; for the
// top face the upper row is the back edge, for the bottom face the front
// edge).
func (c *Cube) Sticker(f Face, row, col int) Color {
	cb, ok := c.CubieAt(StickerPosition(f, row, col))
	if !ok {
		return NoSticker
	}
	return cb.Faces[f]
}

// FaceColors returns the nine stickers of face f in row-major order:
//
//	0 1 2
//	3 4 5
//	6 7 8
func (c *Cube) FaceColors(f Face) [9]Color {
	var out [9]Color
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row*3+col] = c.Sticker(f, row, col)
		}
	}
	return out
}

// StickerPosition maps a face-local row/col to the grid position of the
// cubie carrying that sticker.
func StickerPosition(f Face, row, col int) Position {
	r, k := row-1, col-1
	switch f {
	case Front:
		return Position{k, r, 1}
	case Back:
		return Position{-k, r, -1}
	case Right:
		return Position{1, r, -k}
	case Left:
		return Position{-1, r, k}
	case Top:
		return Position{k, -1, r}
	case Bottom:
		return Position{k, 1, -r}
	}
	return Position{}
}

// ColorCounts returns how many cubie faces carry each color.
func (c *Cube) ColorCounts() map[Color]int {
	counts := make(map[Color]int, 6)
	for _, cb := range c.cubies {
		for _, col := range cb.Faces {
			if col != NoSticker {
				counts[col]++
			}
		}
	}
	return counts
}

// IsSolved returns true if every face shows a single color. A whole-cube
// rotation (all three layers of one axis turned the same way) moves the
// centers but still counts as solved; compare with Equal against NewCube to
// tell the home orientation apart.
func (c *Cube) IsSolved() bool {
	for _, f := range Faces {
		colors := c.FaceColors(f)
		for _, col := range colors[1:] {
			if col != colors[0] {
				return false
			}
		}
	}
	return true
}

// SolvedFaces returns how many faces currently show a single color.
func (c *Cube) SolvedFaces() int {
	n := 0
	for _, f := range Faces {
		colors := c.FaceColors(f)
		uniform := true
		for _, col := range colors[1:] {
			if col != colors[0] {
				uniform = false
				break
			}
		}
		if uniform {
			n++
		}
	}
	return n
}

// Validate checks the structural invariants: one cubie per grid cell, a
// sticker on exactly the faces that lie on the outer boundary, and nine
// stickers of each color.
func (c *Cube) Validate() error {
	seen := mapset.New[Position]()
	for _, cb := range c.cubies {
		if !cb.Pos.InGrid() {
			return fmt.Errorf("%w: cubie %d at %v is outside the grid", ErrBrokenInvariant, cb.ID, cb.Pos)
		}
		if seen.Has(cb.Pos) {
			return fmt.Errorf("%w: two cubies at %v", ErrBrokenInvariant, cb.Pos)
		}
		seen.Put(cb.Pos)

		for _, f := range Faces {
			axis, edge := f.Boundary()
			onSurface := cb.Pos.Coord(axis) == edge
			if onSurface != (cb.Faces[f] != NoSticker) {
				return fmt.Errorf("%w: cubie %d at %v has sticker %v on %v", ErrBrokenInvariant, cb.ID, cb.Pos, cb.Faces[f], f)
			}
		}
	}
	if seen.Size() != CubieCount {
		return fmt.Errorf("%w: %d distinct positions", ErrBrokenInvariant, seen.Size())
	}

	counts := c.ColorCounts()
	for _, f := range Faces {
		if n := counts[solvedColor(f)]; n != 9 {
			return fmt.Errorf("%w: %d %v stickers", ErrBrokenInvariant, n, solvedColor(f))
		}
	}
	return nil
}

// String returns an unfolded net of the cube:
//
//	      T
//	L  F  R  B
//	      Bo
func (c *Cube) String() string {
	var b strings.Builder

	writeRow := func(f Face, row int) {
		for col := 0; col < 3; col++ {
			b.WriteString(c.Sticker(f, row, col).String())
			b.WriteString(" ")
		}
	}

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(Top, row)
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		for _, f := range []Face{Left, Front, Right, Back} {
			writeRow(f, row)
		}
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(Bottom, row)
		b.WriteString("\n")
	}

	return b.String()
}
