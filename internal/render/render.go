package render

import (
	"strings"

	"github.com/SeamusWaldron/ravenscube"
	"github.com/charmbracelet/lipgloss"
	"github.com/zyedidia/generic/mapset"
)

// Glyphs used inside sticker cells.
const (
	hiddenGlyph   = "▒"
	rotatingGlyph = "•"
)

var (
	rotatingMarkStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000"))
	gapStyle          = lipgloss.NewStyle()
)

// Renderer draws snapshots as a colored net with lipgloss.
type Renderer struct {
	Layout Layout
}

// NewRenderer returns a Renderer using DefaultLayout.
func NewRenderer() *Renderer {
	return &Renderer{Layout: DefaultLayout}
}

// Stickers returns the nine colors of face f read off a snapshot's cubies,
// row-major as seen when looking straight at the face.
func Stickers(cubies [ravenscube.CubieCount]ravenscube.Cubie, f ravenscube.Face) [9]ravenscube.Color {
	byPos := make(map[ravenscube.Position]ravenscube.Cubie, len(cubies))
	for _, c := range cubies {
		byPos[c.Pos] = c
	}

	var out [9]ravenscube.Color
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			c, ok := byPos[ravenscube.StickerPosition(f, row, col)]
			if ok {
				out[row*3+col] = c.Faces[f]
			}
		}
	}
	return out
}

// rotatingStickers returns, per face, which of the nine stickers belong to
// cubies on the layer in flight.
func rotatingStickers(s ravenscube.Snapshot) map[ravenscube.Face][9]bool {
	out := make(map[ravenscube.Face][9]bool)
	if s.Rotation == nil {
		return out
	}

	moving := mapset.New[ravenscube.Position]()
	for _, id := range s.Rotation.Cubies {
		if id >= 0 && id < ravenscube.CubieCount {
			moving.Put(s.Cubies[id].Pos)
		}
	}
	for _, f := range ravenscube.Faces {
		var marks [9]bool
		for i := range marks {
			marks[i] = moving.Has(ravenscube.StickerPosition(f, i/3, i%3))
		}
		out[f] = marks
	}
	return out
}

// Render draws the snapshot. Faces turned away from the viewer are drawn
// shaded and stickers on a rotating layer carry a marker. Every line has
// the width reported by Layout.Size.
func (r *Renderer) Render(s ravenscube.Snapshot) string {
	l := r.Layout
	visible := visibleSet(s.Pitch, s.Yaw)
	rotating := rotatingStickers(s)

	blocks := make(map[ravenscube.Face][]string, len(ravenscube.Faces))
	for _, f := range ravenscube.Faces {
		blocks[f] = r.faceBlock(Stickers(s.Cubies, f), visible.Has(f), rotating[f])
	}

	// Index faces by slot so each output row is assembled left to right.
	var slots [3][4]ravenscube.Face
	for row := range slots {
		for col := range slots[row] {
			slots[row][col] = ravenscube.FaceNone
		}
	}
	for f, slot := range netSlots {
		slots[slot[1]][slot[0]] = f
	}

	blank := strings.Repeat(" ", l.FaceWidth())
	gapX := strings.Repeat(" ", l.FaceGapX)
	width, _ := l.Size()

	var lines []string
	for row := 0; row < 3; row++ {
		if row > 0 {
			for i := 0; i < l.FaceGapY; i++ {
				lines = append(lines, strings.Repeat(" ", width))
			}
		}
		for line := 0; line < l.FaceHeight(); line++ {
			var b strings.Builder
			for col := 0; col < 4; col++ {
				if col > 0 {
					b.WriteString(gapX)
				}
				if f := slots[row][col]; f != ravenscube.FaceNone {
					b.WriteString(blocks[f][line])
				} else {
					b.WriteString(blank)
				}
			}
			lines = append(lines, b.String())
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) faceBlock(colors [9]ravenscube.Color, visible bool, marks [9]bool) []string {
	l := r.Layout
	lines := make([]string, 0, l.FaceHeight())
	for row := 0; row < 3; row++ {
		for sub := 0; sub < l.StickerHeight; sub++ {
			var b strings.Builder
			for col := 0; col < 3; col++ {
				if col > 0 {
					b.WriteString(gapStyle.Render(" "))
				}
				i := row*3 + col
				mark := marks[i] && sub == (l.StickerHeight-1)/2
				b.WriteString(r.sticker(colors[i], visible, mark))
			}
			lines = append(lines, b.String())
		}
	}
	return lines
}

func (r *Renderer) sticker(c ravenscube.Color, visible, mark bool) string {
	w := r.Layout.StickerWidth
	hex := lipgloss.Color(NormalizeHex(c.Hex()))

	if !visible {
		return lipgloss.NewStyle().Foreground(hex).Render(strings.Repeat(hiddenGlyph, w))
	}

	bg := lipgloss.NewStyle().Background(hex)
	if !mark || w < 1 {
		return bg.Render(strings.Repeat(" ", w))
	}
	left := (w - 1) / 2
	right := w - 1 - left
	return bg.Render(strings.Repeat(" ", left)) +
		rotatingMarkStyle.Background(hex).Render(rotatingGlyph) +
		bg.Render(strings.Repeat(" ", right))
}

// NormalizeHex expands a three digit "#rgb" color to "#rrggbb".
func NormalizeHex(hex string) string {
	if len(hex) != 4 || hex[0] != '#' {
		return hex
	}
	return string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
}
