package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/SeamusWaldron/ravenscube"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutSize(t *testing.T) {
	w, h := DefaultLayout.Size()
	assert.Equal(t, 4*14+3*2, w)
	assert.Equal(t, 3*6+2*1, h)
}

func TestHitTest(t *testing.T) {
	l := DefaultLayout
	tests := []struct {
		name     string
		x, y     int
		wantFace ravenscube.Face
		row, col int
		ok       bool
	}{
		{"front top-left", 16, 7, ravenscube.Front, 0, 0, true},
		{"front center", 21, 9, ravenscube.Front, 1, 1, true},
		{"front bottom-right", 29, 12, ravenscube.Front, 2, 2, true},
		{"top", 16, 0, ravenscube.Top, 0, 0, true},
		{"left", 0, 7, ravenscube.Left, 0, 0, true},
		{"right", 32, 7, ravenscube.Right, 0, 0, true},
		{"back", 48, 12, ravenscube.Back, 2, 0, true},
		{"bottom", 16, 14, ravenscube.Bottom, 0, 0, true},
		{"column gap inside face", 20, 7, ravenscube.FaceNone, 0, 0, false},
		{"gap between faces", 14, 7, ravenscube.FaceNone, 0, 0, false},
		{"row gap between faces", 16, 6, ravenscube.FaceNone, 0, 0, false},
		{"empty slot", 0, 0, ravenscube.FaceNone, 0, 0, false},
		{"outside", -1, 3, ravenscube.FaceNone, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, row, col, ok := l.HitTest(tt.x, tt.y)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.wantFace, f)
			if tt.ok {
				assert.Equal(t, tt.row, row)
				assert.Equal(t, tt.col, col)
			}
			assert.Equal(t, tt.wantFace, l.FaceAt(tt.x, tt.y))
		})
	}
}

func faceSet(faces []ravenscube.Face) map[ravenscube.Face]bool {
	out := make(map[ravenscube.Face]bool, len(faces))
	for _, f := range faces {
		out[f] = true
	}
	return out
}

func TestVisibleFaces(t *testing.T) {
	tests := []struct {
		name       string
		pitch, yaw float64
		want       []ravenscube.Face
	}{
		{"default orbit", ravenscube.DefaultPitch, ravenscube.DefaultYaw, []ravenscube.Face{ravenscube.Front, ravenscube.Top, ravenscube.Left}},
		{"straight on", 0, 0, []ravenscube.Face{ravenscube.Front}},
		{"from behind", 0, 180, []ravenscube.Face{ravenscube.Back}},
		{"from below", 80, 0, []ravenscube.Face{ravenscube.Bottom, ravenscube.Front}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, faceSet(tt.want), faceSet(VisibleFaces(tt.pitch, tt.yaw)))
		})
	}

	// Most directly facing first
	assert.Equal(t, ravenscube.Bottom, VisibleFaces(80, 0)[0])
}

func TestStickersMatchCube(t *testing.T) {
	c := ravenscube.NewCube()
	require.NoError(t, c.ApplyNotation("R U F' L2 D M"))

	cubies := c.Cubies()
	for _, f := range ravenscube.Faces {
		assert.Equal(t, c.FaceColors(f), Stickers(cubies, f), f.String())
	}
}

func TestRenderDimensions(t *testing.T) {
	e := ravenscube.NewEngine()
	e.Open()
	defer e.Close()

	r := NewRenderer()
	out := r.Render(e.Snapshot())
	lines := strings.Split(out, "\n")

	w, h := r.Layout.Size()
	require.Len(t, lines, h)
	for i, line := range lines {
		assert.Equal(t, w, lipgloss.Width(line), "line %d", i)
	}
}

func TestRenderShadesHiddenFaces(t *testing.T) {
	e := ravenscube.NewEngine(ravenscube.WithDefaultOrbit(0, 0))
	e.Open()
	defer e.Close()

	out := NewRenderer().Render(e.Snapshot())
	// Five hidden faces, nine stickers each, StickerHeight rows per sticker
	assert.Equal(t, 5*9*DefaultLayout.StickerHeight*DefaultLayout.StickerWidth, strings.Count(out, hiddenGlyph))
	assert.NotContains(t, out, rotatingGlyph)
}

func TestRenderMarksRotatingLayer(t *testing.T) {
	e := ravenscube.NewEngine(ravenscube.WithDefaultOrbit(0, 0), ravenscube.WithScheduler(pausedScheduler{}))
	e.Open()
	defer e.Close()

	require.Equal(t, ravenscube.Accepted, e.TriggerFromFaceClick(ravenscube.Front))
	s := e.Snapshot()
	require.NotNil(t, s.Rotation)

	out := NewRenderer().Render(s)
	// Only the front face is visible and the whole face is turning
	assert.Equal(t, 9, strings.Count(out, rotatingGlyph))
}

func TestNormalizeHex(t *testing.T) {
	assert.Equal(t, "#111111", NormalizeHex("#111"))
	assert.Equal(t, "#c41e3a", NormalizeHex("#c41e3a"))
	assert.Equal(t, "red", NormalizeHex("red"))
}

func TestWriteNetPlain(t *testing.T) {
	c := ravenscube.NewCube()
	var buf bytes.Buffer
	require.NoError(t, WriteNet(&buf, c, false))
	assert.Equal(t, c.String(), buf.String())
}

func TestWriteNetColored(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNet(&buf, ravenscube.NewCube(), true))

	out := buf.String()
	assert.Contains(t, out, "left front right back")
	assert.Contains(t, out, "top")
	assert.Contains(t, out, "bottom")
	// Nine net rows plus two blank separators
	assert.Equal(t, 11, strings.Count(out, "\n"))
}

func TestWriteStatus(t *testing.T) {
	c := ravenscube.NewCube()
	var buf bytes.Buffer
	require.NoError(t, WriteStatus(&buf, c, 0))
	assert.Contains(t, buf.String(), "solved")

	c.Apply(ravenscube.R)
	buf.Reset()
	require.NoError(t, WriteStatus(&buf, c, 1))
	assert.Contains(t, buf.String(), "2/6 faces solved")
}

// pausedScheduler never runs its tasks, holding rotations in flight.
type pausedScheduler struct{}

func (pausedScheduler) AfterFunc(time.Duration, func()) func() bool {
	return func() bool { return true }
}
