// Package render draws the cube in a terminal as an unfolded net:
//
//	      T
//	L  F  R  B
//	      D
//
// and maps terminal cells back to stickers for pointer input.
package render

import (
	"github.com/SeamusWaldron/ravenscube"
)

// Layout sizes the net in terminal cells. Stickers on a face are separated
// by one blank column.
type Layout struct {
	StickerWidth  int // columns per sticker
	StickerHeight int // rows per sticker
	FaceGapX      int // blank columns between faces
	FaceGapY      int // blank rows between faces
}

// DefaultLayout gives roughly square stickers in most terminal fonts.
var DefaultLayout = Layout{
	StickerWidth:  4,
	StickerHeight: 2,
	FaceGapX:      2,
	FaceGapY:      1,
}

// netSlots gives each face's column and row in the net.
var netSlots = map[ravenscube.Face][2]int{
	ravenscube.Top:    {1, 0},
	ravenscube.Left:   {0, 1},
	ravenscube.Front:  {1, 1},
	ravenscube.Right:  {2, 1},
	ravenscube.Back:   {3, 1},
	ravenscube.Bottom: {1, 2},
}

// FaceWidth returns the width of one face in columns.
func (l Layout) FaceWidth() int {
	return 3*l.StickerWidth + 2
}

// FaceHeight returns the height of one face in rows.
func (l Layout) FaceHeight() int {
	return 3 * l.StickerHeight
}

// Size returns the width and height of the whole net.
func (l Layout) Size() (w, h int) {
	return 4*l.FaceWidth() + 3*l.FaceGapX, 3*l.FaceHeight() + 2*l.FaceGapY
}

// Origin returns the top-left cell of face f.
func (l Layout) Origin(f ravenscube.Face) (x, y int) {
	slot := netSlots[f]
	return slot[0] * (l.FaceWidth() + l.FaceGapX), slot[1] * (l.FaceHeight() + l.FaceGapY)
}

// HitTest maps a cell, relative to the net's top-left corner, to the sticker
// drawn there. Gaps and empty net slots report ok == false.
func (l Layout) HitTest(x, y int) (f ravenscube.Face, row, col int, ok bool) {
	pitch := l.StickerWidth + 1
	for _, face := range ravenscube.Faces {
		ox, oy := l.Origin(face)
		dx, dy := x-ox, y-oy
		if dx < 0 || dy < 0 || dx >= l.FaceWidth() || dy >= l.FaceHeight() {
			continue
		}
		if dx%pitch == l.StickerWidth {
			return ravenscube.FaceNone, 0, 0, false
		}
		return face, dy / l.StickerHeight, dx / pitch, true
	}
	return ravenscube.FaceNone, 0, 0, false
}

// FaceAt is HitTest reduced to the face, the value PointerDown expects.
func (l Layout) FaceAt(x, y int) ravenscube.Face {
	f, _, _, ok := l.HitTest(x, y)
	if !ok {
		return ravenscube.FaceNone
	}
	return f
}
