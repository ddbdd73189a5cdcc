package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/SeamusWaldron/ravenscube"
	"github.com/gookit/color"
)

// Styles for the plain terminal printer.
var (
	ColorLabel   = color.Style{color.FgGray, color.OpBold}
	ColorSolved  = color.Style{color.FgGreen, color.OpBold}
	ColorPending = color.Style{color.FgYellow}
	ColorError   = color.Style{color.FgRed, color.OpBold}
)

// netRows lists the faces drawn on each row of the net.
var netRows = [3][]ravenscube.Face{
	{ravenscube.Top},
	{ravenscube.Left, ravenscube.Front, ravenscube.Right, ravenscube.Back},
	{ravenscube.Bottom},
}

// WriteNet prints the cube as a compact net of two-column colored cells.
// When colored is false it falls back to the letter net from Cube.String.
func WriteNet(w io.Writer, c *ravenscube.Cube, colored bool) error {
	if !colored {
		_, err := io.WriteString(w, c.String())
		return err
	}

	var b strings.Builder
	for i, faces := range netRows {
		for row := 0; row < 3; row++ {
			if len(faces) == 1 {
				b.WriteString(strings.Repeat(" ", 7))
			}
			for j, f := range faces {
				if j > 0 {
					b.WriteString(" ")
				}
				for col := 0; col < 3; col++ {
					hex := NormalizeHex(c.Sticker(f, row, col).Hex())
					b.WriteString(color.HEX(hex, true).Sprint("  "))
				}
			}
			if row == 1 {
				b.WriteString("  ")
				b.WriteString(ColorLabel.Sprint(labelFor(faces)))
			}
			b.WriteString("\n")
		}
		if i < len(netRows)-1 {
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func labelFor(faces []ravenscube.Face) string {
	names := make([]string, len(faces))
	for i, f := range faces {
		names[i] = f.String()
	}
	return strings.Join(names, " ")
}

// WriteStatus prints a one-line summary of the cube.
func WriteStatus(w io.Writer, c *ravenscube.Cube, moves int) error {
	state := ColorPending.Sprintf("%d/6 faces solved", c.SolvedFaces())
	if c.IsSolved() {
		state = ColorSolved.Sprint("solved")
	}
	_, err := fmt.Fprintf(w, "%s %s  %s %d\n",
		ColorLabel.Sprint("state:"), state,
		ColorLabel.Sprint("moves:"), moves)
	return err
}
