// ravenscube - an interactive 3x3 Rubik's Cube for the terminal.
package main

import (
	"github.com/SeamusWaldron/ravenscube/internal/cli"
)

func main() {
	cli.Execute()
}
