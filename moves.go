package ravenscube

// Predefined moves for convenience. Each face move spins its layer the way a
// click on that face's sticker does.
//
// Example:
//
//	cube.ApplyMoves([]ravenscube.Move{ravenscube.R, ravenscube.U, ravenscube.RPrime, ravenscube.UPrime})
var (
	// Front layer
	F      = Move{Axis: AxisZ, Layer: 1, Dir: CW}
	FPrime = F.Inverse()

	// Back layer
	B      = Move{Axis: AxisZ, Layer: -1, Dir: CCW}
	BPrime = B.Inverse()

	// Right layer
	R      = Move{Axis: AxisX, Layer: 1, Dir: CW}
	RPrime = R.Inverse()

	// Left layer
	L      = Move{Axis: AxisX, Layer: -1, Dir: CCW}
	LPrime = L.Inverse()

	// Top layer
	U      = Move{Axis: AxisY, Layer: -1, Dir: CCW}
	UPrime = U.Inverse()

	// Bottom layer
	D      = Move{Axis: AxisY, Layer: 1, Dir: CW}
	DPrime = D.Inverse()
)

// faceMoves maps a clicked face to the layer and spin it triggers.
var faceMoves = map[Face]Move{
	Front:  F,
	Back:   B,
	Right:  R,
	Left:   L,
	Top:    U,
	Bottom: D,
}

// FaceMove returns the move triggered by clicking a sticker on face f.
func FaceMove(f Face) (Move, bool) {
	m, ok := faceMoves[f]
	return m, ok
}

// SexyMove is R U R' U'. Six repetitions return the cube to its start.
var SexyMove = []Move{R, U, RPrime, UPrime}
