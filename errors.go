package ravenscube

import "errors"

// Sentinel errors for the ravenscube package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("ravenscube: invalid move notation")
	ErrInvalidAxis     = errors.New("ravenscube: invalid axis")
	ErrUnknownFace     = errors.New("ravenscube: unknown face")

	// Model errors
	ErrInvalidMove     = errors.New("ravenscube: invalid move")
	ErrBrokenInvariant = errors.New("ravenscube: cube invariant broken")
)
