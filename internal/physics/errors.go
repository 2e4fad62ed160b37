package physics

import "errors"

var (
	// ErrUnknownBody indicates a BodyID that was never issued by the world.
	ErrUnknownBody = errors.New("physics: unknown body handle")
)
