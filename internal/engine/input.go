package engine

// Action is a held control the engine polls every frame.
type Action int

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight
	Boost
)

type Input interface {
	Held(action Action) bool
}
