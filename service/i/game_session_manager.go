package i

import (
	"github.com/beka-birhanu/maze3d/game"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// GameSessionManager manages game sessions, each holding one maze and one player.
type GameSessionManager interface {
	// NewSession generates a maze for a new session and returns its ID.
	NewSession() (uuid.UUID, error)

	// Snapshot returns the current state of a session.
	Snapshot(uuid.UUID) (game.State, error)

	// Move applies a movement held for dt seconds.
	Move(id uuid.UUID, d game.Direction, dt float32) (game.Step, error)

	// Displace resolves a raw displacement against the walls.
	Displace(id uuid.UUID, delta mgl32.Vec3) (game.Step, error)

	// Rotate turns the player's view.
	Rotate(id uuid.UUID, dx, dy float32) error

	// Zoom changes the player's field of view.
	Zoom(id uuid.UUID, dy float32) error

	// Reset replaces the maze of a session. A nil seed picks one from the clock.
	Reset(id uuid.UUID, seed *int64) (int64, error)

	// End removes a session.
	End(uuid.UUID) error
}
