package game

import (
	"github.com/beka-birhanu/maze3d/maze"
	"github.com/go-gl/mathgl/mgl32"
)

// State is a point in time view of a game for renderers and the minimap.
type State struct {
	Generation int64             // Which maze this state belongs to
	Grid       *maze.WallGrid    // Shared, read-only
	Position   mgl32.Vec3        // Player position in world units
	Front      mgl32.Vec3        // Viewing direction
	Yaw        float32           // Degrees
	Pitch      float32           // Degrees
	Zoom       float32           // Field of view in degrees
	Cell       maze.CellPosition // Cell under the player
	View       mgl32.Mat4        // Look-at matrix
}
