package game

import (
	"fmt"
	"strings"

	"github.com/beka-birhanu/maze3d/maze"
	"github.com/beka-birhanu/maze3d/motion"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a movement request coming from the input layer.
type Direction int

// Movement directions, relative to where the player is looking.
const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

var directionNames = map[Direction]string{
	Forward:  "forward",
	Backward: "backward",
	Left:     "left",
	Right:    "right",
	Up:       "up",
	Down:     "down",
}

// String returns the lower case name of the direction.
func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection maps a direction name, case insensitive, to a Direction.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// entry returns where a player starts in grid: the centre of the top-left cell at eye
// height, facing the passage that leaves it.
func entry(grid *maze.WallGrid, g motion.Geometry) (mgl32.Vec3, float32) {
	origin := maze.CellPosition{X: 0, Y: 0}
	pos := g.CellCenter(origin, grid.Width(), grid.Height(), g.WallSize/2)

	if !grid.Blocked(origin, maze.CellPosition{X: 1, Y: 0}) {
		return pos, 0
	}
	return pos, 90
}
