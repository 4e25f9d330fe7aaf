package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/beka-birhanu/maze3d/maze"
	"github.com/beka-birhanu/maze3d/motion"
	"github.com/go-gl/mathgl/mgl32"
)

// Game-related errors.
var (
	ErrUnknownDirection = errors.New("unknown direction")
	ErrInvalidConfig    = errors.New("invalid game configuration")
	ErrInvalidInput     = errors.New("invalid input")
)

// Config describes the maze and the player handling of a game.
type Config struct {
	Width       int             // Maze width in cells
	Height      int             // Maze height in cells
	Geometry    motion.Geometry // World constants
	Speed       float32         // Player speed in world units per second
	Sensitivity float32         // Look sensitivity
}

// DefaultConfig returns a 16x12 maze with the stock geometry and camera values.
func DefaultConfig() Config {
	return Config{
		Width:       16,
		Height:      12,
		Geometry:    motion.DefaultGeometry(),
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
	}
}

// Step is the outcome of one movement request.
type Step struct {
	Requested mgl32.Vec3 // Displacement asked for by the input
	Allowed   mgl32.Vec3 // Displacement actually applied
}

// Game owns a maze and the player walking through it.
// A reset swaps the maze and puts the player back at the entry in one locked section.
type Game struct {
	generator    *maze.Generator
	resolver     *motion.Resolver
	grid         *maze.WallGrid // Published grid, never modified after a swap
	player       Player
	cfg          Config
	generation   int64 // Incremented every time a maze is generated
	sync.RWMutex       // Read-Write lock for synchronizing access
}

// New creates a game and generates its first maze from rng.
func New(cfg Config, rng *rand.Rand) (*Game, error) {
	if cfg.Speed <= 0 || cfg.Sensitivity <= 0 {
		return nil, fmt.Errorf("%w: speed %v, sensitivity %v", ErrInvalidConfig, cfg.Speed, cfg.Sensitivity)
	}

	resolver, err := motion.NewResolver(cfg.Geometry)
	if err != nil {
		return nil, err
	}

	generator, err := maze.NewGenerator(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	g := &Game{
		generator: generator,
		resolver:  resolver,
		cfg:       cfg,
	}
	if err := g.regenerate(rng); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset replaces the maze with a freshly generated one and moves the player to its entry.
func (g *Game) Reset(rng *rand.Rand) error {
	g.Lock()
	defer g.Unlock()
	return g.regenerate(rng)
}

// regenerate builds and validates a new grid before publishing it.
// Callers hold the write lock or own the game exclusively.
func (g *Game) regenerate(rng *rand.Rand) error {
	grid := g.generator.Generate(rng)
	if err := grid.Validate(); err != nil {
		return err
	}

	pos, yaw := entry(grid, g.cfg.Geometry)
	g.grid = grid
	g.player = newPlayer(pos, yaw, g.cfg.Speed, g.cfg.Sensitivity)
	g.generation++
	return nil
}

// Move applies a movement held for dt seconds and returns what was requested and allowed.
func (g *Game) Move(d Direction, dt float32) (Step, error) {
	if _, ok := directionNames[d]; !ok {
		return Step{}, fmt.Errorf("%w: %v", ErrUnknownDirection, d)
	}

	if dt < 0 || !finite(dt) {
		return Step{}, fmt.Errorf("%w: dt %v", ErrInvalidInput, dt)
	}

	g.Lock()
	defer g.Unlock()

	return g.apply(g.player.desiredMovement(d, dt))
}

// Displace resolves an arbitrary displacement, for input layers that combine several keys
// into a single vector per frame.
func (g *Game) Displace(delta mgl32.Vec3) (Step, error) {
	g.Lock()
	defer g.Unlock()

	return g.apply(delta)
}

// apply resolves requested against the walls and moves the player.
// A displacement or a resulting position that is not finite is refused. Callers hold the write lock.
func (g *Game) apply(requested mgl32.Vec3) (Step, error) {
	if !finite(requested[:]...) {
		return Step{}, fmt.Errorf("%w: displacement %v", ErrInvalidInput, requested)
	}

	allowed := g.resolver.Resolve(g.grid, g.player.Position, requested)
	next := g.player.Position.Add(allowed)
	if !finite(next[:]...) {
		return Step{}, fmt.Errorf("%w: position %v", ErrInvalidInput, next)
	}

	g.player.Position = next
	return Step{Requested: requested, Allowed: allowed}, nil
}

// Rotate turns the view by a look offset.
func (g *Game) Rotate(dx, dy float32, constrainPitch bool) error {
	g.Lock()
	defer g.Unlock()

	p := g.player
	p.rotate(dx, dy, constrainPitch)
	if !finite(p.Yaw, p.Pitch) || !finite(p.Front[:]...) {
		return fmt.Errorf("%w: look offset %v, %v", ErrInvalidInput, dx, dy)
	}
	g.player = p
	return nil
}

// ZoomBy changes the field of view by a scroll offset.
func (g *Game) ZoomBy(dy float32) error {
	if !finite(dy) {
		return fmt.Errorf("%w: zoom offset %v", ErrInvalidInput, dy)
	}

	g.Lock()
	defer g.Unlock()
	g.player.zoom(dy)
	return nil
}

// Grid returns the current wall grid. It must be treated as read-only.
func (g *Game) Grid() *maze.WallGrid {
	g.RLock()
	defer g.RUnlock()
	return g.grid
}

// Player returns a copy of the player state.
func (g *Game) Player() Player {
	g.RLock()
	defer g.RUnlock()
	return g.player
}

// Config returns the configuration the game was created with.
func (g *Game) Config() Config {
	return g.cfg
}

// Snapshot captures everything a renderer needs for one frame.
func (g *Game) Snapshot() State {
	g.RLock()
	defer g.RUnlock()

	return State{
		Generation: g.generation,
		Grid:       g.grid,
		Position:   g.player.Position,
		Front:      g.player.Front,
		Yaw:        g.player.Yaw,
		Pitch:      g.player.Pitch,
		Zoom:       g.player.Zoom,
		Cell:       g.cfg.Geometry.CellAt(g.player.Position, g.grid.Width(), g.grid.Height()),
		View:       g.player.ViewMatrix(),
	}
}
