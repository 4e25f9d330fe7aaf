// Package motion resolves continuous movement against a maze wall grid.
//
// Horizontal motion is checked per axis against the unmodified current position, which lets
// an entity slide along a wall it walks into diagonally. The vertical component is never
// constrained.
package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/beka-birhanu/maze3d/maze"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidGeometry = errors.New("invalid world geometry")

// Geometry holds the world-unit constants of a maze.
type Geometry struct {
	WallSize      float32 // Side of one cell, walls excluded
	WallThickness float32 // Thickness of a wall; adjacent cells overlap by this much
	Margin        float32 // Clearance kept between the entity and any wall
}

// DefaultGeometry returns the stock world constants.
func DefaultGeometry() Geometry {
	return Geometry{WallSize: 1.5, WallThickness: 0.2, Margin: 0.1}
}

// Validate checks that the geometry can map world positions to cells.
func (g Geometry) Validate() error {
	if g.WallSize <= 0 || g.WallThickness < 0 || g.Margin < 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidGeometry, g)
	}
	return nil
}

// Pitch is the distance between corresponding points of adjacent cells.
func (g Geometry) Pitch() float32 {
	return g.WallSize + g.WallThickness
}

// Extent is the world length covered by n cells.
func (g Geometry) Extent(n int) float32 {
	return g.Pitch()*float32(n) - g.WallThickness
}

// normFactor scales world units so that n cells span exactly n*WallSize.
func (g Geometry) normFactor(n int) float32 {
	return g.WallSize * float32(n) / g.Extent(n)
}

// CellCenter returns the world position of the centre of a cell at the given height.
func (g Geometry) CellCenter(p maze.CellPosition, width, height int, y float32) mgl32.Vec3 {
	return mgl32.Vec3{
		(float32(p.X) + 0.5) * g.WallSize / g.normFactor(width),
		y,
		(float32(p.Y) + 0.5) * g.WallSize / g.normFactor(height),
	}
}

// CellAt returns the cell containing a world position.
func (g Geometry) CellAt(pos mgl32.Vec3, width, height int) maze.CellPosition {
	return maze.CellPosition{
		X: g.cellIndex(pos.X()*g.normFactor(width), 0),
		Y: g.cellIndex(pos.Z()*g.normFactor(height), 0),
	}
}

// cellIndex converts a normalised coordinate, shifted by inset, to a cell index.
func (g Geometry) cellIndex(norm, inset float32) int {
	return int(math.Floor(float64((norm + inset) / g.WallSize)))
}

// Resolver computes the displacement an entity is allowed to make in one step.
// It keeps no state between calls.
type Resolver struct {
	geometry Geometry
}

// NewResolver creates a resolver for the given world geometry.
func NewResolver(g Geometry) (*Resolver, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &Resolver{geometry: g}, nil
}

// Geometry returns the world constants the resolver works with.
func (r *Resolver) Geometry() Geometry {
	return r.geometry
}

// Resolve returns the part of delta that may be applied to pos.
func (r *Resolver) Resolve(grid *maze.WallGrid, pos, delta mgl32.Vec3) mgl32.Vec3 {
	return Resolve(grid, r.geometry, pos, delta)
}

// Resolve returns the part of delta that may be applied to pos inside grid.
// Each horizontal component is either kept whole or zeroed; the vertical component is
// always kept. A position outside the maze is a caller bug and panics.
func Resolve(grid *maze.WallGrid, g Geometry, pos, delta mgl32.Vec3) mgl32.Vec3 {
	if grid == nil || grid.Width() < 1 || grid.Height() < 1 {
		panic("motion: resolve against an empty wall grid")
	}

	fx, fz := g.normFactor(grid.Width()), g.normFactor(grid.Height())
	cur := mgl32.Vec2{pos.X() * fx, pos.Z() * fz}

	cx, cz := g.cellIndex(cur.X(), 0), g.cellIndex(cur.Y(), 0)
	if cx < 0 || cx >= grid.Width() || cz < 0 || cz >= grid.Height() {
		panic(fmt.Sprintf("motion: position %v is outside the %dx%d maze", pos, grid.Width(), grid.Height()))
	}

	allowed := mgl32.Vec3{0, delta.Y(), 0}

	nextX := (pos.X() + delta.X()) * fx
	okX := g.inside(nextX, fx, grid.Width()) && !xSpanBlocked(grid, g, cur.X(), nextX, fx, cz)
	if okX {
		allowed[0] = delta.X()
	}

	nextZ := (pos.Z() + delta.Z()) * fz
	okZ := g.inside(nextZ, fz, grid.Height()) && !zSpanBlocked(grid, g, cur.Y(), nextZ, fz, cx)
	if okZ {
		allowed[2] = delta.Z()
	}

	// Each axis was checked from the current cell only. A step that reaches a diagonal
	// neighbour also needs one of the two L shaped routes to it to be open.
	if okX && okZ && delta.X() != 0 && delta.Z() != 0 {
		lx, lz := g.lead(cur.X(), nextX, fx), g.lead(cur.Y(), nextZ, fz)
		if lx != cx && lz != cz &&
			zSpanBlocked(grid, g, cur.Y(), nextZ, fz, lx) &&
			xSpanBlocked(grid, g, cur.X(), nextX, fx, lz) {
			// Keep the dominant axis; on its own it was already cleared.
			if abs(delta.X()) >= abs(delta.Z()) {
				allowed[2] = 0
			} else {
				allowed[0] = 0
			}
		}
	}

	return allowed
}

// inside reports whether a normalised coordinate keeps the margin from the outer boundary.
func (g Geometry) inside(norm, factor float32, n int) bool {
	edge := g.Margin * factor
	return norm > edge && norm < float32(n)*g.WallSize-edge
}

// span returns the cell indexes touched when moving from cur to next. The leading edge
// carries the clearance inset in the direction of travel; the trailing edge is the cell
// the entity stands in, so a wall already inside the clearance still blocks.
func (g Geometry) span(cur, next, factor float32) (lo, hi int) {
	a, b := g.cellIndex(cur, 0), g.lead(cur, next, factor)
	return min(a, b), max(a, b)
}

// lead returns the cell reached by the leading edge of the clearance when moving
// from cur to next.
func (g Geometry) lead(cur, next, factor float32) int {
	inset := (g.WallThickness + g.Margin) * factor
	if next < cur {
		inset = -inset
	}
	return g.cellIndex(next, inset)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// xSpanBlocked checks the vertical walls of row cz crossed between cur and next.
// Column x holds the wall on the left of cell x; column 0 and anything past the last
// cell are the outer boundary.
func xSpanBlocked(grid *maze.WallGrid, g Geometry, cur, next, factor float32, cz int) bool {
	lo, hi := g.span(cur, next, factor)
	for x := lo + 1; x <= hi; x++ {
		if x <= 0 || x >= grid.Width() || grid.At(2*cz, x) {
			return true
		}
	}
	return false
}

// zSpanBlocked checks the horizontal walls of column cx crossed between cur and next.
// Row 2y+1 holds the wall below cell y.
func zSpanBlocked(grid *maze.WallGrid, g Geometry, cur, next, factor float32, cx int) bool {
	lo, hi := g.span(cur, next, factor)
	for y := lo; y < hi; y++ {
		if y < 0 || y >= grid.Height()-1 || grid.At(2*y+1, cx) {
			return true
		}
	}
	return false
}
