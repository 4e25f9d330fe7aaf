/*
Package maze provides tools for creating and inspecting rectangular perfect mazes.

A maze is published as a WallGrid: an interleaved boolean matrix where even rows hold the
walls separating cells horizontally and odd rows hold the walls separating cells vertically.

Mazes are carved with a randomized backtracker driven by an explicit *rand.Rand, so a
seed fully determines the layout.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrNotPerfect        = errors.New("maze is not a spanning tree")
)

// WallGrid encodes which edges between adjacent cells are blocked.
// It has 2*height-1 rows and width columns. Column 0 of even rows is unused.
type WallGrid struct {
	width  int      // Width of the maze (number of cell columns)
	height int      // Height of the maze (number of cell rows)
	walls  [][]bool // true means the passage is blocked
}

// NewWallGrid creates a grid for a width x height maze with every wall closed.
func NewWallGrid(width, height int) (*WallGrid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	return closedGrid(width, height), nil
}

// closedGrid builds a grid with every wall present. Dimensions must already be valid.
func closedGrid(width, height int) *WallGrid {
	walls := make([][]bool, 2*height-1)
	for i := range walls {
		walls[i] = make([]bool, width)
		for j := range walls[i] {
			walls[i][j] = true
		}
	}

	return &WallGrid{width: width, height: height, walls: walls}
}

// Width returns the number of cell columns.
func (g *WallGrid) Width() int {
	return g.width
}

// Height returns the number of cell rows.
func (g *WallGrid) Height() int {
	return g.height
}

// Rows returns the number of rows in the wall matrix.
func (g *WallGrid) Rows() int {
	return len(g.walls)
}

// Cols returns the number of columns in the wall matrix.
func (g *WallGrid) Cols() int {
	return g.width
}

// At reports whether the wall entry at row, col is blocked.
func (g *WallGrid) At(row, col int) bool {
	return g.walls[row][col]
}

// Set changes a single wall entry. Grids handed to readers must not be modified.
func (g *WallGrid) Set(row, col int, blocked bool) {
	g.walls[row][col] = blocked
}

// RowView returns a copy of one row of the wall matrix.
func (g *WallGrid) RowView(row int) []bool {
	out := make([]bool, g.width)
	copy(out, g.walls[row])
	return out
}

// Matrix returns a deep copy of the wall matrix.
func (g *WallGrid) Matrix() [][]bool {
	out := make([][]bool, len(g.walls))
	for i := range g.walls {
		out[i] = g.RowView(i)
	}
	return out
}

// Clone returns an independent copy of the grid.
func (g *WallGrid) Clone() *WallGrid {
	return &WallGrid{width: g.width, height: g.height, walls: g.Matrix()}
}

// InBound checks if a cell position lies inside the maze.
func (g *WallGrid) InBound(p CellPosition) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Blocked reports whether movement between two cells is impossible.
// Non-adjacent and out of range pairs are always blocked.
func (g *WallGrid) Blocked(a, b CellPosition) bool {
	if !g.InBound(a) || !g.InBound(b) || !adjacent(a, b) {
		return true
	}
	row, col := wallIndex(a, b)
	return g.walls[row][col]
}

// open clears the wall between two adjacent cells.
func (g *WallGrid) open(a, b CellPosition) {
	row, col := wallIndex(a, b)
	g.walls[row][col] = false
}

// OpenNeighbors lists the cells reachable in one step from p.
func (g *WallGrid) OpenNeighbors(p CellPosition) []CellPosition {
	candidates := [4]CellPosition{
		{X: p.X, Y: p.Y - 1},
		{X: p.X, Y: p.Y + 1},
		{X: p.X - 1, Y: p.Y},
		{X: p.X + 1, Y: p.Y},
	}

	var result []CellPosition
	for _, c := range candidates {
		if !g.Blocked(p, c) {
			result = append(result, c)
		}
	}
	return result
}

// OpenPassages counts the open entries of the grid.
func (g *WallGrid) OpenPassages() int {
	count := 0
	for _, row := range g.walls {
		for _, blocked := range row {
			if !blocked {
				count++
			}
		}
	}
	return count
}

// Reachable counts the cells reachable from start through open passages.
func (g *WallGrid) Reachable(start CellPosition) int {
	if !g.InBound(start) {
		return 0
	}

	visited := make([]bool, g.width*g.height)
	visited[start.Y*g.width+start.X] = true
	stack := []CellPosition{start}
	count := 0

	for len(stack) > 0 {
		cell := pop(&stack)
		count++

		for _, nbr := range g.OpenNeighbors(cell) {
			key := nbr.Y*g.width + nbr.X
			if !visited[key] {
				visited[key] = true
				stack = append(stack, nbr)
			}
		}
	}

	return count
}

// Validate checks that the open passages form a spanning tree over all cells.
func (g *WallGrid) Validate() error {
	cells := g.width * g.height
	if open := g.OpenPassages(); open != cells-1 {
		return fmt.Errorf("%w: %d open passages for %d cells", ErrNotPerfect, open, cells)
	}
	if reached := g.Reachable(CellPosition{}); reached != cells {
		return fmt.Errorf("%w: %d of %d cells reachable", ErrNotPerfect, reached, cells)
	}
	return nil
}

// String provides a textual representation of the maze.
func (g *WallGrid) String() string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", g.width) + "\n")

	for y := 0; y < g.height; y++ {
		cellRow := "|"
		for x := 0; x < g.width; x++ {
			cellRow += "   "
			if g.Blocked(CellPosition{X: x, Y: y}, CellPosition{X: x + 1, Y: y}) {
				cellRow += "|"
			} else {
				cellRow += " "
			}
		}
		b.WriteString(cellRow + "\n")

		wallRow := "+"
		for x := 0; x < g.width; x++ {
			if g.Blocked(CellPosition{X: x, Y: y}, CellPosition{X: x, Y: y + 1}) {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		b.WriteString(wallRow + "\n")
	}

	return b.String()
}

// pop removes and returns the last element of a stack of CellPositions.
func pop(s *[]CellPosition) CellPosition {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}
