package maze

import (
	"fmt"
	"math/rand"
)

// Generator carves perfect mazes over a fixed set of cells.
// Cells are allocated once and reset on every Generate call.
type Generator struct {
	width  int
	height int
	cells  []Cell
}

// frame is one level of the carving stack: a cell and the neighbours it has not tried yet.
type frame struct {
	cell       int
	candidates []int
}

// NewGenerator allocates and links the cells of a width x height maze.
func NewGenerator(width, height int) (*Generator, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	cells := make([]Cell, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := &cells[y*width+x]
			c.X, c.Y = x, y
			if y > 0 {
				c.neighbors = append(c.neighbors, (y-1)*width+x)
			}
			if y < height-1 {
				c.neighbors = append(c.neighbors, (y+1)*width+x)
			}
			if x > 0 {
				c.neighbors = append(c.neighbors, y*width+x-1)
			}
			if x < width-1 {
				c.neighbors = append(c.neighbors, y*width+x+1)
			}
		}
	}

	return &Generator{width: width, height: height, cells: cells}, nil
}

// Width returns the number of cell columns.
func (gen *Generator) Width() int {
	return gen.width
}

// Height returns the number of cell rows.
func (gen *Generator) Height() int {
	return gen.height
}

// Cells returns a copy of the cells as left by the last Generate call.
func (gen *Generator) Cells() []Cell {
	cells := make([]Cell, len(gen.cells))
	for i, c := range gen.cells {
		c.neighbors = append([]int(nil), c.neighbors...)
		cells[i] = c
	}
	return cells
}

// Generate carves a new maze and returns it as a freshly allocated grid.
// Previously returned grids are left untouched.
func (gen *Generator) Generate(rng *rand.Rand) *WallGrid {
	gen.reset()
	grid := closedGrid(gen.width, gen.height)

	start := rng.Intn(len(gen.cells))
	gen.carve(grid, start, rng)
	return grid
}

// reset marks every cell as unvisited.
func (gen *Generator) reset() {
	for i := range gen.cells {
		gen.cells[i].visited = false
	}
}

// carve runs the randomized backtracker from start with an explicit stack.
// Each neighbour is drawn exactly once per frame; visited ones are discarded.
func (gen *Generator) carve(grid *WallGrid, start int, rng *rand.Rand) {
	gen.cells[start].visited = true
	stack := []*frame{gen.newFrame(start)}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if len(top.candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		i := rng.Intn(len(top.candidates))
		next := top.candidates[i]
		top.candidates = append(top.candidates[:i], top.candidates[i+1:]...)

		if gen.cells[next].visited {
			continue
		}

		grid.open(gen.cells[top.cell].Position(), gen.cells[next].Position())
		gen.cells[next].visited = true
		stack = append(stack, gen.newFrame(next))
	}
}

func (gen *Generator) newFrame(cell int) *frame {
	candidates := make([]int, len(gen.cells[cell].neighbors))
	copy(candidates, gen.cells[cell].neighbors)
	return &frame{cell: cell, candidates: candidates}
}

// Generate builds a width x height maze from seed.
func Generate(width, height int, seed int64) (*WallGrid, error) {
	gen, err := NewGenerator(width, height)
	if err != nil {
		return nil, err
	}
	return gen.Generate(rand.New(rand.NewSource(seed))), nil
}
