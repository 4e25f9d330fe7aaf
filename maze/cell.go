package maze

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	X int // Column index of the cell
	Y int // Row index of the cell
}

// Cell is a node of the maze graph used while carving.
// Neighbors hold indexes into the owning generator's cell slice.
type Cell struct {
	X         int   // Column index of the cell
	Y         int   // Row index of the cell
	visited   bool  // Set once the carver has entered the cell
	neighbors []int // Up, down, left, right (edge cells have fewer)
}

// Position returns the grid position of the cell.
func (c *Cell) Position() CellPosition {
	return CellPosition{X: c.X, Y: c.Y}
}

// Visited reports whether the carver has entered the cell during the last generation.
func (c *Cell) Visited() bool {
	return c.visited
}

// wallIndex maps the edge between two adjacent cells to its wall grid entry.
// Vertical neighbours land on odd rows, horizontal neighbours on even rows.
func wallIndex(a, b CellPosition) (row, col int) {
	row = 2*min(a.Y, b.Y) + abs(a.Y-b.Y)
	col = max(a.X, b.X)
	return row, col
}

// adjacent reports whether two positions share an edge.
func adjacent(a, b CellPosition) bool {
	return abs(a.X-b.X)+abs(a.Y-b.Y) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
