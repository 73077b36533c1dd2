package geom

import "fmt"

// Coord addresses a grid cell. Row increases downward, Col to the right,
// both zero-based.
type Coord struct {
	Row int
	Col int
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Step returns a new Coord one cell in the given direction.
func (c Coord) Step(d Dir) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// InBounds reports whether the coordinate lies on an n×n grid.
func (c Coord) InBounds(n int) bool {
	return c.Row >= 0 && c.Row < n && c.Col >= 0 && c.Col < n
}

// CellCenter returns the continuous-space center of a cell on a unit grid.
// Consumers that need concrete waypoints (animation, layout) scale it
// themselves; the engine only relies on relative ordering.
func CellCenter(c Coord) (x, y float64) {
	return float64(c.Col) + 0.5, float64(c.Row) + 0.5
}
