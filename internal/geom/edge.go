package geom

// Edge identifies one of the four grid borders.
type Edge uint8

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Edges lists all four edges in zone order.
func Edges() [4]Edge {
	return [4]Edge{EdgeTop, EdgeRight, EdgeBottom, EdgeLeft}
}

// Entry maps an entry slot (edge plus 0-based index along that edge) to the
// first cell the beam occupies and its initial travel direction. Entering
// from the left edge means moving right, and so on.
func Entry(n int, e Edge, index int) (Coord, Dir) {
	switch e {
	case EdgeTop:
		return At(0, index), DirDown
	case EdgeRight:
		return At(index, n-1), DirLeft
	case EdgeBottom:
		return At(n-1, index), DirUp
	default:
		return At(index, 0), DirRight
	}
}

// ExitZone returns the perimeter zone reached if stepping one more cell from
// c in direction d leaves an n×n grid, or -1 if the step stays inside.
//
// Zones are contiguous per edge: [0,n) top left-to-right, [n,2n) right
// top-to-bottom, [2n,3n) bottom left-to-right, [3n,4n) left top-to-bottom.
func ExitZone(n int, c Coord, d Dir) int {
	next := c.Step(d)
	if next.InBounds(n) {
		return -1
	}
	switch {
	case next.Row < 0:
		return c.Col
	case next.Col >= n:
		return n + c.Row
	case next.Row >= n:
		return 2*n + c.Col
	default:
		return 3*n + c.Row
	}
}

// ZoneCount returns the number of perimeter zones on an n×n grid.
func ZoneCount(n int) int {
	return 4 * n
}

// ZoneEdge returns the edge a zone lies on.
func ZoneEdge(n, zone int) Edge {
	switch {
	case zone < n:
		return EdgeTop
	case zone < 2*n:
		return EdgeRight
	case zone < 3*n:
		return EdgeBottom
	default:
		return EdgeLeft
	}
}

// ZoneIndex returns the 0-based position of a zone along its edge.
func ZoneIndex(n, zone int) int {
	return zone % n
}

// EntryZone returns the perimeter zone an entry slot occupies, used by
// renderers to mark where the beam came in.
func EntryZone(n int, e Edge, index int) int {
	return int(e)*n + index
}

// DefaultZone is the neutral auto-guess slot used when the prediction timer
// expires without a selection: the grid center projected upward onto the top
// edge. Deterministic so unanswered trials always score the same way.
func DefaultZone(n int) int {
	return n / 2
}
