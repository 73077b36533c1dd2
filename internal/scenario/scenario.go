// Package scenario generates playable bounce puzzles: an entry slot, a set
// of mirrors an incoming beam reflects through, the resulting exit zone, and
// decoy mirrors that pad the memorization load without touching the path.
package scenario

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmerkulov/tui-reflex/internal/geom"
)

// Reflector is a mirror placed on the grid. Decoy mirrors look identical
// during memorization but never participate in path computation.
type Reflector struct {
	Cell  geom.Coord
	Type  geom.ReflectorType
	Decoy bool
}

// Waypoint is one cell the beam visits, in encounter order. Bounce marks the
// cells where the beam reflected off a mirror of the recorded type.
type Waypoint struct {
	Cell   geom.Coord
	Bounce bool
	Mirror geom.ReflectorType
}

// Scenario is the unit of play for one trial. Immutable once generated.
type Scenario struct {
	GridSize   int
	EntryEdge  geom.Edge
	EntryIndex int
	Path       []Waypoint  // cells in beam order, bounces included
	Reflectors []Reflector // active mirrors, in encounter order
	Decoys     []Reflector // never on path cells
	ExitZone   int
}

// AllReflectors returns active mirrors and decoys together, the way the
// memorize phase presents them (no distinction between the two).
func (s *Scenario) AllReflectors() []Reflector {
	out := make([]Reflector, 0, len(s.Reflectors)+len(s.Decoys))
	out = append(out, s.Reflectors...)
	out = append(out, s.Decoys...)
	return out
}

// Signature returns a canonical identity for the puzzle structure: the entry
// slot plus the sorted active mirror placements. Sorting makes the signature
// independent of encounter order, so structurally identical puzzles collide
// even when their internal lists differ.
func (s *Scenario) Signature() string {
	parts := make([]string, 0, len(s.Reflectors))
	for _, r := range s.Reflectors {
		parts = append(parts, fmt.Sprintf("%d:%d:%s", r.Cell.Row, r.Cell.Col, r.Type))
	}
	sort.Strings(parts)
	return fmt.Sprintf("e%d/%d|%s", s.EntryEdge, s.EntryIndex, strings.Join(parts, ";"))
}

// Replay re-simulates the beam from the entry slot through the active
// mirrors only and returns the exit zone it reaches plus every visited cell.
// ok is false if the beam fails to leave the grid within the step budget,
// which for a generated scenario indicates a corrupted puzzle.
func Replay(s *Scenario) (exitZone int, visited []geom.Coord, ok bool) {
	n := s.GridSize
	mirrors := make(map[geom.Coord]geom.ReflectorType, len(s.Reflectors))
	for _, r := range s.Reflectors {
		mirrors[r.Cell] = r.Type
	}

	cell, dir := geom.Entry(n, s.EntryEdge, s.EntryIndex)
	budget := 4 * n * n
	for step := 0; step < budget; step++ {
		visited = append(visited, cell)
		if t, hit := mirrors[cell]; hit {
			dir = geom.Reflect(t, dir)
		}
		if zone := geom.ExitZone(n, cell, dir); zone >= 0 {
			return zone, visited, true
		}
		cell = cell.Step(dir)
	}
	return -1, visited, false
}
