package scenario

import "github.com/dmerkulov/tui-reflex/internal/geom"

// EntrySlot pins the beam entry for a generated puzzle. Normally nil so the
// generator picks a uniformly random entry.
type EntrySlot struct {
	Edge  geom.Edge
	Index int
}

// Params configures puzzle generation. The tuning constants (place
// probability, retry budgets) shape the difficulty curve and are expected to
// be retuned, so they live here instead of as package constants.
type Params struct {
	GridSize   int     // Cells per side (default 6)
	Reflectors int     // Active mirrors to place
	Decoys     int     // Decoy mirrors to place off-path
	Entry      *EntrySlot

	PlaceProbability float64 // Chance of dropping a mirror on each visited cell
	MaxAttempts      int     // Walk retries before degrading the mirror count
	MaxSteps         int     // Walk step budget (0 = 4*n*n)
	DedupAttempts    int     // Regeneration budget for the uniqueness filter
}

// DefaultParams returns the tuning used by the standard drill.
func DefaultParams() Params {
	return Params{
		GridSize:         6,
		PlaceProbability: 0.35,
		MaxAttempts:      100,
		DedupAttempts:    20,
	}
}

// Generator produces puzzles from a deterministic RNG stream.
type Generator struct {
	rng *RNG
}

// NewGenerator creates a generator seeded for reproducible output.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: NewRNG(seed)}
}

// Generate returns a playable scenario and never fails. When the walk cannot
// satisfy the requested mirror count within MaxAttempts it degrades the count
// by one and tries again, trading difficulty for availability; zero mirrors
// is a straight-line puzzle and always succeeds.
func (g *Generator) Generate(p Params) *Scenario {
	p = normalize(p)

	for want := p.Reflectors; want >= 0; want-- {
		for attempt := 0; attempt < p.MaxAttempts; attempt++ {
			if s, ok := g.walk(p, want); ok {
				g.placeDecoys(s, p.Decoys)
				return s
			}
		}
	}

	// Unreachable: the zero-mirror walk exits the far edge unconditionally.
	s, _ := g.walk(p, 0)
	g.placeDecoys(s, p.Decoys)
	return s
}

func normalize(p Params) Params {
	if p.GridSize < 2 {
		p.GridSize = DefaultParams().GridSize
	}
	if p.PlaceProbability <= 0 || p.PlaceProbability > 1 {
		p.PlaceProbability = DefaultParams().PlaceProbability
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = DefaultParams().MaxAttempts
	}
	if p.MaxSteps < 1 {
		p.MaxSteps = 4 * p.GridSize * p.GridSize
	}
	if p.DedupAttempts < 1 {
		p.DedupAttempts = DefaultParams().DedupAttempts
	}
	if p.Reflectors < 0 {
		p.Reflectors = 0
	}
	if p.Decoys < 0 {
		p.Decoys = 0
	}
	return p
}

// walk performs one beam walk, dropping mirrors as it goes. It succeeds when
// the beam leaves the grid with exactly want mirrors placed.
func (g *Generator) walk(p Params, want int) (*Scenario, bool) {
	n := p.GridSize

	var edge geom.Edge
	var index int
	if p.Entry != nil {
		edge, index = p.Entry.Edge, p.Entry.Index
	} else {
		edge = geom.Edges()[g.rng.Intn(4)]
		index = g.rng.Intn(n)
	}

	cell, dir := geom.Entry(n, edge, index)
	placed := make(map[geom.Coord]geom.ReflectorType)
	seen := make(map[geom.Coord]bool)
	var order []Reflector
	var path []Waypoint
	remaining := want

	for step := 0; step < p.MaxSteps; step++ {
		switch mirror, revisit := placed[cell]; {
		case revisit:
			// Bounce off a mirror placed on an earlier pass.
			dir = geom.Reflect(mirror, dir)
			path = append(path, Waypoint{Cell: cell, Bounce: true, Mirror: mirror})

		case remaining > 0 && !seen[cell]:
			// A mirror dropped on a cell the beam already crossed would
			// change history: the replay reflects on the first visit, the
			// walk did not. Fresh cells only.
			aboutToExit := geom.ExitZone(n, cell, dir) >= 0
			place := (remaining == 1 && aboutToExit) || g.rng.Float() < p.PlaceProbability
			m, ok := geom.Backslash, false
			if place {
				m, ok = g.chooseMirror(n, cell, dir, remaining)
			}
			if !ok {
				path = append(path, Waypoint{Cell: cell})
				break
			}
			placed[cell] = m
			order = append(order, Reflector{Cell: cell, Type: m})
			remaining--
			dir = geom.Reflect(m, dir)
			path = append(path, Waypoint{Cell: cell, Bounce: true, Mirror: m})

		default:
			path = append(path, Waypoint{Cell: cell})
		}
		seen[cell] = true

		if zone := geom.ExitZone(n, cell, dir); zone >= 0 {
			if remaining != 0 {
				// Beam escaped before all mirrors were spent. Includes the
				// case of bouncing straight back out the entry edge.
				return nil, false
			}
			return &Scenario{
				GridSize:   n,
				EntryEdge:  edge,
				EntryIndex: index,
				Path:       path,
				Reflectors: order,
				ExitZone:   zone,
			}, true
		}
		cell = cell.Step(dir)
	}

	return nil, false
}

// chooseMirror picks an orientation for a mirror at cell. While more mirrors
// remain to be placed it prefers one whose bounce keeps the beam inside the
// grid so the walk can continue; for the final mirror either orientation is
// acceptable since the next exit is the puzzle's answer.
func (g *Generator) chooseMirror(n int, cell geom.Coord, dir geom.Dir, remaining int) (geom.ReflectorType, bool) {
	types := geom.ReflectorTypes()
	if remaining <= 1 {
		return types[g.rng.Intn(2)], true
	}

	inside := make([]geom.ReflectorType, 0, 2)
	for _, t := range types {
		if geom.ExitZone(n, cell, geom.Reflect(t, dir)) < 0 {
			inside = append(inside, t)
		}
	}
	if len(inside) == 0 {
		return 0, false
	}
	return inside[g.rng.Intn(len(inside))], true
}

// placeDecoys scatters decoy mirrors over cells the beam never touches.
// If fewer free cells exist than requested it places what fits; decoy
// shortfall is cosmetic and never a failure.
func (g *Generator) placeDecoys(s *Scenario, count int) {
	if count <= 0 {
		return
	}
	n := s.GridSize

	used := make(map[geom.Coord]bool, len(s.Path))
	for _, wp := range s.Path {
		used[wp.Cell] = true
	}

	free := make([]geom.Coord, 0, n*n-len(used))
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if c := geom.At(row, col); !used[c] {
				free = append(free, c)
			}
		}
	}

	// Fisher-Yates, deterministic with the generator's RNG.
	for i := len(free) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		free[i], free[j] = free[j], free[i]
	}

	if count > len(free) {
		count = len(free)
	}
	types := geom.ReflectorTypes()
	for _, c := range free[:count] {
		s.Decoys = append(s.Decoys, Reflector{
			Cell:  c,
			Type:  types[g.rng.Intn(2)],
			Decoy: true,
		})
	}
}
