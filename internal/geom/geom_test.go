package geom

import "testing"

func TestReflectTable(t *testing.T) {
	// The full 2x4 physics table. Any change here changes every puzzle.
	tests := []struct {
		mirror ReflectorType
		in     Dir
		out    Dir
	}{
		{Backslash, DirRight, DirDown},
		{Backslash, DirLeft, DirUp},
		{Backslash, DirUp, DirLeft},
		{Backslash, DirDown, DirRight},
		{Slash, DirRight, DirUp},
		{Slash, DirLeft, DirDown},
		{Slash, DirUp, DirRight},
		{Slash, DirDown, DirLeft},
	}

	for _, tc := range tests {
		got := Reflect(tc.mirror, tc.in)
		if got != tc.out {
			t.Errorf("Reflect(%q, %s) = %s, expected %s", tc.mirror, tc.in, got, tc.out)
		}
	}
}

func TestReflectIsInvolution(t *testing.T) {
	// Reversing the outgoing beam through the same mirror must reverse the
	// incoming beam. This is what makes recorded paths replayable backwards.
	for _, mirror := range ReflectorTypes() {
		for _, in := range []Dir{DirUp, DirRight, DirDown, DirLeft} {
			out := Reflect(mirror, in)
			back := Reflect(mirror, out.Opposite())
			if back != in.Opposite() {
				t.Errorf("mirror %q: %s -> %s, but reverse %s -> %s", mirror, in, out, out.Opposite(), back)
			}
		}
	}
}

func TestEntryMapping(t *testing.T) {
	const n = 6
	tests := []struct {
		edge  Edge
		index int
		cell  Coord
		dir   Dir
	}{
		{EdgeTop, 0, At(0, 0), DirDown},
		{EdgeTop, 5, At(0, 5), DirDown},
		{EdgeRight, 2, At(2, 5), DirLeft},
		{EdgeBottom, 3, At(5, 3), DirUp},
		{EdgeLeft, 2, At(2, 0), DirRight},
	}

	for _, tc := range tests {
		cell, dir := Entry(n, tc.edge, tc.index)
		if cell != tc.cell || dir != tc.dir {
			t.Errorf("Entry(%s, %d) = %v %s, expected %v %s",
				tc.edge, tc.index, cell, dir, tc.cell, tc.dir)
		}
	}
}

func TestExitZone(t *testing.T) {
	const n = 6
	tests := []struct {
		name string
		cell Coord
		dir  Dir
		zone int
	}{
		{"inside stays -1", At(2, 2), DirRight, -1},
		{"top edge", At(0, 4), DirUp, 4},
		{"right edge", At(3, 5), DirRight, n + 3},
		{"bottom edge", At(5, 1), DirDown, 2*n + 1},
		{"left edge", At(2, 0), DirLeft, 3*n + 2},
		{"corner cell moving up", At(0, 0), DirUp, 0},
		{"corner cell moving left", At(0, 0), DirLeft, 3 * n},
		{"one short of edge", At(1, 4), DirUp, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitZone(n, tc.cell, tc.dir); got != tc.zone {
				t.Errorf("ExitZone(%v, %s) = %d, expected %d", tc.cell, tc.dir, got, tc.zone)
			}
		})
	}
}

func TestZoneEdgeAndIndexRoundTrip(t *testing.T) {
	const n = 6
	for zone := 0; zone < ZoneCount(n); zone++ {
		edge := ZoneEdge(n, zone)
		index := ZoneIndex(n, zone)
		if EntryZone(n, edge, index) != zone {
			t.Errorf("zone %d: edge %s index %d does not round-trip", zone, edge, index)
		}
	}
}

func TestEntrySlotExitsThroughOwnZone(t *testing.T) {
	// A beam that enters and immediately reverses must leave through the
	// zone it came in from.
	const n = 6
	for _, edge := range Edges() {
		for index := 0; index < n; index++ {
			cell, dir := Entry(n, edge, index)
			zone := ExitZone(n, cell, dir.Opposite())
			if zone != EntryZone(n, edge, index) {
				t.Errorf("entry %s/%d: reversed beam exits zone %d, expected %d",
					edge, index, zone, EntryZone(n, edge, index))
			}
		}
	}
}

func TestCellCenter(t *testing.T) {
	x, y := CellCenter(At(2, 3))
	if x != 3.5 || y != 2.5 {
		t.Errorf("CellCenter(2,3) = (%v, %v), expected (3.5, 2.5)", x, y)
	}
}

func TestDefaultZoneIsOnTopEdge(t *testing.T) {
	for _, n := range []int{4, 6, 8} {
		zone := DefaultZone(n)
		if ZoneEdge(n, zone) != EdgeTop {
			t.Errorf("DefaultZone(%d) = %d, not on the top edge", n, zone)
		}
	}
}
