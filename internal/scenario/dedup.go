package scenario

// Dedup wraps a Generator with a signature-based uniqueness filter so a
// level run does not serve the same puzzle twice.
type Dedup struct {
	gen *Generator
}

// NewDedup creates a deduplicating front for the generator.
func NewDedup(gen *Generator) *Dedup {
	return &Dedup{gen: gen}
}

// Next generates puzzles until one's signature is absent from used, bounded
// by p.DedupAttempts. On exhaustion the last generated puzzle is returned
// even if it is a repeat; serving something always beats serving nothing.
// The caller owns used and records the returned signature itself.
func (d *Dedup) Next(p Params, used map[string]struct{}) *Scenario {
	p = normalize(p)

	var last *Scenario
	for attempt := 0; attempt < p.DedupAttempts; attempt++ {
		last = d.gen.Generate(p)
		if _, dup := used[last.Signature()]; !dup {
			return last
		}
	}
	return last
}
