package trial

import (
	"github.com/dmerkulov/tui-reflex/internal/geom"
	"github.com/dmerkulov/tui-reflex/internal/scenario"
)

// ZoneStatus describes how a perimeter zone should be marked during reveal.
type ZoneStatus uint8

const (
	ZoneUnselected ZoneStatus = iota
	ZoneCorrect               // The true exit
	ZoneIncorrect             // The player's wrong pick
)

// View is the phase-gated render data a presentation layer may show.
// Mirrors appear only while memorizing or revealing; the beam path and zone
// verdicts only while revealing. The engine decides what is visible so no
// renderer can accidentally leak the answer during prediction.
type View struct {
	Phase       Phase
	GridSize    int
	Trial       int // 1-based
	TotalTrials int
	TotalScore  int
	Streak      int

	EntryZone int

	Reflectors []scenario.Reflector // nil outside memorize/reveal
	Path       []scenario.Waypoint  // nil outside reveal
	AnswerZone int                  // -1 outside reveal
	GuessZone  int                  // -1 until a guess exists in reveal
	LastResult *Result              // nil outside reveal/done
}

// ZoneStatus classifies a zone for reveal rendering.
func (v View) ZoneStatus(zone int) ZoneStatus {
	switch {
	case v.AnswerZone >= 0 && zone == v.AnswerZone:
		return ZoneCorrect
	case v.GuessZone >= 0 && zone == v.GuessZone && v.GuessZone != v.AnswerZone:
		return ZoneIncorrect
	default:
		return ZoneUnselected
	}
}

// View snapshots the run for rendering.
func (l *Level) View() View {
	v := View{
		Phase:       l.Phase(),
		GridSize:    l.cfg.Gen.GridSize,
		Trial:       l.Trial(),
		TotalTrials: l.cfg.TotalTrials,
		Streak:      l.streak,
		AnswerZone:  -1,
		GuessZone:   -1,
		EntryZone:   -1,
	}
	for _, s := range l.scores {
		v.TotalScore += s
	}

	if v.Phase == PhaseDone {
		if n := len(l.results); n > 0 {
			res := l.results[n-1]
			v.LastResult = &res
		}
		return v
	}
	if l.engine == nil {
		return v
	}

	scn := l.engine.Scenario()
	v.GridSize = scn.GridSize
	v.EntryZone = geom.EntryZone(scn.GridSize, scn.EntryEdge, scn.EntryIndex)

	switch v.Phase {
	case PhaseMemorize:
		v.Reflectors = scn.AllReflectors()
	case PhaseReveal:
		v.Reflectors = scn.AllReflectors()
		v.Path = scn.Path
		v.AnswerZone = scn.ExitZone
		res := l.engine.Result()
		v.GuessZone = res.GuessedZone
		v.LastResult = &res
	}
	return v
}
