// Package trial owns the timed state machine for bounce drills: one engine
// per memorize/predict/reveal round, one level per fixed-length run of
// rounds. The package never touches a real clock; entering a phase returns
// an explicit timer request and the host feeds expiries back in, which keeps
// the machine deterministic and testable.
package trial

import (
	"time"

	"github.com/dmerkulov/tui-reflex/internal/geom"
	"github.com/dmerkulov/tui-reflex/internal/scenario"
)

// Phase is the state of a single trial.
type Phase uint8

const (
	PhaseReady Phase = iota
	PhaseMemorize
	PhasePredict
	PhaseReveal
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseMemorize:
		return "memorize"
	case PhasePredict:
		return "predict"
	case PhaseReveal:
		return "reveal"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Config is the level definition handed in by the host. Mirror and decoy
// counts plus generator tuning live in Gen.
type Config struct {
	Gen scenario.Params

	Memorize time.Duration // Mirrors visible
	Predict  time.Duration // Mirrors hidden, countdown to auto-guess
	Reveal   time.Duration // True path shown before the next trial

	TotalTrials          int
	PassThresholdPercent int
	RewardPoints         int

	BasePoints   int // Score for a correct guess at streak 0
	StreakBonus  int // Extra per consecutive prior correct guess
	PerfectBonus int // Flat addition for a 100% run
}

// TimerID identifies one scheduled timer. IDs are never reused within a
// level run, so an expiry arriving after its phase has ended is recognised
// as stale and ignored - that is the whole race policy.
type TimerID uint64

// TimerRequest asks the host to deliver HandleTimer(ID) after the delay.
type TimerRequest struct {
	ID    TimerID
	After time.Duration
}

// Transition reports the outcome of feeding an event into the machine.
// A zero transition (From == To, no timer) means the event was a no-op.
type Transition struct {
	From  Phase
	To    Phase
	Timer *TimerRequest
}

// noop returns the transition for an ignored event.
func noop(p Phase) Transition {
	return Transition{From: p, To: p}
}

// Result is the scored outcome of one finished trial.
type Result struct {
	GuessedZone int
	Correct     bool
	Points      int
	AutoGuessed bool // True when the predict countdown expired
}

// Engine runs one trial over one scenario.
type Engine struct {
	cfg      Config
	scn      *scenario.Scenario
	streakIn int

	phase   Phase
	pending TimerID
	alloc   func() TimerID

	guess       int
	correct     bool
	points      int
	autoGuessed bool
}

// NewEngine prepares a trial in the ready phase. streak is the number of
// consecutive correct guesses carried in from earlier trials; alloc hands
// out run-unique timer IDs.
func NewEngine(cfg Config, scn *scenario.Scenario, streak int, alloc func() TimerID) *Engine {
	return &Engine{
		cfg:      cfg,
		scn:      scn,
		streakIn: streak,
		phase:    PhaseReady,
		alloc:    alloc,
		guess:    -1,
	}
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Scenario returns the puzzle under play.
func (e *Engine) Scenario() *scenario.Scenario {
	return e.scn
}

// Start moves ready -> memorize and arms the memorize timer. Calling it in
// any other phase is a no-op.
func (e *Engine) Start() Transition {
	if e.phase != PhaseReady {
		return noop(e.phase)
	}
	return e.enter(PhaseMemorize, e.cfg.Memorize)
}

// HandleTimer feeds a timer expiry into the machine. Stale IDs (an earlier
// phase's timer, or a timer beaten by player input) do nothing.
func (e *Engine) HandleTimer(id TimerID) Transition {
	if id == 0 || id != e.pending {
		return noop(e.phase)
	}

	switch e.phase {
	case PhaseMemorize:
		// Not cancellable by input: the mirrors always hide on schedule.
		return e.enter(PhasePredict, e.cfg.Predict)

	case PhasePredict:
		// Countdown ran out: guess the neutral default so the trial still
		// scores. A trial is never left unscored.
		e.autoGuessed = true
		e.resolve(geom.DefaultZone(e.scn.GridSize))
		return e.enter(PhaseReveal, e.cfg.Reveal)

	case PhaseReveal:
		e.pending = 0
		from := e.phase
		e.phase = PhaseDone
		return Transition{From: from, To: PhaseDone}

	default:
		return noop(e.phase)
	}
}

// SubmitGuess records the player's exit-zone pick. Valid only during
// predict with a zone inside [0, 4n); anything else is silently ignored.
func (e *Engine) SubmitGuess(zone int) Transition {
	if e.phase != PhasePredict {
		return noop(e.phase)
	}
	if zone < 0 || zone >= geom.ZoneCount(e.scn.GridSize) {
		return noop(e.phase)
	}
	e.resolve(zone)
	return e.enter(PhaseReveal, e.cfg.Reveal)
}

// Result returns the trial outcome. Meaningful from reveal onward.
func (e *Engine) Result() Result {
	return Result{
		GuessedZone: e.guess,
		Correct:     e.correct,
		Points:      e.points,
		AutoGuessed: e.autoGuessed,
	}
}

// resolve scores the guess against the scenario's answer.
func (e *Engine) resolve(zone int) {
	e.guess = zone
	e.correct = zone == e.scn.ExitZone
	if e.correct {
		e.points = e.cfg.BasePoints + e.streakIn*e.cfg.StreakBonus
	} else {
		e.points = 0
	}
}

// enter switches phase and arms the phase timer.
func (e *Engine) enter(to Phase, after time.Duration) Transition {
	from := e.phase
	e.phase = to
	e.pending = e.alloc()
	return Transition{
		From:  from,
		To:    to,
		Timer: &TimerRequest{ID: e.pending, After: after},
	}
}
