package trial

import (
	"errors"
	"math"
	"time"

	"github.com/dmerkulov/tui-reflex/internal/scenario"
)

// ErrNoTrials is returned when a level is configured with no trials to
// play. It is the only condition that aborts a run before producing a
// result record.
var ErrNoTrials = errors.New("trial: level configured with no trials")

// LevelResult is the record emitted once per level run, completed or
// abandoned.
type LevelResult struct {
	TrialScores  []int
	TotalScore   int
	CorrectCount int
	TotalTrials  int
	Accuracy     float64 // correct / total, in [0,1]
	Perfect      bool
	Passed       bool
	Completed    bool // False when the run was abandoned
	Reward       int
	Duration     time.Duration
}

// Level runs a fixed-length sequence of trials sharing streak state and a
// puzzle deduplication set.
type Level struct {
	cfg Config
	src *scenario.Dedup
	now func() time.Time

	engine   *Engine
	trialIdx int // 0-based index of the current trial
	scores   []int
	results  []Result
	correct  int
	streak   int
	used     map[string]struct{}

	timerSeq  TimerID
	startedAt time.Time
	finished  bool
	abandoned bool
	duration  time.Duration
}

// LevelOption customises a level run.
type LevelOption func(*Level)

// WithClock injects the wall-clock source used for run duration. Tests pass
// a fake; production uses time.Now.
func WithClock(now func() time.Time) LevelOption {
	return func(l *Level) {
		l.now = now
	}
}

// NewLevel validates the configuration and prepares a run. The first trial
// does not begin until Start.
func NewLevel(cfg Config, src *scenario.Dedup, opts ...LevelOption) (*Level, error) {
	if cfg.TotalTrials <= 0 {
		return nil, ErrNoTrials
	}
	l := &Level{
		cfg:    cfg,
		src:    src,
		now:    time.Now,
		scores: make([]int, 0, cfg.TotalTrials),
		used:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Start begins the first trial and returns its memorize transition.
func (l *Level) Start() Transition {
	if l.engine != nil || l.finished {
		return noop(l.Phase())
	}
	l.startedAt = l.now()
	l.engine = l.nextEngine()
	return l.engine.Start()
}

// HandleTimer routes a timer expiry to the current trial, then advances the
// run when the trial completes. After the run finishes or is abandoned all
// timers are stale.
func (l *Level) HandleTimer(id TimerID) Transition {
	if l.engine == nil || l.finished {
		return noop(l.Phase())
	}
	return l.advance(l.engine.HandleTimer(id))
}

// SubmitGuess routes the player's pick to the current trial.
func (l *Level) SubmitGuess(zone int) Transition {
	if l.engine == nil || l.finished {
		return noop(l.Phase())
	}
	return l.advance(l.engine.SubmitGuess(zone))
}

// advance processes a trial transition: when a trial ends, its score folds
// into the run and either the next trial starts or the level completes.
func (l *Level) advance(tr Transition) Transition {
	if tr.To != PhaseDone || tr.From == tr.To {
		return tr
	}

	res := l.engine.Result()
	l.scores = append(l.scores, res.Points)
	l.results = append(l.results, res)
	if res.Correct {
		l.correct++
		l.streak++
	} else {
		l.streak = 0
	}

	l.trialIdx++
	if l.trialIdx >= l.cfg.TotalTrials {
		l.finish()
		return Transition{From: tr.From, To: PhaseDone}
	}

	l.engine = l.nextEngine()
	started := l.engine.Start()
	return Transition{From: tr.From, To: started.To, Timer: started.Timer}
}

// Abandon closes the run immediately as a failed-but-reported result. Any
// timers the host still holds become stale.
func (l *Level) Abandon() LevelResult {
	if !l.finished {
		l.abandoned = true
		l.finish()
	}
	return l.Result()
}

// finish freezes the run outcome.
func (l *Level) finish() {
	l.finished = true
	l.engine = nil
	if !l.startedAt.IsZero() {
		l.duration = l.now().Sub(l.startedAt)
	}
}

// Finished reports whether the run has produced its result record.
func (l *Level) Finished() bool {
	return l.finished
}

// Result computes the level record. Valid once Finished is true; before
// that it reflects the run so far.
func (l *Level) Result() LevelResult {
	total := 0
	for _, s := range l.scores {
		total += s
	}
	accuracy := float64(l.correct) / float64(l.cfg.TotalTrials)
	perfect := l.correct == l.cfg.TotalTrials
	completed := l.finished && !l.abandoned
	passed := completed && accuracy*100 >= float64(l.cfg.PassThresholdPercent)

	reward := 0
	if passed {
		reward = int(math.Round(float64(l.cfg.RewardPoints) * accuracy))
		if perfect {
			reward += l.cfg.PerfectBonus
		}
	}

	return LevelResult{
		TrialScores:  append([]int(nil), l.scores...),
		TotalScore:   total,
		CorrectCount: l.correct,
		TotalTrials:  l.cfg.TotalTrials,
		Accuracy:     accuracy,
		Perfect:      perfect,
		Passed:       passed,
		Completed:    completed,
		Reward:       reward,
		Duration:     l.duration,
	}
}

// Phase returns the current trial's phase, or PhaseDone after the run ends.
func (l *Level) Phase() Phase {
	if l.finished {
		return PhaseDone
	}
	if l.engine == nil {
		return PhaseReady
	}
	return l.engine.Phase()
}

// Trial returns the 1-based number of the trial in play, clamped to the
// trial count once the run ends.
func (l *Level) Trial() int {
	if l.trialIdx >= l.cfg.TotalTrials {
		return l.cfg.TotalTrials
	}
	return l.trialIdx + 1
}

// Streak returns the current consecutive-correct counter.
func (l *Level) Streak() int {
	return l.streak
}

// nextEngine pulls a fresh, unseen puzzle and wraps it in a trial engine.
func (l *Level) nextEngine() *Engine {
	p := l.cfg.Gen
	scn := l.src.Next(p, l.used)
	l.used[scn.Signature()] = struct{}{}
	return NewEngine(l.cfg, scn, l.streak, l.nextTimerID)
}

// nextTimerID hands out run-unique timer IDs across all trials.
func (l *Level) nextTimerID() TimerID {
	l.timerSeq++
	return l.timerSeq
}
