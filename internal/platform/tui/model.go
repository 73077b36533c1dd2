package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmerkulov/tui-reflex/internal/geom"
	"github.com/dmerkulov/tui-reflex/internal/registry"
	"github.com/dmerkulov/tui-reflex/internal/scenario"
	"github.com/dmerkulov/tui-reflex/internal/storage"
	"github.com/dmerkulov/tui-reflex/internal/trial"
)

// drillStage tracks whether a level is running or its summary is shown.
type drillStage int

const (
	stagePlaying drillStage = iota
	stageLevelDone
)

// DrillModel is the Bubble Tea model for playing one drill, level by level.
type DrillModel struct {
	drill    registry.Drill
	levels   []trial.Config
	levelIdx int
	level    *trial.Level
	store    *storage.Store
	seed     uint64

	cursor int // Zone the player is pointing at during predict
	keys   DrillKeyMap
	help   help.Model
	stage  drillStage

	lastResult  trial.LevelResult
	resultSaved bool

	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewDrillModel creates a model for a drill run. A zero seed picks a
// time-based one. startLevel is 1-based; zero means resume at the deepest
// unpassed level.
func NewDrillModel(drill registry.Drill, store *storage.Store, seed uint64, startLevel, width, height int) (DrillModel, error) {
	levels, err := drill.Levels()
	if err != nil {
		return DrillModel{}, fmt.Errorf("tui: load levels for %s: %w", drill.ID(), err)
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	start := 0
	switch {
	case startLevel > 0:
		start = startLevel - 1
	case store != nil:
		if passed, err := store.HighestPassedLevel(drill.ID()); err == nil {
			start = passed
		}
	}
	if start >= len(levels) {
		start = len(levels) - 1
	}

	m := DrillModel{
		drill:    drill,
		levels:   levels,
		levelIdx: start,
		store:    store,
		seed:     seed,
		keys:     DefaultDrillKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	if err := m.startLevel(); err != nil {
		return DrillModel{}, err
	}
	return m, nil
}

// startLevel builds the trial level for the current index.
func (m *DrillModel) startLevel() error {
	cfg := m.levels[m.levelIdx]

	// Derive a per-level seed so retries of the same level differ.
	levelSeed := m.seed + uint64(m.levelIdx)<<32 + uint64(time.Now().UnixNano()&0xffff)
	gen := scenario.NewGenerator(levelSeed)

	level, err := trial.NewLevel(cfg, scenario.NewDedup(gen))
	if err != nil {
		return fmt.Errorf("tui: level %d: %w", m.levelIdx+1, err)
	}

	m.level = level
	m.stage = stagePlaying
	m.resultSaved = false
	m.cursor = geom.DefaultZone(cfg.Gen.GridSize)
	return nil
}

// Init starts the first trial.
func (m DrillModel) Init() tea.Cmd {
	tr := m.level.Start()
	return timerCmd(tr.Timer)
}

// Update handles messages.
func (m DrillModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TimerMsg:
		return m.handleTimer(msg)
	}
	return m, nil
}

// handleTimer feeds a phase expiry into the trial machine.
func (m DrillModel) handleTimer(msg TimerMsg) (tea.Model, tea.Cmd) {
	if m.stage != stagePlaying {
		return m, nil
	}
	tr := m.level.HandleTimer(msg.ID)
	return m.afterTransition(tr)
}

// handleKey processes keyboard input.
func (m DrillModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.stage == stageLevelDone {
		return m.handleSummaryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.abandonAndSave()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.abandonAndSave()
		m.backToMenu = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Prev):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Next):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Jump):
		// Hop to the start of the next edge.
		n := m.gridSize()
		m.cursor = ((m.cursor/n + 1) % 4) * n

	case key.Matches(msg, m.keys.Confirm):
		tr := m.level.SubmitGuess(m.cursor)
		return m.afterTransition(tr)
	}

	return m, nil
}

// handleSummaryKey processes input on the level summary screen.
func (m DrillModel) handleSummaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		next := m.levelIdx
		if m.lastResult.Passed {
			next++
		}
		if next >= len(m.levels) {
			// Drill cleared.
			m.backToMenu = true
			return m, tea.Quit
		}
		m.levelIdx = next
		if err := m.startLevel(); err != nil {
			m.quitting = true
			return m, tea.Quit
		}
		tr := m.level.Start()
		return m, timerCmd(tr.Timer)
	}

	return m, nil
}

// afterTransition saves finished levels and schedules the next timer.
func (m DrillModel) afterTransition(tr trial.Transition) (tea.Model, tea.Cmd) {
	if m.level.Finished() {
		m.lastResult = m.level.Result()
		m.saveResult(m.lastResult)
		m.stage = stageLevelDone
		return m, nil
	}

	// Entering a fresh predict phase resets the cursor to the default zone.
	if tr.To == trial.PhasePredict && tr.From != trial.PhasePredict {
		m.cursor = geom.DefaultZone(m.gridSize())
	}
	return m, timerCmd(tr.Timer)
}

// abandonAndSave records an aborted run.
func (m *DrillModel) abandonAndSave() {
	if m.level == nil || m.level.Finished() {
		return
	}
	res := m.level.Abandon()
	m.saveResult(res)
}

// saveResult persists a level result once.
func (m *DrillModel) saveResult(res trial.LevelResult) {
	if m.resultSaved || m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, play continues regardless
	m.store.SaveResult(m.drill.ID(), m.levelIdx+1, res)
	m.resultSaved = true
}

// moveCursor shifts the zone cursor around the perimeter.
func (m *DrillModel) moveCursor(delta int) {
	count := geom.ZoneCount(m.gridSize())
	m.cursor = ((m.cursor+delta)%count + count) % count
}

func (m DrillModel) gridSize() int {
	return m.levels[m.levelIdx].Gen.GridSize
}

// View renders the drill.
func (m DrillModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	if m.stage == stageLevelDone {
		return m.viewSummary()
	}

	v := m.level.View()

	cursor := -1
	if v.Phase == trial.PhasePredict {
		cursor = m.cursor
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(m.drill.Title(), m.width))
	b.WriteString("\n\n")

	status := fmt.Sprintf("Level %d  |  Trial %d/%d  |  Score %d  |  Streak %d",
		m.levelIdx+1, v.Trial, v.TotalTrials, v.TotalScore, v.Streak)
	b.WriteString(centerText(status, m.width))
	b.WriteString("\n\n")

	board := RenderBoard(v, cursor)
	for _, line := range strings.Split(strings.TrimRight(board, "\n"), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(centerText(m.phaseHint(v), m.width))
	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// phaseHint is the one-line instruction under the board.
func (m DrillModel) phaseHint(v trial.View) string {
	switch v.Phase {
	case trial.PhaseMemorize:
		return "Memorize the mirrors!"
	case trial.PhasePredict:
		return "Where does the ball exit?"
	case trial.PhaseReveal:
		if v.LastResult != nil && v.LastResult.Correct {
			return fmt.Sprintf("Hit!  +%d points", v.LastResult.Points)
		}
		return "Miss. Watch the path."
	default:
		return ""
	}
}

// viewSummary renders the end-of-level screen.
func (m DrillModel) viewSummary() string {
	res := m.lastResult

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centerText(m.drill.Title(), m.width))
	b.WriteString("\n\n")

	verdictStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	verdict := fmt.Sprintf("LEVEL %d FAILED", m.levelIdx+1)
	switch {
	case !res.Completed:
		verdict = fmt.Sprintf("LEVEL %d ABANDONED", m.levelIdx+1)
	case res.Passed:
		verdictStyle = verdictStyle.Foreground(lipgloss.Color("10"))
		verdict = fmt.Sprintf("LEVEL %d PASSED", m.levelIdx+1)
	}
	b.WriteString(centerText(verdictStyle.Render(verdict), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(fmt.Sprintf("Correct: %d/%d (%.0f%%)", res.CorrectCount, res.TotalTrials, res.Accuracy*100), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Score: %d", res.TotalScore), m.width))
	b.WriteString("\n")
	if res.Passed {
		reward := fmt.Sprintf("Reward: %d", res.Reward)
		if res.Perfect {
			reward += "  (perfect bonus!)"
		}
		b.WriteString(centerText(reward, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	prompt := "Enter: Retry level  |  Esc: Menu  |  Q: Quit"
	if res.Passed {
		prompt = "Enter: Next level  |  Esc: Menu  |  Q: Quit"
		if m.levelIdx+1 >= len(m.levels) {
			prompt = "Drill complete!  Enter/Esc: Menu  |  Q: Quit"
		}
	}
	b.WriteString(centerText(prompt, m.width))
	b.WriteString("\n")

	return b.String()
}

// BackToMenu returns true if user requested to go back to menu.
func (m DrillModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user requested to quit entirely.
func (m DrillModel) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for a single drill.
func Run(drill registry.Drill, store *storage.Store, seed uint64, startLevel, width, height int) error {
	model, err := NewDrillModel(drill, store, seed, startLevel, width, height)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
