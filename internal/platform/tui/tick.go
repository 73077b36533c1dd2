// Package tui provides the Bubble Tea integration for the trainer.
// It handles the terminal UI loop, input mapping, and drill orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmerkulov/tui-reflex/internal/trial"
)

// TimerMsg delivers a phase timer expiry back to the drill model.
// The ID lets the trial machine drop expiries that lost a race with input.
type TimerMsg struct {
	ID trial.TimerID
}

// timerCmd schedules delivery of a timer request, or nothing if the
// transition carried no timer.
func timerCmd(req *trial.TimerRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	id := req.ID
	return tea.Tick(req.After, func(t time.Time) tea.Msg {
		return TimerMsg{ID: id}
	})
}
