// Package tui runs the snake game in a terminal through Bubble Tea.
// It maps keys to actions, drives the round's tick loop at the current
// speed and serves sessions over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a round tick.
type TickMsg time.Time

// tickCmd schedules the next tick after interval. The model re-arms it on
// every tick so a speed change takes effect from the following tick.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
