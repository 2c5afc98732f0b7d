package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// KeyMap holds the game's key bindings. It translates Bubble Tea key
// messages to core actions and feeds the help line.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Start      key.Binding
	Restart    key.Binding
	Pause      key.Binding
	Sizes      [5]key.Binding
	Scoreboard key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("esc", "r"),
			key.WithHelp("esc/r", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Scoreboard: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	for i := range km.Sizes {
		k := string(rune('1' + i))
		km.Sizes[i] = key.NewBinding(key.WithKeys(k))
	}
	km.Sizes[0].SetHelp("1-5", "field size")
	return km
}

// Action translates a key to a core action. Keys with no binding map to
// core.ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Start):
		return core.ActionConfirm
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Scoreboard):
		return core.ActionScoreboard
	}
	for i, b := range k.Sizes {
		if key.Matches(msg, b) {
			return core.ActionSize1 + core.Action(i)
		}
	}
	return core.ActionNone
}

// statusHelp lists the bindings that do something in one round status.
type statusHelp []key.Binding

func (h statusHelp) ShortHelp() []key.Binding  { return h }
func (h statusHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

// HelpFor returns the help line bindings for a round status.
func (k KeyMap) HelpFor(status snake.Status, paused bool) help.KeyMap {
	switch status {
	case snake.StatusReady:
		return statusHelp{k.Start, k.Sizes[0], k.Scoreboard, k.Quit}
	case snake.StatusAction:
		if paused {
			return statusHelp{k.Pause, k.Quit}
		}
		return statusHelp{k.Up, k.Down, k.Left, k.Right, k.Pause, k.Quit}
	default:
		return statusHelp{k.Restart, k.Screenshot, k.Quit}
	}
}
