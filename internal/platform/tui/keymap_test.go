package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"w", runeKey('w'), core.ActionUp},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"s", runeKey('s'), core.ActionDown},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runeKey('a'), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"d", runeKey('d'), core.ActionRight},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionRestart},
		{"r", runeKey('r'), core.ActionRestart},
		{"p", runeKey('p'), core.ActionPause},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionScoreboard},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"1", runeKey('1'), core.ActionSize1},
		{"3", runeKey('3'), core.ActionSize3},
		{"5", runeKey('5'), core.ActionSize5},
		{"6", runeKey('6'), core.ActionNone},
		{"x", runeKey('x'), core.ActionNone},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestKeyMapHelpFor(t *testing.T) {
	km := DefaultKeyMap()

	ready := km.HelpFor(snake.StatusReady, false).ShortHelp()
	if len(ready) == 0 || ready[0].Help().Desc != "start" {
		t.Errorf("Expected ready help to lead with start, got %v", ready)
	}

	paused := km.HelpFor(snake.StatusAction, true).ShortHelp()
	if len(paused) != 2 {
		t.Errorf("Expected pause and quit while paused, got %d bindings", len(paused))
	}

	over := km.HelpFor(snake.StatusOver, false).ShortHelp()
	if over[0].Help().Desc != "restart" {
		t.Errorf("Expected over help to lead with restart, got %q", over[0].Help().Desc)
	}
}
