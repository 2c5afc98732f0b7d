package core

// Action represents a semantic game command, abstracted from physical key presses.
// The round decides what an action means based on its current status.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - steer up
	ActionDown           // S, Down arrow - steer down
	ActionLeft           // A, Left arrow - steer left
	ActionRight          // D, Right arrow - steer right
	ActionConfirm        // Enter - start the round
	ActionRestart        // Esc, R - back to the ready screen after game over
	ActionPause          // P - pause/unpause
	ActionSize1          // 1..5 - pick a field size preset on the ready screen
	ActionSize2
	ActionSize3
	ActionSize4
	ActionSize5
	ActionScoreboard // Tab - open the high score table
	ActionQuit       // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionSize1, ActionSize2, ActionSize3, ActionSize4, ActionSize5:
		return "Size"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// SizeIndex returns the zero-based field size preset selected by a size action.
// The second result is false for every other action.
func (a Action) SizeIndex() (int, bool) {
	if a >= ActionSize1 && a <= ActionSize5 {
		return int(a - ActionSize1), true
	}
	return 0, false
}

// Direction returns the heading for a steering action.
// The second result is false for non-steering actions.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	default:
		return DirRight, false
	}
}
