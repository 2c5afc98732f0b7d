// Package snake implements the Snake game: the snake body, the occupancy
// field it moves on, and the round controller that drives both on each tick.
// It has no terminal dependencies; the platform layer feeds it actions and
// ticks and draws it through core.Screen.
package snake

import (
	"github.com/vovakirdan/tui-snake/internal/core"
)

// MinLength is the shortest body a snake may have. Redirect inspects the
// cell behind the head, so a single-cell snake is not allowed.
const MinLength = 2

// Snake is an ordered list of occupied cells, tail first and head last,
// plus the direction the head is travelling.
type Snake struct {
	body      []core.Point
	direction core.Direction
}

// NewSnake creates a snake heading right from the given cells (tail first).
// Panics if fewer than MinLength cells are given.
func NewSnake(body []core.Point) *Snake {
	if len(body) < MinLength {
		panic("snake: body needs at least two cells")
	}
	cells := make([]core.Point, len(body))
	copy(cells, body)
	return &Snake{
		body:      cells,
		direction: core.DirRight,
	}
}

// Head returns the head cell.
func (s *Snake) Head() core.Point {
	return s.body[len(s.body)-1]
}

// Neck returns the cell directly behind the head.
func (s *Snake) Neck() core.Point {
	return s.body[len(s.body)-2]
}

// Tail returns the oldest cell.
func (s *Snake) Tail() core.Point {
	return s.body[0]
}

// Len returns the number of cells in the body.
func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns a copy of the body, tail first.
func (s *Snake) Body() []core.Point {
	out := make([]core.Point, len(s.body))
	copy(out, s.body)
	return out
}

// Direction returns the current heading.
func (s *Snake) Direction() core.Direction {
	return s.direction
}

// NextStep returns the cell one step ahead of the head. It has no side effects.
func (s *Snake) NextStep() core.Point {
	return s.Head().Step(s.direction)
}

// Redirect changes the heading. The change is rejected, and the previous
// heading kept, when it would turn the head back into the neck.
// Reports whether the new heading was accepted.
func (s *Snake) Redirect(d core.Direction) bool {
	if !d.Valid() {
		return false
	}
	prev := s.direction
	s.direction = d
	if s.NextStep() == s.Neck() {
		s.direction = prev
		return false
	}
	return true
}

// Advance appends p as the new head. The snake grows by one.
func (s *Snake) Advance(p core.Point) {
	s.body = append(s.body, p)
}

// ShrinkTail removes and returns the tail cell.
// Panics if the snake would drop below MinLength.
func (s *Snake) ShrinkTail() core.Point {
	if len(s.body) <= MinLength {
		panic("snake: cannot shrink below minimum length")
	}
	tail := s.body[0]
	s.body = s.body[1:]
	return tail
}
