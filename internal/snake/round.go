package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Status is the round's position in its Ready -> Action -> Over cycle.
type Status int

const (
	StatusReady Status = iota
	StatusAction
	StatusOver
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusAction:
		return "action"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// ErrNotReady is returned when the field size is changed outside the Ready status.
var ErrNotReady = errors.New("snake: field size can only change before the round starts")

// hudHeight is the number of screen rows above the field.
const hudHeight = 3

// Round owns one snake and the field it moves on. It is the only code that
// mutates either, so the field's snake cells always match the snake's body.
type Round struct {
	cfg       config.SnakeConfig
	intervals []time.Duration
	rng       *rand.Rand

	sizeIndex int
	snake     *Snake
	field     *Field

	status    Status
	paused    bool
	won       bool
	tick      uint64
	apples    int
	speed     int // Index into intervals
	appleWait int // Ticks since the field last had an apple

	screenW int
	screenH int
}

// NewRound validates cfg and prepares a round in the Ready status on the
// configured default field size.
func NewRound(cfg config.SnakeConfig, rc core.RuntimeConfig) (*Round, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("snake: %w", err)
	}

	r := &Round{
		cfg:       cfg,
		intervals: cfg.Speed.Intervals(),
		rng:       rand.New(rand.NewSource(rc.Seed)),
		sizeIndex: cfg.Field.DefaultSize,
		screenW:   rc.ScreenW,
		screenH:   rc.ScreenH,
	}
	if err := r.reset(); err != nil {
		return nil, err
	}
	return r, nil
}

// reset discards the snake and field and builds fresh ones for the current size.
func (r *Round) reset() error {
	size := r.cfg.Field.Sizes[r.sizeIndex]
	length := r.cfg.Snake.InitialLength

	// Horizontal snake on the middle row, tail at mid-1, heading right.
	mid := size / 2
	body := make([]core.Point, length)
	for i := range body {
		body[i] = core.Point{X: mid + i - 1, Y: mid}
	}

	s := NewSnake(body)
	f, err := NewField(size, s)
	if err != nil {
		return err
	}

	r.snake = s
	r.field = f
	r.status = StatusReady
	r.paused = false
	r.won = false
	r.tick = 0
	r.apples = 0
	r.speed = r.cfg.Speed.StartTier
	r.appleWait = 0
	return nil
}

// Start begins play. Only valid in the Ready status.
func (r *Round) Start() bool {
	if r.status != StatusReady {
		return false
	}
	r.status = StatusAction
	return true
}

// Restart returns a finished round to the Ready status on the same field size.
func (r *Round) Restart() bool {
	if r.status != StatusOver {
		return false
	}
	// Sizes were validated up front, so rebuilding cannot fail.
	if err := r.reset(); err != nil {
		panic(err)
	}
	return true
}

// SelectSize switches to field size preset index and rebuilds the round.
func (r *Round) SelectSize(index int) error {
	if r.status != StatusReady {
		return ErrNotReady
	}
	if index < 0 || index >= len(r.cfg.Field.Sizes) {
		return fmt.Errorf("%w: no field size preset %d", ErrInvalidSize, index+1)
	}
	r.sizeIndex = index
	return r.reset()
}

// Steer redirects the snake. Only valid while playing and not paused.
func (r *Round) Steer(d core.Direction) bool {
	if r.status != StatusAction || r.paused {
		return false
	}
	return r.snake.Redirect(d)
}

// TogglePause pauses or resumes play.
func (r *Round) TogglePause() {
	if r.status == StatusAction {
		r.paused = !r.paused
	}
}

// Apply interprets a key command according to the current status:
// Ready accepts start and size selection, Action accepts steering and pause,
// Over accepts restart. Everything else is ignored.
func (r *Round) Apply(a core.Action) {
	switch r.status {
	case StatusReady:
		if a == core.ActionConfirm {
			r.Start()
			return
		}
		if idx, ok := a.SizeIndex(); ok {
			//nolint:errcheck // Presets beyond the configured list are ignored
			r.SelectSize(idx)
		}
	case StatusAction:
		if a == core.ActionPause {
			r.TogglePause()
			return
		}
		if d, ok := a.Direction(); ok {
			r.Steer(d)
		}
	case StatusOver:
		if a == core.ActionRestart {
			r.Restart()
		}
	}
}

// Step advances the round by one tick and returns the resulting status.
// Nothing moves unless the round is in Action and unpaused.
func (r *Round) Step() Status {
	if r.status != StatusAction || r.paused {
		return r.status
	}
	r.tick++

	next := r.snake.NextStep()
	if !r.field.IsPassable(next) {
		r.status = StatusOver
		return r.status
	}

	r.move(next)
	if _, ok := r.field.Apple(); !ok && r.field.Full() {
		r.status = StatusOver
		r.won = true
		return r.status
	}
	r.spawnApple()
	return r.status
}

// move commits the head to next on both the snake and the field.
// Eating an apple skips the tail shrink, so the snake grows by one.
func (r *Round) move(next core.Point) {
	ate := false
	if apple, ok := r.field.Apple(); ok && apple == next {
		ate = true
		r.field.RemoveApple()
		r.apples++
		r.appleWait = 0
		if !r.cfg.Speed.Fixed && r.speed+1 < len(r.intervals) {
			r.speed++
		}
	}

	r.snake.Advance(next)
	r.field.MarkOccupied(next)

	if !ate {
		tail := r.snake.ShrinkTail()
		r.field.Clear(tail)
	}
}

// spawnApple counts ticks without an apple and places one once the delay passes.
func (r *Round) spawnApple() {
	if _, ok := r.field.Apple(); ok {
		return
	}
	r.appleWait++
	if r.appleWait < r.cfg.Apple.Delay {
		return
	}

	// Step ends the round before the field can fill up.
	p, err := r.field.RandomFreeCell(r.rng)
	if err != nil {
		panic(err)
	}
	if err := r.field.PlaceApple(p); err != nil {
		panic(err) // RandomFreeCell only returns empty cells
	}
}

// SetScreenSize records the terminal size used for layout.
func (r *Round) SetScreenSize(w, h int) {
	r.screenW = w
	r.screenH = h
}

// TooSmall reports whether the current field cannot be drawn on the screen.
func (r *Round) TooSmall() bool {
	w, h := r.requiredScreen()
	return r.screenW < w || r.screenH < h
}

// requiredScreen returns the screen size needed to draw the field and HUD.
func (r *Round) requiredScreen() (int, int) {
	n := r.field.Size()
	return n * cellWidth, n + hudHeight
}

// Interval returns the time between ticks at the current speed tier.
func (r *Round) Interval() time.Duration {
	return r.intervals[r.speed]
}

// Status returns the current status.
func (r *Round) Status() Status { return r.status }

// Paused reports whether play is paused.
func (r *Round) Paused() bool { return r.paused }

// Won reports whether the round ended because the field filled up.
func (r *Round) Won() bool { return r.won }

// Apples returns the number of apples eaten this round.
func (r *Round) Apples() int { return r.apples }

// SpeedTier returns the zero-based speed tier.
func (r *Round) SpeedTier() int { return r.speed }

// SpeedTiers returns the number of tiers in the speed table.
func (r *Round) SpeedTiers() int { return len(r.intervals) }

// Size returns the current field side length.
func (r *Round) Size() int { return r.field.Size() }

// Sizes returns the selectable field sizes in preset order.
func (r *Round) Sizes() []int {
	out := make([]int, len(r.cfg.Field.Sizes))
	copy(out, r.cfg.Field.Sizes)
	return out
}

// SizeIndex returns the index of the current field size preset.
func (r *Round) SizeIndex() int { return r.sizeIndex }

// Snake returns the round's snake. Callers must not mutate it.
func (r *Round) Snake() *Snake { return r.snake }

// Field returns the round's field. Callers must not mutate it.
func (r *Round) Field() *Field { return r.field }
