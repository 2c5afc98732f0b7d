package snake

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// testConfig returns the default config on the 20x20 field with apples
// held back so movement is predictable.
func testConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Field.DefaultSize = 0
	cfg.Apple.Delay = 1000
	return cfg
}

func newTestRound(t *testing.T, cfg config.SnakeConfig) *Round {
	t.Helper()
	r, err := NewRound(cfg, core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 30})
	if err != nil {
		t.Fatalf("NewRound: %v", err)
	}
	return r
}

func TestNewRoundReady(t *testing.T) {
	r := newTestRound(t, testConfig())

	if r.Status() != StatusReady {
		t.Errorf("Expected status ready, got %v", r.Status())
	}
	if r.Size() != 20 {
		t.Errorf("Expected 20x20 field, got %d", r.Size())
	}
	want := []core.Point{{X: 9, Y: 10}, {X: 10, Y: 10}, {X: 11, Y: 10}}
	body := r.Snake().Body()
	for i, p := range want {
		if body[i] != p {
			t.Errorf("Body[%d] = %v, want %v", i, body[i], p)
		}
		if r.Field().At(p) != CellSnake {
			t.Errorf("Field at %v = %v, want snake", p, r.Field().At(p))
		}
	}
	if r.Snake().Direction() != core.DirRight {
		t.Errorf("Expected initial direction right, got %v", r.Snake().Direction())
	}
}

func TestNewRoundInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Speed.IntervalsMS = nil
	if _, err := NewRound(cfg, core.RuntimeConfig{}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestStepMovesHeadAndTail(t *testing.T) {
	r := newTestRound(t, testConfig())
	r.Start()

	if st := r.Step(); st != StatusAction {
		t.Fatalf("Expected action after one step, got %v", st)
	}
	if r.Snake().Head() != core.Pt(12, 10) {
		t.Errorf("Expected head at (12,10), got %v", r.Snake().Head())
	}
	if r.Snake().Len() != 3 {
		t.Errorf("Expected length 3, got %d", r.Snake().Len())
	}
	if r.Field().At(core.Pt(9, 10)) != CellEmpty {
		t.Errorf("Expected old tail cell to be empty, got %v", r.Field().At(core.Pt(9, 10)))
	}
	if r.Field().At(core.Pt(12, 10)) != CellSnake {
		t.Errorf("Expected new head cell to be snake")
	}
}

func TestStepIgnoredOutsideAction(t *testing.T) {
	r := newTestRound(t, testConfig())
	head := r.Snake().Head()

	r.Step()
	if r.Snake().Head() != head || r.Snapshot().Tick != 0 {
		t.Error("Snake should not move before the round starts")
	}

	r.Start()
	r.TogglePause()
	r.Step()
	if r.Snake().Head() != head || r.Snapshot().Tick != 0 {
		t.Error("Snake should not move while paused")
	}

	r.TogglePause()
	r.Step()
	if r.Snake().Head() == head {
		t.Error("Snake should move after unpausing")
	}
}

func TestEatApple(t *testing.T) {
	r := newTestRound(t, testConfig())
	r.Start()

	if err := r.Field().PlaceApple(core.Pt(12, 10)); err != nil {
		t.Fatalf("PlaceApple: %v", err)
	}
	before := r.Interval()
	r.Step()

	if r.Apples() != 1 {
		t.Errorf("Expected 1 apple eaten, got %d", r.Apples())
	}
	if r.Snake().Len() != 4 {
		t.Errorf("Expected length 4, got %d", r.Snake().Len())
	}
	if _, ok := r.Field().Apple(); ok {
		t.Error("Apple should be gone after eating")
	}
	if r.Field().At(core.Pt(9, 10)) != CellSnake {
		t.Error("Tail should stay put on the tick an apple is eaten")
	}
	if r.SpeedTier() != 1 {
		t.Errorf("Expected speed tier 1, got %d", r.SpeedTier())
	}
	if r.Interval() != 280*time.Millisecond || r.Interval() >= before {
		t.Errorf("Expected interval to drop to 280ms, got %v", r.Interval())
	}
}

func TestSpeedCapsAtLastTier(t *testing.T) {
	r := newTestRound(t, testConfig())
	r.Start()
	last := r.SpeedTiers() - 1
	r.speed = last

	if err := r.Field().PlaceApple(core.Pt(12, 10)); err != nil {
		t.Fatalf("PlaceApple: %v", err)
	}
	r.Step()

	if r.SpeedTier() != last {
		t.Errorf("Expected speed to stay at tier %d, got %d", last, r.SpeedTier())
	}
	if r.Interval() != 60*time.Millisecond {
		t.Errorf("Expected 60ms interval, got %v", r.Interval())
	}
}

func TestFixedSpeed(t *testing.T) {
	cfg := testConfig()
	config.ApplySnakePreset(&cfg, config.DifficultyFixed)
	r := newTestRound(t, cfg)
	r.Start()

	if err := r.Field().PlaceApple(core.Pt(12, 10)); err != nil {
		t.Fatalf("PlaceApple: %v", err)
	}
	r.Step()

	if r.Apples() != 1 || r.SpeedTier() != 0 {
		t.Errorf("Expected 1 apple at tier 0, got %d apples at tier %d", r.Apples(), r.SpeedTier())
	}
}

func TestHitBorder(t *testing.T) {
	r := newTestRound(t, testConfig())
	r.Start()

	// Head starts at x=11, border is at x=19.
	for i := 0; i < 50 && r.Status() == StatusAction; i++ {
		r.Step()
	}

	if r.Status() != StatusOver {
		t.Fatalf("Expected over, got %v", r.Status())
	}
	if r.Won() {
		t.Error("Hitting the border is not a win")
	}
	if r.Snake().Head() != core.Pt(18, 10) {
		t.Errorf("Expected head to stop at (18,10), got %v", r.Snake().Head())
	}
	if r.Snapshot().Tick != 8 {
		t.Errorf("Expected 8 ticks, got %d", r.Snapshot().Tick)
	}

	r.Step()
	if r.Snake().Head() != core.Pt(18, 10) {
		t.Error("Snake should not move after the round is over")
	}
}

func TestHitSelf(t *testing.T) {
	cfg := testConfig()
	cfg.Snake.InitialLength = 5
	r := newTestRound(t, cfg)
	r.Start()

	r.Steer(core.DirUp)
	r.Step()
	r.Steer(core.DirLeft)
	r.Step()
	r.Steer(core.DirDown)

	if st := r.Step(); st != StatusOver {
		t.Fatalf("Expected over after turning into the body, got %v", st)
	}
	if r.Snake().Head() != core.Pt(12, 9) {
		t.Errorf("Expected head at (12,9), got %v", r.Snake().Head())
	}
}

func TestSteerRejectsReversal(t *testing.T) {
	r := newTestRound(t, testConfig())
	r.Start()

	if r.Steer(core.DirLeft) {
		t.Error("Reversing into the neck should be rejected")
	}
	r.Step()
	if r.Snake().Head() != core.Pt(12, 10) {
		t.Errorf("Expected snake to keep going right, head at %v", r.Snake().Head())
	}
}

func TestAppleDelay(t *testing.T) {
	cfg := testConfig()
	cfg.Apple.Delay = 4
	r := newTestRound(t, cfg)
	r.Start()

	for i := 1; i <= 3; i++ {
		r.Step()
		if _, ok := r.Field().Apple(); ok {
			t.Fatalf("Apple appeared after %d ticks, want 4", i)
		}
	}

	r.Step()
	apple, ok := r.Field().Apple()
	if !ok {
		t.Fatal("Expected an apple after 4 ticks")
	}
	if slices.Contains(r.Snake().Body(), apple) {
		t.Errorf("Apple %v placed on the snake", apple)
	}
	if r.Field().At(apple) != CellApple {
		t.Errorf("Apple cell reads %v", r.Field().At(apple))
	}
}

func TestDeterminism(t *testing.T) {
	// Two rounds with the same seed and inputs must produce identical snapshots
	cfg := config.DefaultSnakeConfig()
	cfg.Apple.Delay = 1

	r1 := newTestRound(t, cfg)
	r2 := newTestRound(t, cfg)

	turns := map[int]core.Action{
		0:  core.ActionConfirm,
		3:  core.ActionUp,
		6:  core.ActionLeft,
		12: core.ActionDown,
		18: core.ActionRight,
	}
	for i := 0; i < 40; i++ {
		if a, ok := turns[i]; ok {
			r1.Apply(a)
			r2.Apply(a)
		}
		r1.Step()
		r2.Step()

		if s1, s2 := r1.Snapshot(), r2.Snapshot(); s1 != s2 {
			t.Fatalf("Tick %d: snapshots differ:\n%+v\n%+v", i, s1, s2)
		}
	}
}

func TestApplyByStatus(t *testing.T) {
	r := newTestRound(t, config.DefaultSnakeConfig())

	// Ready: steering is ignored, size keys and Enter work.
	r.Apply(core.ActionUp)
	if r.Snake().Direction() != core.DirRight {
		t.Error("Steering should be ignored before the round starts")
	}
	r.Apply(core.ActionSize2)
	if r.Size() != 25 || r.SizeIndex() != 1 {
		t.Errorf("Expected size 25 after key 2, got %d", r.Size())
	}
	r.Apply(core.ActionSize1)
	if r.Size() != 20 || r.SizeIndex() != 0 {
		t.Errorf("Expected size 20 after key 1, got %d", r.Size())
	}
	r.Apply(core.ActionRestart)
	if r.Status() != StatusReady {
		t.Error("Restart should be ignored in ready")
	}
	r.Apply(core.ActionConfirm)
	if r.Status() != StatusAction {
		t.Fatalf("Expected action after Enter, got %v", r.Status())
	}

	// Action: size keys are ignored, steering and pause work.
	r.Apply(core.ActionSize3)
	if r.Size() != 20 {
		t.Error("Field size should not change during play")
	}
	r.Apply(core.ActionUp)
	if r.Snake().Direction() != core.DirUp {
		t.Errorf("Expected direction up, got %v", r.Snake().Direction())
	}
	r.Apply(core.ActionPause)
	if !r.Paused() {
		t.Error("Expected paused")
	}
	r.Apply(core.ActionLeft)
	if r.Snake().Direction() != core.DirUp {
		t.Error("Steering should be ignored while paused")
	}
	r.Apply(core.ActionPause)

	// Over: only restart works.
	for i := 0; i < 50 && r.Status() == StatusAction; i++ {
		r.Step()
	}
	if r.Status() != StatusOver {
		t.Fatalf("Expected over, got %v", r.Status())
	}
	r.Apply(core.ActionConfirm)
	if r.Status() != StatusOver {
		t.Error("Enter should be ignored after game over")
	}
	r.Apply(core.ActionRestart)
	if r.Status() != StatusReady {
		t.Errorf("Expected ready after restart, got %v", r.Status())
	}
	if r.Size() != 20 {
		t.Errorf("Restart should keep the field size, got %d", r.Size())
	}
	if r.Apples() != 0 || r.SpeedTier() != 0 || r.Snake().Len() != 3 {
		t.Error("Restart should reset counters and snake")
	}
}

func TestSelectSize(t *testing.T) {
	r := newTestRound(t, config.DefaultSnakeConfig())
	if r.Size() != 20 {
		t.Fatalf("Expected default size 20, got %d", r.Size())
	}

	if err := r.SelectSize(2); err != nil {
		t.Fatalf("SelectSize: %v", err)
	}
	if r.Size() != 30 || r.Snake().Head() != core.Pt(16, 15) {
		t.Errorf("Expected 30x30 with head at (16,15), got %d and %v", r.Size(), r.Snake().Head())
	}

	if err := r.SelectSize(7); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Expected ErrInvalidSize, got %v", err)
	}

	r.Start()
	if err := r.SelectSize(0); !errors.Is(err, ErrNotReady) {
		t.Errorf("Expected ErrNotReady, got %v", err)
	}
}

func TestRestartOnlyWhenOver(t *testing.T) {
	r := newTestRound(t, testConfig())
	if r.Restart() {
		t.Error("Restart should fail in ready")
	}
	r.Start()
	if r.Restart() {
		t.Error("Restart should fail during play")
	}
	if r.Start() {
		t.Error("Start should fail during play")
	}
}

func TestFieldClearedIsWin(t *testing.T) {
	cfg := testConfig()
	cfg.Field.Sizes = []int{5}
	cfg.Snake.InitialLength = 2
	cfg.Apple.Delay = config.DefaultSnakeConfig().Apple.Delay
	r := newTestRound(t, cfg)
	r.Start()

	// Snake is (1,2)->(2,2) heading right. Leave only the next cell free
	// and put an apple on it.
	for _, p := range r.Field().FreeCells() {
		if p != core.Pt(3, 2) {
			r.Field().MarkOccupied(p)
		}
	}
	if err := r.Field().PlaceApple(core.Pt(3, 2)); err != nil {
		t.Fatalf("PlaceApple: %v", err)
	}

	if st := r.Step(); st != StatusOver {
		t.Fatalf("Expected over, got %v", st)
	}
	if !r.Won() {
		t.Error("Expected a full field to count as a win")
	}
	if r.Apples() != 1 || r.Snake().Len() != 3 {
		t.Errorf("Expected the last apple eaten with length 3, got %d apples, length %d", r.Apples(), r.Snake().Len())
	}

	r.Restart()
	if r.Won() || r.Status() != StatusReady {
		t.Error("Restart should clear the win")
	}
}

func TestTooSmall(t *testing.T) {
	r := newTestRound(t, testConfig())

	r.SetScreenSize(40, 23)
	if r.TooSmall() {
		t.Error("40x23 should fit a 20x20 field")
	}
	r.SetScreenSize(39, 23)
	if !r.TooSmall() {
		t.Error("39 columns should be too narrow")
	}
	r.SetScreenSize(40, 22)
	if !r.TooSmall() {
		t.Error("22 rows should be too short")
	}
}

func TestStartTierFromConfig(t *testing.T) {
	cfg := testConfig()
	config.ApplySnakePreset(&cfg, config.DifficultyHard)
	r := newTestRound(t, cfg)

	if r.SpeedTier() != 10 {
		t.Errorf("Expected hard to start at tier 10, got %d", r.SpeedTier())
	}
	if r.Interval() != 110*time.Millisecond {
		t.Errorf("Expected 110ms, got %v", r.Interval())
	}
}
