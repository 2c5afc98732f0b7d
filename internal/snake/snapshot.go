package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Snapshot captures the complete round state for determinism testing and scoring.
type Snapshot struct {
	Tick      uint64
	Size      int
	Status    Status
	Paused    bool
	Won       bool
	Apples    int
	SpeedTier int // Zero-based
	SnakeLen  int
	Head      core.Point
	Dir       core.Direction
	Apple     core.Point
	HasApple  bool
}

// Snapshot returns the current round snapshot.
func (r *Round) Snapshot() Snapshot {
	apple, hasApple := r.field.Apple()
	return Snapshot{
		Tick:      r.tick,
		Size:      r.field.Size(),
		Status:    r.status,
		Paused:    r.paused,
		Won:       r.won,
		Apples:    r.apples,
		SpeedTier: r.speed,
		SnakeLen:  r.snake.Len(),
		Head:      r.snake.Head(),
		Dir:       r.snake.Direction(),
		Apple:     apple,
		HasApple:  hasApple,
	}
}
