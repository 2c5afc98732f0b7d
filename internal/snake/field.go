package snake

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Cell is the state of one grid square.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellBorder
	CellSnake
	CellApple
)

func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellBorder:
		return "border"
	case CellSnake:
		return "snake"
	case CellApple:
		return "apple"
	default:
		return "unknown"
	}
}

var (
	// ErrNoFreeCell is returned when every interior cell is taken.
	ErrNoFreeCell = errors.New("snake: no free cell left on the field")
	// ErrAppleExists is returned when placing an apple while one is on the field.
	ErrAppleExists = errors.New("snake: field already has an apple")
	// ErrCellTaken is returned when placing an apple on a non-empty cell.
	ErrCellTaken = errors.New("snake: cell is not empty")
	// ErrInvalidSize is returned for fields too small to play on.
	ErrInvalidSize = errors.New("snake: invalid field size")
)

// Field is an NxN occupancy grid. The outermost ring is always border and
// at most one cell holds an apple.
type Field struct {
	n        int
	cells    [][]Cell // indexed [x][y]
	apple    core.Point
	hasApple bool
}

// NewField builds a size x size grid, stamps the border ring, then stamps the
// snake's cells. Every snake cell must lie inside the border.
func NewField(size int, s *Snake) (*Field, error) {
	if size < config.MinFieldSize {
		return nil, fmt.Errorf("%w: %d (minimum %d)", ErrInvalidSize, size, config.MinFieldSize)
	}

	f := &Field{n: size}
	f.cells = make([][]Cell, size)
	for x := range f.cells {
		f.cells[x] = make([]Cell, size)
		for y := range f.cells[x] {
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				f.cells[x][y] = CellBorder
			}
		}
	}

	for _, p := range s.body {
		if f.At(p) != CellEmpty {
			return nil, fmt.Errorf("snake: cell (%d, %d) is %s, cannot place snake there", p.X, p.Y, f.At(p))
		}
		f.cells[p.X][p.Y] = CellSnake
	}

	return f, nil
}

// Size returns the side length, border included.
func (f *Field) Size() int {
	return f.n
}

// inBounds reports whether p lies on the grid.
func (f *Field) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < f.n && p.Y >= 0 && p.Y < f.n
}

// At returns the state of cell p. Points off the grid read as border.
func (f *Field) At(p core.Point) Cell {
	if !f.inBounds(p) {
		return CellBorder
	}
	return f.cells[p.X][p.Y]
}

// IsPassable reports whether the head may move onto p.
// Border and snake cells are blocked; empty and apple cells are not.
func (f *Field) IsPassable(p core.Point) bool {
	switch f.At(p) {
	case CellBorder, CellSnake:
		return false
	default:
		return true
	}
}

// MarkOccupied marks p as snake body.
func (f *Field) MarkOccupied(p core.Point) {
	if f.inBounds(p) {
		f.cells[p.X][p.Y] = CellSnake
	}
}

// Clear resets p to empty. Border cells are never cleared.
func (f *Field) Clear(p core.Point) {
	if f.At(p) == CellBorder {
		return
	}
	f.cells[p.X][p.Y] = CellEmpty
}

// PlaceApple records p as the apple and marks its cell.
// Only one apple may exist and it must land on an empty cell.
func (f *Field) PlaceApple(p core.Point) error {
	if f.hasApple {
		return ErrAppleExists
	}
	if f.At(p) != CellEmpty {
		return fmt.Errorf("%w: (%d, %d) is %s", ErrCellTaken, p.X, p.Y, f.At(p))
	}
	f.apple = p
	f.hasApple = true
	f.cells[p.X][p.Y] = CellApple
	return nil
}

// RemoveApple forgets the apple. Its cell is reset to empty unless something
// else has already been written there.
func (f *Field) RemoveApple() {
	if !f.hasApple {
		return
	}
	if f.At(f.apple) == CellApple {
		f.cells[f.apple.X][f.apple.Y] = CellEmpty
	}
	f.hasApple = false
}

// Apple returns the apple's position and whether one is on the field.
func (f *Field) Apple() (core.Point, bool) {
	return f.apple, f.hasApple
}

// FreeCells returns every empty cell in column-major order.
func (f *Field) FreeCells() []core.Point {
	var free []core.Point
	for x := 1; x < f.n-1; x++ {
		for y := 1; y < f.n-1; y++ {
			if f.cells[x][y] == CellEmpty {
				free = append(free, core.Point{X: x, Y: y})
			}
		}
	}
	return free
}

// Full reports whether no empty interior cell is left.
func (f *Field) Full() bool {
	for x := 1; x < f.n-1; x++ {
		for y := 1; y < f.n-1; y++ {
			if f.cells[x][y] == CellEmpty {
				return false
			}
		}
	}
	return true
}

// RandomFreeCell picks uniformly among cells that are neither border,
// snake nor apple. Returns ErrNoFreeCell when the field is full.
func (f *Field) RandomFreeCell(rng *rand.Rand) (core.Point, error) {
	free := f.FreeCells()
	if len(free) == 0 {
		return core.Point{}, ErrNoFreeCell
	}
	return free[rng.Intn(len(free))], nil
}
