package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// cellWidth is the number of terminal columns per grid cell. Terminal
// characters are roughly twice as tall as they are wide.
const cellWidth = 2

// Glyphs for each kind of cell, one per terminal column.
var (
	glyphEmpty  = [cellWidth]rune{' ', '·'}
	glyphBorder = [cellWidth]rune{'▒', '▒'}
	glyphSnake  = [cellWidth]rune{'█', '█'}
	glyphApple  = [cellWidth]rune{'(', ')'}
	glyphDead   = [cellWidth]rune{'x', 'x'}
)

// faces maps a heading to the glyphs drawn on the head: eyes on the side
// facing away, mouth on the side facing forward.
var faces = map[core.Direction][cellWidth]rune{
	core.DirRight: {':', '>'},
	core.DirLeft:  {'<', ':'},
	core.DirUp:    {'^', '^'},
	core.DirDown:  {'v', 'v'},
}

// Render draws the round into dst. It only reads state.
func (r *Round) Render(dst *core.Screen) {
	dst.Clear()

	n := r.field.Size()
	offsetX := max((dst.Width()-n*cellWidth)/2, 0)

	r.renderHUD(dst, offsetX)

	if r.TooSmall() {
		w, h := r.requiredScreen()
		renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d - resize or pick a smaller field", w, h))
		return
	}

	r.renderField(dst, offsetX, hudHeight)
	r.renderFace(dst, offsetX, hudHeight)

	switch {
	case r.won:
		renderOverlay(dst, "Field cleared!", fmt.Sprintf("Apples: %d  -  Press Esc to restart", r.apples))
	case r.paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the two status lines and a separator above the field.
func (r *Round) renderHUD(dst *core.Screen, x int) {
	n := r.field.Size()

	switch r.status {
	case StatusReady:
		dst.DrawText(x, 0, fmt.Sprintf("Field size: %dx%d. Press Enter to start", n, n))
		dst.DrawText(x, 1, fmt.Sprintf("Choose field size with keys 1–%d", len(r.cfg.Field.Sizes)))
	case StatusAction, StatusOver:
		dst.DrawText(x, 0, fmt.Sprintf("Apples: %d", r.apples))
		dst.DrawText(x, 1, fmt.Sprintf("Speed: %d / %d", r.speed+1, len(r.intervals)))
		if r.status == StatusOver {
			hint := "Press Esc to restart"
			hx := max(x+n*cellWidth-len(hint), x+14)
			dst.DrawTextColored(hx, 0, hint, core.ColorYellow)
		}
	}

	for i := 0; i < n*cellWidth; i++ {
		dst.SetColored(x+i, 2, '─', core.ColorDarkGray)
	}
}

// renderField draws every grid cell.
func (r *Round) renderField(dst *core.Screen, ox, oy int) {
	n := r.field.Size()
	snakeColor := core.ColorBrightGreen
	if r.status == StatusOver {
		snakeColor = core.ColorGray
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			var glyph [cellWidth]rune
			var color core.Color
			switch r.field.At(core.Point{X: x, Y: y}) {
			case CellBorder:
				glyph, color = glyphBorder, core.ColorCyan
			case CellSnake:
				glyph, color = glyphSnake, snakeColor
			case CellApple:
				glyph, color = glyphApple, core.ColorRed
			default:
				glyph, color = glyphEmpty, core.ColorDarkGray
			}
			for i, ch := range glyph {
				dst.SetColored(ox+x*cellWidth+i, oy+y, ch, color)
			}
		}
	}
}

// renderFace draws the head's face for the current heading; crossed-out eyes once the round is over.
func (r *Round) renderFace(dst *core.Screen, ox, oy int) {
	head := r.snake.Head()
	glyph, color := faces[r.snake.Direction()], core.ColorGreen
	if r.status == StatusOver {
		glyph, color = glyphDead, core.ColorGray
	}
	for i, ch := range glyph {
		dst.SetColored(ox+head.X*cellWidth+i, oy+head.Y, ch, color)
	}
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
