package core

// Color is a symbolic foreground colour for a screen cell. The platform
// layer decides how each one is drawn.
type Color uint8

// Colours used by the HUD, field and overlays.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorBrightGreen
	ColorGray
	ColorDarkGray
)
