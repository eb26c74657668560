package core

// Color is the foreground color of a screen cell. The simulation only picks
// from this fixed palette; how each entry maps to a terminal color is the
// platform renderer's decision.
type Color uint8

// The palette. ColorDefault is the terminal's own foreground.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)
