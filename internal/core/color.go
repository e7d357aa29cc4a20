package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors. Tile colors follow the classic 2048 palette progression.
const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorYellow
	ColorOrange
	ColorRed
	ColorMagenta
	ColorBrightYellow
	ColorGreen
	ColorCyan
	ColorBlue
	ColorBrightWhite
)
