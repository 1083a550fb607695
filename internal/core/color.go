package core

// Color is the foreground color of a screen cell. The terminal front end
// maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota

	// Water, ships and shot markers
	ColorBlue
	ColorCyan
	ColorWhite
	ColorGray
	ColorRed
	ColorOrange

	// Banners and overlays
	ColorGreen
	ColorYellow
	ColorBrightRed
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
)
