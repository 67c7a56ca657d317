package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorGray
	ColorWhite
	ColorYellow
	ColorOrange
	ColorRed
	ColorMagenta
	ColorCyan
	ColorGreen
	ColorBrightGreen
	ColorBrightWhite
)

// TokenColor picks a color for a token value; bigger tokens run hotter.
func TokenColor(value int) Color {
	switch {
	case value <= 0:
		return ColorGray
	case value <= 2:
		return ColorWhite
	case value <= 4:
		return ColorYellow
	case value <= 8:
		return ColorOrange
	case value <= 16:
		return ColorRed
	case value <= 32:
		return ColorMagenta
	default:
		return ColorCyan
	}
}
