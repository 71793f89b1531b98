package models

// Color is the tag a folder carries in the sidebar.
type Color string

const (
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorOrange Color = "orange"
	ColorPink   Color = "pink"
	ColorBlack  Color = "black"
	ColorWhite  Color = "white"
)

// DefaultColor is what a folder gets when no color is picked.
const DefaultColor = ColorBlue

var colors = []Color{
	ColorRed,
	ColorGreen,
	ColorBlue,
	ColorYellow,
	ColorPurple,
	ColorOrange,
	ColorPink,
	ColorBlack,
	ColorWhite,
}

// Colors returns the full palette.
func Colors() []Color {
	out := make([]Color, len(colors))
	copy(out, colors)
	return out
}

// Valid reports whether c is one of the nine palette values.
func (c Color) Valid() bool {
	for _, known := range colors {
		if c == known {
			return true
		}
	}
	return false
}

// ParseColor maps a submitted color string onto the palette. An empty string
// parses to DefaultColor; anything outside the palette is rejected.
func ParseColor(s string) (Color, bool) {
	if s == "" {
		return DefaultColor, true
	}
	c := Color(s)
	return c, c.Valid()
}
