package core

import "fmt"

// Color is a terminal color in "#rrggbb" form.
// The zero value leaves the terminal default in place.
type Color string

// ColorDefault keeps whatever the terminal would draw.
const ColorDefault Color = ""

// RGB builds a Color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// IsDefault reports whether c defers to the terminal palette.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}
