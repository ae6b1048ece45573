package castsvg

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// DefaultForeground is the default text color (light gray).
var DefaultForeground = color.RGBA{204, 204, 204, 255}

// DefaultBackground is the default background color (black).
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// ansiColors holds the 8 standard ANSI colors (SGR 30-37 / 40-47).
var ansiColors = [8]color.RGBA{
	{0, 0, 0, 255},       // Black
	{205, 0, 0, 255},     // Red
	{0, 205, 0, 255},     // Green
	{205, 205, 0, 255},   // Yellow
	{0, 0, 238, 255},     // Blue
	{205, 0, 205, 255},   // Magenta
	{0, 205, 205, 255},   // Cyan
	{229, 229, 229, 255}, // White
}

// ansiBrightColors holds the 8 bright ANSI colors (SGR 90-97 / 100-107).
var ansiBrightColors = [8]color.RGBA{
	{127, 127, 127, 255}, // Bright Black (gray)
	{255, 0, 0, 255},     // Bright Red
	{0, 255, 0, 255},     // Bright Green
	{255, 255, 0, 255},   // Bright Yellow
	{92, 92, 255, 255},   // Bright Blue
	{255, 0, 255, 255},   // Bright Magenta
	{0, 255, 255, 255},   // Bright Cyan
	{255, 255, 255, 255}, // Bright White
}

// cubeLevels are the channel values of the 6x6x6 color cube (indices 16-231).
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// Named color indices delivered by the ANSI decoder for semantic colors.
// Values 0-15 are the standard palette; the defaults sit above it.
const (
	namedColorForeground = 256
	namedColorBackground = 257
)

// ansiColor returns one of the 16 standard colors. Index is taken modulo 8.
func ansiColor(index int, bright bool) color.RGBA {
	if bright {
		return ansiBrightColors[index%8]
	}
	return ansiColors[index%8]
}

// indexedColor resolves a 256-color palette index: 0-15 via the ANSI tables
// (bright for 8-15), 16-231 via the color cube, 232-255 via the grayscale ramp.
func indexedColor(n int) color.RGBA {
	switch {
	case n < 0 || n > 255:
		return DefaultForeground
	case n < 8:
		return ansiColors[n]
	case n < 16:
		return ansiBrightColors[n-8]
	case n < 232:
		n -= 16
		return color.RGBA{
			R: cubeLevels[n/36],
			G: cubeLevels[n/6%6],
			B: cubeLevels[n%6],
			A: 255,
		}
	default:
		gray := uint8(8 + 10*(n-232))
		return color.RGBA{gray, gray, gray, 255}
	}
}

// hexColor formats a color as a six-digit lowercase hex string with a leading '#'.
func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// parseHexColor parses "rrggbb" with an optional leading '#'.
func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color: %q", s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
