package castsvg

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Theme holds the document colors: background, foreground, and the 16 ANSI
// palette colors. The encoder only paints Bg; per-cell colors are resolved by
// the emulator through its fixed internal tables, so the palette is carried
// for validation and listing but does not recolor cells.
type Theme struct {
	Bg      color.RGBA
	Fg      color.RGBA
	Palette [16]color.RGBA
}

// themePresets maps preset names to their 18-color strings (bg, fg, c0..c15).
var themePresets = map[string]string{
	"asciinema":       "121314,cccccc,000000,dd3c69,4ebf22,ddaf3c,26b0d7,b954e1,54e1b9,d9d9d9,4d4d4d,dd3c69,4ebf22,ddaf3c,26b0d7,b954e1,54e1b9,ffffff",
	"dracula":         "282a36,f8f8f2,21222c,ff5555,50fa7b,f1fa8c,bd93f9,ff79c6,8be9fd,f8f8f2,6272a4,ff6e6e,69ff94,ffffa5,d6acff,ff92df,a4ffff,ffffff",
	"github-dark":     "171b21,eceff4,0e1116,f97583,a2fca2,fabb72,7db4f9,c4a0f5,1f6feb,eceff4,6a737d,bf5a64,7abf7a,bf8f57,608bbf,997dbf,195cbf,b9bbbf",
	"github-light":    "f6f8fa,24292f,ffffff,cf222e,1a7f37,9a6700,0969da,8250df,1f6feb,24292f,57606a,a40e26,2da44e,bf8700,1f6feb,a475f9,1f6feb,8c959f",
	"monokai":         "272822,f8f8f2,272822,f92672,a6e22e,f4bf75,66d9ef,ae81ff,a1efe4,f8f8f2,75715e,f92672,a6e22e,f4bf75,66d9ef,ae81ff,a1efe4,f9f8f5",
	"solarized-dark":  "002b36,839496,073642,dc322f,859900,b58900,268bd2,6c71c4,2aa198,93a1a1,586e75,dc322f,859900,b58900,268bd2,6c71c4,2aa198,fdf6e3",
	"solarized-light": "fdf6e3,657b83,eee8d5,dc322f,859900,b58900,268bd2,6c71c4,2aa198,586e75,93a1a1,dc322f,859900,b58900,268bd2,6c71c4,2aa198,002b36",
}

// ParseTheme parses a comma-separated list of exactly 18 hex colors:
// bg, fg, then the 16 palette colors. Each color is 6 hex digits with an
// optional leading '#'. Any other shape is an error.
func ParseTheme(s string) (Theme, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 18 {
		return Theme{}, fmt.Errorf("theme must have exactly 18 colors (bg, fg, and 16 palette colors), got %d", len(parts))
	}

	var theme Theme
	var err error

	if theme.Bg, err = parseHexColor(parts[0]); err != nil {
		return Theme{}, err
	}
	if theme.Fg, err = parseHexColor(parts[1]); err != nil {
		return Theme{}, err
	}
	for i, part := range parts[2:] {
		if theme.Palette[i], err = parseHexColor(part); err != nil {
			return Theme{}, err
		}
	}

	return theme, nil
}

// NamedTheme resolves a preset name to its theme.
func NamedTheme(name string) (Theme, error) {
	preset, ok := themePresets[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme: %q", name)
	}
	return ParseTheme(preset)
}

// ResolveTheme turns a CLI theme argument into a theme: a string containing a
// comma is parsed as an 18-color list, anything else as a preset name.
func ResolveTheme(arg string) (Theme, error) {
	if strings.Contains(arg, ",") {
		return ParseTheme(arg)
	}
	return NamedTheme(arg)
}

// DefaultTheme returns the asciinema preset.
func DefaultTheme() Theme {
	theme, err := NamedTheme("asciinema")
	if err != nil {
		panic(err)
	}
	return theme
}

// ThemeNames returns the preset names in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themePresets))
	for name := range themePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemePreset returns the 18-color string behind a preset name.
func ThemePreset(name string) (string, bool) {
	preset, ok := themePresets[name]
	return preset, ok
}

// ThemeFromCast converts a header-embedded theme. The palette is 8 or 16
// colon-separated colors; an 8-color palette fills both halves.
func ThemeFromCast(ct *CastTheme) (Theme, error) {
	var theme Theme
	var err error

	if theme.Bg, err = parseHexColor(ct.Bg); err != nil {
		return Theme{}, fmt.Errorf("cast theme bg: %w", err)
	}
	if theme.Fg, err = parseHexColor(ct.Fg); err != nil {
		return Theme{}, fmt.Errorf("cast theme fg: %w", err)
	}

	parts := strings.Split(ct.Palette, ":")
	if len(parts) != 8 && len(parts) != 16 {
		return Theme{}, fmt.Errorf("cast theme palette has %d colors, expected 8 or 16", len(parts))
	}

	for i := range theme.Palette {
		c, err := parseHexColor(parts[i%len(parts)])
		if err != nil {
			return Theme{}, fmt.Errorf("cast theme palette: %w", err)
		}
		theme.Palette[i] = c
	}

	return theme, nil
}
