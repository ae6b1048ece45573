package castsvg

import "image/color"

// CellFlags is a bitmask of cell rendering attributes.
type CellFlags uint8

const (
	CellFlagBold CellFlags = 1 << iota
	CellFlagItalic
	CellFlagUnderline
)

// Cell stores the character, resolved colors, and formatting attributes for
// one grid position. Colors are concrete 24-bit values: indexed and named SGR
// colors are resolved when the attribute is applied, not at render time.
type Cell struct {
	Char  rune
	Fg    color.RGBA
	Bg    color.RGBA
	Flags CellFlags
}

// NewCell creates a cell initialized with a space character and default colors.
func NewCell() Cell {
	return Cell{
		Char: ' ',
		Fg:   DefaultForeground,
		Bg:   DefaultBackground,
	}
}

// Reset sets the cell back to its default state.
func (c *Cell) Reset() {
	*c = NewCell()
}

// HasFlag returns true if the specified flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool {
	return c.Flags&flag != 0
}

// SetFlag enables the specified flag without affecting others.
func (c *Cell) SetFlag(flag CellFlags) {
	c.Flags |= flag
}

// ClearFlag disables the specified flag without affecting others.
func (c *Cell) ClearFlag(flag CellFlags) {
	c.Flags &^= flag
}
