package castsvg

import "image/color"

// Cursor tracks the current write position (0-based). Col may rest at the
// one-past-end sentinel after printing in the last column; wrapping is
// applied just before the next character is written.
type Cursor struct {
	Row int
	Col int
}

// NewCursor creates a cursor at (0, 0).
func NewCursor() Cursor {
	return Cursor{Row: 0, Col: 0}
}

// Pen carries the attributes applied to newly written characters.
// Modified only by SGR (Select Graphic Rendition) sequences.
type Pen struct {
	Fg    color.RGBA
	Bg    color.RGBA
	Flags CellFlags
}

// NewPen creates a pen with default colors and no style flags.
func NewPen() Pen {
	return Pen{
		Fg: DefaultForeground,
		Bg: DefaultBackground,
	}
}

// HasFlag returns true if the specified style flag is set.
func (p *Pen) HasFlag(flag CellFlags) bool {
	return p.Flags&flag != 0
}

// SetFlag enables the specified style flag without affecting others.
func (p *Pen) SetFlag(flag CellFlags) {
	p.Flags |= flag
}

// ClearFlag disables the specified style flag without affecting others.
func (p *Pen) ClearFlag(flag CellFlags) {
	p.Flags &^= flag
}
