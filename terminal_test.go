package castsvg

import (
	"image/color"
	"testing"
)

func TestNewTerminal(t *testing.T) {
	term := New()

	if term.Rows() != 24 {
		t.Errorf("expected 24 rows, got %d", term.Rows())
	}
	if term.Cols() != 80 {
		t.Errorf("expected 80 cols, got %d", term.Cols())
	}
}

func TestTerminalWithSize(t *testing.T) {
	term := New(WithSize(2, 10))

	if term.Rows() != 2 {
		t.Errorf("expected 2 rows, got %d", term.Rows())
	}
	if term.Cols() != 10 {
		t.Errorf("expected 10 cols, got %d", term.Cols())
	}
}

func TestTerminalWrite(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("Hello")

	if got := term.Snapshot().LineContent(0); got != "Hello" {
		t.Errorf("expected 'Hello', got %q", got)
	}

	row, col := term.CursorPos()
	if row != 0 || col != 5 {
		t.Errorf("expected cursor at (0, 5), got (%d, %d)", row, col)
	}
}

func TestTerminalNewline(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("hi\nworld")

	frame := term.Snapshot()
	if got := frame.LineContent(0); got != "hi" {
		t.Errorf("expected 'hi', got %q", got)
	}
	if got := frame.LineContent(1); got != "world" {
		t.Errorf("expected 'world', got %q", got)
	}
}

func TestTerminalCarriageReturn(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("abc\rX")

	if got := term.Snapshot().LineContent(0); got != "Xbc" {
		t.Errorf("expected 'Xbc', got %q", got)
	}
}

func TestTerminalWrapAtLastColumn(t *testing.T) {
	term := New(WithSize(2, 3))

	term.WriteString("abc")

	// The cursor may rest at the one-past-end sentinel until the next write.
	row, col := term.CursorPos()
	if row != 0 || col != 3 {
		t.Errorf("expected cursor at (0, 3), got (%d, %d)", row, col)
	}

	term.WriteString("d")

	frame := term.Snapshot()
	if got := frame.LineContent(0); got != "abc" {
		t.Errorf("expected 'abc', got %q", got)
	}
	if got := frame.LineContent(1); got != "d" {
		t.Errorf("expected 'd', got %q", got)
	}

	row, col = term.CursorPos()
	if row != 1 || col != 1 {
		t.Errorf("expected cursor at (1, 1), got (%d, %d)", row, col)
	}
}

func TestTerminalScroll(t *testing.T) {
	term := New(WithSize(2, 3))

	term.WriteString("abc\ndef\nghi")

	frame := term.Snapshot()
	if got := frame.LineContent(0); got != "def" {
		t.Errorf("expected 'def', got %q", got)
	}
	if got := frame.LineContent(1); got != "ghi" {
		t.Errorf("expected 'ghi', got %q", got)
	}

	row, col := term.CursorPos()
	if row != 1 || col != 3 {
		t.Errorf("expected cursor at (1, 3), got (%d, %d)", row, col)
	}
}

func TestTerminalScrollOnWrapAtLastRow(t *testing.T) {
	term := New(WithSize(2, 3))

	term.WriteString("abc\nxyz")
	term.WriteString("Q")

	frame := term.Snapshot()
	if got := frame.LineContent(0); got != "xyz" {
		t.Errorf("expected top row lost and 'xyz' at row 0, got %q", got)
	}
	if got := frame.LineContent(1); got != "Q" {
		t.Errorf("expected 'Q' at row 1, got %q", got)
	}

	row, _ := term.CursorPos()
	if row != 1 {
		t.Errorf("expected cursor to stay on the last row, got %d", row)
	}
}

func TestTerminalTab(t *testing.T) {
	term := New(WithSize(2, 20))

	term.WriteString("\tX")

	if cell := term.Cell(0, 8); cell.Char != 'X' {
		t.Errorf("expected 'X' at column 8, got '%c'", cell.Char)
	}
}

func TestTerminalTabClampsToLastColumn(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("\t\t\t\t")

	_, col := term.CursorPos()
	if col != 9 {
		t.Errorf("expected cursor at last column 9, got %d", col)
	}
}

func TestTerminalBackspace(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("ab\x08X")

	if got := term.Snapshot().LineContent(0); got != "aX" {
		t.Errorf("expected 'aX', got %q", got)
	}

	term.WriteString("\x08\x08\x08\x08\x08")
	_, col := term.CursorPos()
	if col != 0 {
		t.Errorf("expected backspace to stop at column 0, got %d", col)
	}
}

func TestTerminalCursorPosition(t *testing.T) {
	term := New(WithSize(10, 20))

	term.WriteString("\x1b[5;7H")
	row, col := term.CursorPos()
	if row != 4 || col != 6 {
		t.Errorf("expected cursor at (4, 6), got (%d, %d)", row, col)
	}

	term.WriteString("\x1b[H")
	row, col = term.CursorPos()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor at origin, got (%d, %d)", row, col)
	}

	term.WriteString("\x1b[99;99H")
	row, col = term.CursorPos()
	if row != 9 || col != 19 {
		t.Errorf("expected cursor clamped to (9, 19), got (%d, %d)", row, col)
	}
}

func TestTerminalCursorMoves(t *testing.T) {
	term := New(WithSize(10, 20))

	term.WriteString("\x1b[5;10H\x1b[2A")
	row, col := term.CursorPos()
	if row != 2 || col != 9 {
		t.Errorf("expected (2, 9) after cursor up, got (%d, %d)", row, col)
	}

	term.WriteString("\x1b[B\x1b[3C\x1b[D")
	row, col = term.CursorPos()
	if row != 3 || col != 11 {
		t.Errorf("expected (3, 11), got (%d, %d)", row, col)
	}

	// Moves saturate at the grid edges.
	term.WriteString("\x1b[99A\x1b[99D")
	row, col = term.CursorPos()
	if row != 0 || col != 0 {
		t.Errorf("expected saturation at (0, 0), got (%d, %d)", row, col)
	}

	term.WriteString("\x1b[99B\x1b[99C")
	row, col = term.CursorPos()
	if row != 9 || col != 19 {
		t.Errorf("expected saturation at (9, 19), got (%d, %d)", row, col)
	}
}

func TestTerminalSaveRestoreCursor(t *testing.T) {
	term := New(WithSize(10, 20))

	term.WriteString("\x1b[3;4H\x1b[s\x1b[8;9H\x1b[u")
	row, col := term.CursorPos()
	if row != 2 || col != 3 {
		t.Errorf("expected restored cursor (2, 3), got (%d, %d)", row, col)
	}
}

func TestTerminalRestoreWithoutSave(t *testing.T) {
	term := New(WithSize(10, 20))

	term.WriteString("\x1b[3;4H\x1b[u")
	row, col := term.CursorPos()
	if row != 2 || col != 3 {
		t.Errorf("expected restore without save to be a no-op, got (%d, %d)", row, col)
	}
}

func TestTerminalClearScreenEqualsFreshGrid(t *testing.T) {
	term := New(WithSize(4, 10))

	term.WriteString("\x1b[31mred\nlines\neverywhere")
	term.WriteString("\x1b[2J")

	if !term.Snapshot().Equal(NewGrid(4, 10)) {
		t.Error("expected ESC[2J to produce a grid equal to a fresh one")
	}
}

func TestTerminalClearScreenBelow(t *testing.T) {
	term := New(WithSize(3, 5))

	term.WriteString("aaaaa\nbbbbb\nccccc")
	term.WriteString("\x1b[2;3H\x1b[0J")

	frame := term.Snapshot()
	if got := frame.LineContent(0); got != "aaaaa" {
		t.Errorf("expected row 0 untouched, got %q", got)
	}
	if got := frame.LineContent(1); got != "bb" {
		t.Errorf("expected 'bb', got %q", got)
	}
	if got := frame.LineContent(2); got != "" {
		t.Errorf("expected row 2 cleared, got %q", got)
	}
}

func TestTerminalClearScreenAbove(t *testing.T) {
	term := New(WithSize(3, 5))

	term.WriteString("aaaaa\nbbbbb\nccccc")
	term.WriteString("\x1b[2;3H\x1b[1J")

	frame := term.Snapshot()
	if got := frame.LineContent(0); got != "" {
		t.Errorf("expected row 0 cleared, got %q", got)
	}
	if got := frame.LineContent(1); got != "   bb" {
		t.Errorf("expected '   bb', got %q", got)
	}
	if got := frame.LineContent(2); got != "ccccc" {
		t.Errorf("expected row 2 untouched, got %q", got)
	}
}

func TestTerminalClearLine(t *testing.T) {
	term := New(WithSize(2, 5))

	term.WriteString("aaaaa\x1b[1;3H\x1b[K")
	if got := term.Snapshot().LineContent(0); got != "aa" {
		t.Errorf("expected 'aa' after EL 0, got %q", got)
	}

	term.WriteString("\x1b[2;1Hbbbbb\x1b[2;3H\x1b[1K")
	if got := term.Snapshot().LineContent(1); got != "   bb" {
		t.Errorf("expected '   bb' after EL 1, got %q", got)
	}

	term.WriteString("\x1b[2K")
	if got := term.Snapshot().LineContent(1); got != "" {
		t.Errorf("expected empty row after EL 2, got %q", got)
	}
}

func TestTerminalSGRBoldColor(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("\x1b[1;31mX\x1b[0mY")

	x := term.Cell(0, 0)
	if x.Char != 'X' {
		t.Fatalf("expected 'X', got '%c'", x.Char)
	}
	if x.Fg != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("expected bright red (bold brightens the foreground), got %v", x.Fg)
	}
	if !x.HasFlag(CellFlagBold) {
		t.Error("expected bold flag")
	}

	y := term.Cell(0, 1)
	if y.Fg != DefaultForeground {
		t.Errorf("expected default foreground after reset, got %v", y.Fg)
	}
	if y.Flags != 0 {
		t.Error("expected no flags after reset")
	}
}

func TestTerminalSGRColorThenBold(t *testing.T) {
	term := New(WithSize(2, 10))

	// Bold set after the color does not retroactively brighten it.
	term.WriteString("\x1b[31m\x1b[1mX")

	x := term.Cell(0, 0)
	if x.Fg != (color.RGBA{205, 0, 0, 255}) {
		t.Errorf("expected standard red, got %v", x.Fg)
	}
	if !x.HasFlag(CellFlagBold) {
		t.Error("expected bold flag")
	}
}

func TestTerminalSGRBackgroundNeverBright(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("\x1b[1;41mX")

	if got := term.Cell(0, 0).Bg; got != (color.RGBA{205, 0, 0, 255}) {
		t.Errorf("expected standard red background under bold, got %v", got)
	}
}

func TestTerminalSGRBrightRange(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("\x1b[92mX\x1b[101mY")

	if got := term.Cell(0, 0).Fg; got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("expected bright green foreground, got %v", got)
	}
	if got := term.Cell(0, 1).Bg; got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("expected bright red background, got %v", got)
	}
}

func TestTerminalSGRStyleBits(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("\x1b[3;4mX\x1b[23mY\x1b[24mZ")

	x := term.Cell(0, 0)
	if !x.HasFlag(CellFlagItalic) || !x.HasFlag(CellFlagUnderline) {
		t.Error("expected italic and underline flags")
	}

	y := term.Cell(0, 1)
	if y.HasFlag(CellFlagItalic) {
		t.Error("expected italic cleared by SGR 23")
	}
	if !y.HasFlag(CellFlagUnderline) {
		t.Error("expected underline to survive SGR 23")
	}

	z := term.Cell(0, 2)
	if z.HasFlag(CellFlagUnderline) {
		t.Error("expected underline cleared by SGR 24")
	}
}

func TestTerminalSGRDefaults(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("\x1b[31;41m\x1b[39mX\x1b[49mY")

	x := term.Cell(0, 0)
	if x.Fg != DefaultForeground {
		t.Errorf("expected SGR 39 to restore the default foreground, got %v", x.Fg)
	}
	if x.Bg != (color.RGBA{205, 0, 0, 255}) {
		t.Errorf("expected background untouched by SGR 39, got %v", x.Bg)
	}

	y := term.Cell(0, 1)
	if y.Bg != DefaultBackground {
		t.Errorf("expected SGR 49 to restore the default background, got %v", y.Bg)
	}
}

func TestTerminalSGR256Color(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("\x1b[38;5;196mX\x1b[0m\x1b[38;5;8mY\x1b[0m\x1b[48;5;232mZ")

	if got := term.Cell(0, 0).Fg; got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("expected cube color 196 = (255,0,0), got %v", got)
	}
	if got := term.Cell(0, 1).Fg; got != (color.RGBA{127, 127, 127, 255}) {
		t.Errorf("expected bright black for index 8, got %v", got)
	}
	if got := term.Cell(0, 2).Bg; got != (color.RGBA{8, 8, 8, 255}) {
		t.Errorf("expected grayscale 232 = (8,8,8), got %v", got)
	}
}

func TestTerminalSGRTrueColor(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("\x1b[38;2;12;34;56mX\x1b[48;2;98;76;54mY")

	if got := term.Cell(0, 0).Fg; got != (color.RGBA{12, 34, 56, 255}) {
		t.Errorf("expected direct fg (12,34,56), got %v", got)
	}
	if got := term.Cell(0, 1).Bg; got != (color.RGBA{98, 76, 54, 255}) {
		t.Errorf("expected direct bg (98,76,54), got %v", got)
	}
}

func TestTerminalSGRResetIdempotent(t *testing.T) {
	styled := New(WithSize(2, 10))
	styled.WriteString("\x1b[1;3;4;38;5;99;48;2;1;2;3m\x1b[0mA")

	plain := New(WithSize(2, 10))
	plain.WriteString("\x1b[0mA")

	if !styled.Snapshot().Equal(plain.Snapshot()) {
		t.Error("expected SGR history followed by reset to equal a plain reset")
	}
}

func TestTerminalSGRUnknownCodesSkipped(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("\x1b[31m\x1b[8;73mX")

	if got := term.Cell(0, 0).Fg; got != (color.RGBA{205, 0, 0, 255}) {
		t.Errorf("expected unknown SGR codes to leave the pen untouched, got %v", got)
	}
}

func TestTerminalOSCDiscarded(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("\x1b]0;some title\x07a")

	if got := term.Cell(0, 0).Char; got != 'a' {
		t.Errorf("expected OSC payload to be absorbed, got '%c' at (0,0)", got)
	}
}

func TestTerminalUnknownCSIIgnored(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("ab\x1b[1;1H")
	before := term.Snapshot()

	term.WriteString("\x1b[2L\x1b[3S\x1b[5X\x1b[4d\x1b[7G")

	if !term.Snapshot().Equal(before) {
		t.Error("expected unsupported CSI sequences to leave the grid untouched")
	}
}

func TestTerminalChunkedWritesEquivalent(t *testing.T) {
	input := "plain \x1b[1;32mgreen\x1b[0m and \x1b[38;5;202morange\x1b[0m\nsecond line\twith tab"

	whole := New(WithSize(4, 30))
	whole.WriteString(input)

	chunked := New(WithSize(4, 30))
	for _, b := range []byte(input) {
		chunked.Write([]byte{b})
	}

	if !whole.Snapshot().Equal(chunked.Snapshot()) {
		t.Error("expected byte-at-a-time feeding to match a single write")
	}

	wr, wc := whole.CursorPos()
	cr, cc := chunked.CursorPos()
	if wr != cr || wc != cc {
		t.Errorf("expected equal cursors, got (%d,%d) vs (%d,%d)", wr, wc, cr, cc)
	}
}

func TestTerminalCursorStaysInBounds(t *testing.T) {
	term := New(WithSize(3, 7))

	soup := "abc\x1b[99;99Hdef\x1b[Ag\x08\x08\x08\x08hij\tklm\x1b[999Cnop\n\n\n\n\x1b[2Jqrs"
	term.WriteString(soup)

	row, col := term.CursorPos()
	if row < 0 || row >= 3 {
		t.Errorf("cursor row out of bounds: %d", row)
	}
	if col < 0 || col > 7 {
		t.Errorf("cursor col out of bounds: %d", col)
	}

	frame := term.Snapshot()
	if frame.Rows() != 3 || frame.Cols() != 7 {
		t.Errorf("grid dimensions changed: %dx%d", frame.Rows(), frame.Cols())
	}
}

func TestTerminalIncompleteEscapeAbsorbed(t *testing.T) {
	term := New(WithSize(2, 10))

	term.WriteString("ok\x1b[1;3")

	if got := term.Snapshot().LineContent(0); got != "ok" {
		t.Errorf("expected trailing incomplete escape to be silent, got %q", got)
	}
}

func TestTerminalString(t *testing.T) {
	term := New(WithSize(4, 10))

	term.WriteString("one\ntwo")

	if got := term.String(); got != "one\ntwo" {
		t.Errorf("expected 'one\\ntwo', got %q", got)
	}
}
