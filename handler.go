package castsvg

import (
	"image/color"
	"log/slog"

	"github.com/danielgatis/go-ansicode"
)

// The decoder drives this handler with one callback per terminal action.
// Replaying a recording only needs the printable path, the basic C0
// controls, cursor movement, erase commands, save/restore, and SGR;
// everything else is absorbed as a no-op with a debug note so malformed or
// fancy casts still play back.

// ApplicationCommandReceived discards APC payloads.
func (t *Terminal) ApplicationCommandReceived(data []byte) {
	slog.Debug("ignoring APC sequence", "len", len(data))
}

// Backspace moves the cursor one column left, stopping at column 0.
func (t *Terminal) Backspace() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cursor.Col > 0 {
		t.cursor.Col--
	}
}

// Bell ignores bell characters.
func (t *Terminal) Bell() {}

// CarriageReturn moves the cursor to column 0 of the current row.
func (t *Terminal) CarriageReturn() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Col = 0
}

// ClearLine clears part of the current row: right of the cursor, left of the
// cursor (inclusive), or the entire row.
func (t *Terminal) ClearLine(mode ansicode.LineClearMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch mode {
	case ansicode.LineClearModeRight:
		t.grid.ClearRowRange(t.cursor.Row, t.cursor.Col, t.cols)
	case ansicode.LineClearModeLeft:
		t.grid.ClearRowRange(t.cursor.Row, 0, t.cursor.Col+1)
	case ansicode.LineClearModeAll:
		t.grid.ClearRow(t.cursor.Row)
	}
}

// ClearScreen clears a region of the screen: cursor to end, beginning to
// cursor (inclusive), or everything. Clearing saved lines is ignored since
// there is no scrollback.
func (t *Terminal) ClearScreen(mode ansicode.ClearMode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch mode {
	case ansicode.ClearModeBelow:
		t.grid.ClearRowRange(t.cursor.Row, t.cursor.Col, t.cols)
		for row := t.cursor.Row + 1; row < t.rows; row++ {
			t.grid.ClearRow(row)
		}
	case ansicode.ClearModeAbove:
		for row := 0; row < t.cursor.Row; row++ {
			t.grid.ClearRow(row)
		}
		t.grid.ClearRowRange(t.cursor.Row, 0, t.cursor.Col+1)
	case ansicode.ClearModeAll:
		t.grid.ClearAll()
	default:
		slog.Debug("ignoring clear screen mode", "mode", mode)
	}
}

// ClearTabs is not supported; tab stops are fixed every 8 columns.
func (t *Terminal) ClearTabs(mode ansicode.TabulationClearMode) {
	slog.Debug("ignoring TBC", "mode", mode)
}

// ClipboardLoad discards clipboard queries; there is nothing to respond to.
func (t *Terminal) ClipboardLoad(clipboard byte, terminator string) {
	slog.Debug("ignoring clipboard load", "clipboard", clipboard)
}

// ClipboardStore discards clipboard writes.
func (t *Terminal) ClipboardStore(clipboard byte, data []byte) {
	slog.Debug("ignoring clipboard store", "clipboard", clipboard)
}

// ConfigureCharset is not supported; characters are written verbatim.
func (t *Terminal) ConfigureCharset(index ansicode.CharsetIndex, charset ansicode.Charset) {
	slog.Debug("ignoring charset configuration", "index", index, "charset", charset)
}

// Decaln is not supported.
func (t *Terminal) Decaln() {
	slog.Debug("ignoring DECALN")
}

// DeleteChars is not supported; DCH sequences are ignored.
func (t *Terminal) DeleteChars(n int) {
	slog.Debug("ignoring DCH", "n", n)
}

// DeleteLines is not supported; DL sequences are ignored.
func (t *Terminal) DeleteLines(n int) {
	slog.Debug("ignoring DL", "n", n)
}

// DeviceStatus discards status queries; there is no PTY to answer.
func (t *Terminal) DeviceStatus(n int) {
	slog.Debug("ignoring DSR", "n", n)
}

// EraseChars is not supported; ECH sequences are ignored.
func (t *Terminal) EraseChars(n int) {
	slog.Debug("ignoring ECH", "n", n)
}

// Goto moves the cursor to (row, col), clamped to the grid.
func (t *Terminal) Goto(row, col int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Row = clamp(row, 0, t.rows-1)
	t.cursor.Col = clamp(col, 0, t.cols-1)
}

// GotoCol is not supported; CHA sequences are ignored.
func (t *Terminal) GotoCol(col int) {
	slog.Debug("ignoring CHA", "col", col)
}

// GotoLine is not supported; VPA sequences are ignored.
func (t *Terminal) GotoLine(row int) {
	slog.Debug("ignoring VPA", "row", row)
}

// HorizontalTabSet is not supported; tab stops are fixed every 8 columns.
func (t *Terminal) HorizontalTabSet() {
	slog.Debug("ignoring HTS")
}

// IdentifyTerminal discards identification queries.
func (t *Terminal) IdentifyTerminal(b byte) {
	slog.Debug("ignoring DA", "byte", b)
}

// Input writes a printable character at the cursor using the current pen and
// advances one column. A cursor resting past the last column wraps to the
// start of the next row first; overflowing the last row scrolls the grid up.
func (t *Terminal) Input(r rune) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.wrapIfNeeded()

	if cell := t.grid.Cell(t.cursor.Row, t.cursor.Col); cell != nil {
		cell.Char = r
		cell.Fg = t.pen.Fg
		cell.Bg = t.pen.Bg
		cell.Flags = t.pen.Flags
	}

	t.cursor.Col++
}

// InsertBlank is not supported; ICH sequences are ignored.
func (t *Terminal) InsertBlank(n int) {
	slog.Debug("ignoring ICH", "n", n)
}

// InsertBlankLines is not supported; IL sequences are ignored.
func (t *Terminal) InsertBlankLines(n int) {
	slog.Debug("ignoring IL", "n", n)
}

// LineFeed moves the cursor to the start of the next row, scrolling the grid
// up when it runs off the bottom. Recorded casts rely on newline-mode line
// feeds, so the column resets alongside the row.
func (t *Terminal) LineFeed() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Col = 0
	t.cursor.Row++
	t.scrollIfNeeded()
}

// MoveBackward moves the cursor left n columns, stopping at column 0.
func (t *Terminal) MoveBackward(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Col = clamp(t.cursor.Col-n, 0, t.cols-1)
}

// MoveBackwardTabs is not supported; CBT sequences are ignored.
func (t *Terminal) MoveBackwardTabs(n int) {
	slog.Debug("ignoring CBT", "n", n)
}

// MoveDown moves the cursor down n rows, stopping at the last row.
func (t *Terminal) MoveDown(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Row = clamp(t.cursor.Row+n, 0, t.rows-1)
}

// MoveDownCr is not supported; CNL sequences are ignored.
func (t *Terminal) MoveDownCr(n int) {
	slog.Debug("ignoring CNL", "n", n)
}

// MoveForward moves the cursor right n columns, stopping at the last column.
func (t *Terminal) MoveForward(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Col = clamp(t.cursor.Col+n, 0, t.cols-1)
}

// MoveForwardTabs is not supported; CHT sequences are ignored.
func (t *Terminal) MoveForwardTabs(n int) {
	slog.Debug("ignoring CHT", "n", n)
}

// MoveUp moves the cursor up n rows, stopping at row 0.
func (t *Terminal) MoveUp(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cursor.Row = clamp(t.cursor.Row-n, 0, t.rows-1)
}

// MoveUpCr is not supported; CPL sequences are ignored.
func (t *Terminal) MoveUpCr(n int) {
	slog.Debug("ignoring CPL", "n", n)
}

// PopKeyboardMode is not supported.
func (t *Terminal) PopKeyboardMode(n int) {
	slog.Debug("ignoring keyboard mode pop", "n", n)
}

// PopTitle is not supported; title operations are discarded.
func (t *Terminal) PopTitle() {
	slog.Debug("ignoring title pop")
}

// PrivacyMessageReceived discards PM payloads.
func (t *Terminal) PrivacyMessageReceived(data []byte) {
	slog.Debug("ignoring PM sequence", "len", len(data))
}

// PushKeyboardMode is not supported.
func (t *Terminal) PushKeyboardMode(mode ansicode.KeyboardMode) {
	slog.Debug("ignoring keyboard mode push", "mode", mode)
}

// PushTitle is not supported; title operations are discarded.
func (t *Terminal) PushTitle() {
	slog.Debug("ignoring title push")
}

// ReportKeyboardMode discards keyboard mode queries.
func (t *Terminal) ReportKeyboardMode() {
	slog.Debug("ignoring keyboard mode report")
}

// ReportModifyOtherKeys discards modifyOtherKeys queries.
func (t *Terminal) ReportModifyOtherKeys() {
	slog.Debug("ignoring modifyOtherKeys report")
}

// ResetColor is not supported; the palette is fixed.
func (t *Terminal) ResetColor(i int) {
	slog.Debug("ignoring palette color reset", "index", i)
}

// ResetState is not supported; RIS sequences are discarded like other
// ESC dispatches.
func (t *Terminal) ResetState() {
	slog.Debug("ignoring RIS")
}

// RestoreCursorPosition restores the cursor from the saved slot.
// A restore without a prior save is a no-op.
func (t *Terminal) RestoreCursorPosition() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.savedCursor != nil {
		t.cursor = *t.savedCursor
	}
}

// ReverseIndex is not supported; RI sequences are ignored.
func (t *Terminal) ReverseIndex() {
	slog.Debug("ignoring RI")
}

// SaveCursorPosition saves the cursor position into the single saved slot.
func (t *Terminal) SaveCursorPosition() {
	t.mu.Lock()
	defer t.mu.Unlock()

	saved := t.cursor
	t.savedCursor = &saved
}

// ScrollDown is not supported; SD sequences are ignored.
func (t *Terminal) ScrollDown(n int) {
	slog.Debug("ignoring SD", "n", n)
}

// ScrollUp is not supported as an explicit command; the grid only scrolls
// when the cursor runs off the bottom.
func (t *Terminal) ScrollUp(n int) {
	slog.Debug("ignoring SU", "n", n)
}

// SetActiveCharset is not supported.
func (t *Terminal) SetActiveCharset(n int) {
	slog.Debug("ignoring active charset", "n", n)
}

// SetColor is not supported; the palette is fixed.
func (t *Terminal) SetColor(index int, c color.Color) {
	slog.Debug("ignoring palette color set", "index", index)
}

// SetCursorStyle is not supported; the cursor is never rendered.
func (t *Terminal) SetCursorStyle(style ansicode.CursorStyle) {
	slog.Debug("ignoring cursor style", "style", style)
}

// SetDynamicColor discards dynamic color queries.
func (t *Terminal) SetDynamicColor(prefix string, index int, terminator string) {
	slog.Debug("ignoring dynamic color", "prefix", prefix, "index", index)
}

// SetHyperlink is not supported; OSC 8 payloads are discarded.
func (t *Terminal) SetHyperlink(hyperlink *ansicode.Hyperlink) {
	slog.Debug("ignoring hyperlink")
}

// SetKeyboardMode is not supported.
func (t *Terminal) SetKeyboardMode(mode ansicode.KeyboardMode, behavior ansicode.KeyboardModeBehavior) {
	slog.Debug("ignoring keyboard mode", "mode", mode)
}

// SetKeypadApplicationMode is not supported.
func (t *Terminal) SetKeypadApplicationMode() {
	slog.Debug("ignoring keypad application mode")
}

// SetMode is not supported; private and ANSI modes are ignored.
func (t *Terminal) SetMode(mode ansicode.TerminalMode) {
	slog.Debug("ignoring set mode", "mode", mode)
}

// SetModifyOtherKeys is not supported.
func (t *Terminal) SetModifyOtherKeys(modify ansicode.ModifyOtherKeys) {
	slog.Debug("ignoring modifyOtherKeys", "value", modify)
}

// SetScrollingRegion is not supported; the whole screen always scrolls.
func (t *Terminal) SetScrollingRegion(top, bottom int) {
	slog.Debug("ignoring DECSTBM", "top", top, "bottom", bottom)
}

// SetTerminalCharAttribute applies an SGR attribute to the pen. Colors are
// resolved to concrete RGB immediately: standard foregrounds pick the bright
// variant when bold is already set, backgrounds never brighten, and unknown
// attributes leave the pen untouched.
func (t *Terminal) SetTerminalCharAttribute(attr ansicode.TerminalCharAttribute) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch attr.Attr {
	case ansicode.CharAttributeReset:
		t.pen = NewPen()

	case ansicode.CharAttributeBold:
		t.pen.SetFlag(CellFlagBold)

	case ansicode.CharAttributeItalic:
		t.pen.SetFlag(CellFlagItalic)

	case ansicode.CharAttributeUnderline:
		t.pen.SetFlag(CellFlagUnderline)

	case ansicode.CharAttributeCancelBoldDim:
		t.pen.ClearFlag(CellFlagBold)

	case ansicode.CharAttributeCancelItalic:
		t.pen.ClearFlag(CellFlagItalic)

	case ansicode.CharAttributeCancelUnderline:
		t.pen.ClearFlag(CellFlagUnderline)

	case ansicode.CharAttributeForeground:
		t.pen.Fg = t.attrColor(attr, true)

	case ansicode.CharAttributeBackground:
		t.pen.Bg = t.attrColor(attr, false)

	default:
		slog.Debug("ignoring SGR attribute", "attr", attr.Attr)
	}
}

// attrColor resolves the color carried by an SGR attribute to concrete RGB.
func (t *Terminal) attrColor(attr ansicode.TerminalCharAttribute, fg bool) color.RGBA {
	switch {
	case attr.RGBColor != nil:
		return color.RGBA{
			R: attr.RGBColor.R,
			G: attr.RGBColor.G,
			B: attr.RGBColor.B,
			A: 255,
		}

	case attr.IndexedColor != nil:
		return indexedColor(int(attr.IndexedColor.Index))

	case attr.NamedColor != nil:
		return t.namedColor(int(*attr.NamedColor), fg)
	}

	if fg {
		return DefaultForeground
	}
	return DefaultBackground
}

// namedColor resolves a named color index. Standard colors 0-7 brighten for
// a bold foreground pen; 8-15 are always bright; the semantic defaults map
// to the fixed default colors.
func (t *Terminal) namedColor(name int, fg bool) color.RGBA {
	switch {
	case name >= 0 && name < 8:
		return ansiColor(name, fg && t.pen.HasFlag(CellFlagBold))
	case name >= 8 && name < 16:
		return ansiColor(name-8, true)
	case name == namedColorForeground:
		return DefaultForeground
	case name == namedColorBackground:
		return DefaultBackground
	default:
		if fg {
			return DefaultForeground
		}
		return DefaultBackground
	}
}

// StartOfStringReceived discards SOS payloads.
func (t *Terminal) StartOfStringReceived(data []byte) {
	slog.Debug("ignoring SOS sequence", "len", len(data))
}

// SetTitle discards window title changes.
func (t *Terminal) SetTitle(title string) {
	slog.Debug("ignoring title", "title", title)
}

// Substitute is not supported; SUB characters are ignored.
func (t *Terminal) Substitute() {
	slog.Debug("ignoring SUB")
}

// Tab moves the cursor right to the next n tab stops, stopping at the last
// column. Stops sit every 8 columns.
func (t *Terminal) Tab(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := 0; i < n; i++ {
		t.cursor.Col = t.grid.NextTabStop(t.cursor.Col)
	}
}

// TextAreaSizeChars discards size queries.
func (t *Terminal) TextAreaSizeChars() {
	slog.Debug("ignoring text area size query")
}

// TextAreaSizePixels discards pixel size queries.
func (t *Terminal) TextAreaSizePixels() {
	slog.Debug("ignoring pixel size query")
}

// UnsetKeypadApplicationMode is not supported.
func (t *Terminal) UnsetKeypadApplicationMode() {
	slog.Debug("ignoring keypad numeric mode")
}

// UnsetMode is not supported; private and ANSI modes are ignored.
func (t *Terminal) UnsetMode(mode ansicode.TerminalMode) {
	slog.Debug("ignoring unset mode", "mode", mode)
}

// SetWorkingDirectory discards OSC 7 working directory reports.
func (t *Terminal) SetWorkingDirectory(uri string) {
	slog.Debug("ignoring working directory", "uri", uri)
}

// CellSizePixels discards cell size queries.
func (t *Terminal) CellSizePixels() {
	slog.Debug("ignoring cell size query")
}

// SixelReceived discards sixel image data.
func (t *Terminal) SixelReceived(params [][]uint16, data []byte) {
	slog.Debug("ignoring sixel data", "len", len(data))
}
