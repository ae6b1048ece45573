package castsvg

import (
	"sync"

	"github.com/danielgatis/go-ansicode"
)

// Ensure Terminal implements ansicode.Handler
var _ ansicode.Handler = (*Terminal)(nil)

const (
	// DEFAULT_ROWS is the default number of terminal rows.
	DEFAULT_ROWS = 24
	// DEFAULT_COLS is the default number of terminal columns.
	DEFAULT_COLS = 80
)

// Terminal is a headless emulator tailored to replaying recorded sessions.
// It maintains a single fixed-size grid, a cursor with one saved slot, and
// the current pen. Escape sequences outside that model degrade to no-ops;
// the terminal never reports an error for content.
type Terminal struct {
	mu sync.RWMutex

	rows int
	cols int

	grid        *Grid
	cursor      Cursor
	savedCursor *Cursor
	pen         Pen

	// Internal ANSI decoder
	decoder *ansicode.Decoder
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions.
// Values <= 0 are replaced with defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DEFAULT_ROWS
	}

	if cols <= 0 {
		cols = DEFAULT_COLS
	}

	return func(t *Terminal) {
		t.rows = rows
		t.cols = cols
	}
}

// New creates a terminal with the given options. Defaults to 24x80.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		rows: DEFAULT_ROWS,
		cols: DEFAULT_COLS,
	}

	for _, opt := range opts {
		opt(t)
	}

	t.grid = NewGrid(t.rows, t.cols)
	t.cursor = NewCursor()
	t.pen = NewPen()

	// Create internal decoder
	t.decoder = ansicode.NewDecoder(t)

	return t
}

// Rows returns the terminal height in character rows.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows
}

// Cols returns the terminal width in character columns.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cols
}

// Cell returns the cell at (row, col), or nil if out of bounds.
func (t *Terminal) Cell(row, col int) *Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.grid.Cell(row, col)
}

// CursorPos returns the current cursor position (0-based). The column may
// equal Cols when the last write filled the final column of a row.
func (t *Terminal) CursorPos() (row, col int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor.Row, t.cursor.Col
}

// Write processes raw bytes, parsing ANSI escape sequences and updating the
// grid, cursor, and pen. Implements io.Writer; the returned error is always
// nil. Incomplete escapes at the end of the data are carried over to the
// next call, so chunking never changes the result.
func (t *Terminal) Write(data []byte) (int, error) {
	return t.decoder.Write(data)
}

// WriteString is a convenience method that converts the string to bytes and calls Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// Snapshot returns an independent copy of the current grid.
func (t *Terminal) Snapshot() Frame {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.grid.Clone()
}

// String returns the visible screen content as a newline-separated string
// with trailing empty lines omitted. Implements fmt.Stringer.
func (t *Terminal) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	lastNonEmpty := -1
	lines := make([]string, t.rows)
	for row := 0; row < t.rows; row++ {
		lines[row] = t.grid.LineContent(row)
		if lines[row] != "" {
			lastNonEmpty = row
		}
	}

	if lastNonEmpty < 0 {
		return ""
	}

	result := ""
	for i, line := range lines[:lastNonEmpty+1] {
		if i > 0 {
			result += "\n"
		}
		result += line
	}

	return result
}

// clamp ensures the value is within the given range.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// wrapIfNeeded moves the cursor to the start of the next row when it rests at
// the one-past-end column, scrolling if that pushes it off the bottom.
func (t *Terminal) wrapIfNeeded() {
	if t.cursor.Col >= t.cols {
		t.cursor.Col = 0
		t.cursor.Row++
		t.scrollIfNeeded()
	}
}

// scrollIfNeeded clamps the cursor to the last row, scrolling the grid up by
// however many rows it overshot.
func (t *Terminal) scrollIfNeeded() {
	if t.cursor.Row >= t.rows {
		t.grid.ScrollUp(t.cursor.Row - t.rows + 1)
		t.cursor.Row = t.rows - 1
	}
}
