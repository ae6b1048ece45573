package castsvg

// Grid stores a fixed-size 2D matrix of cells. Dimensions never change after
// construction. A cloned Grid serves as a Frame: an independent snapshot of
// the screen at an instant.
type Grid struct {
	rows    int
	cols    int
	cells   [][]Cell
	tabStop []bool
}

// Frame is an immutable snapshot of the grid at an instant.
type Frame = *Grid

// NewGrid creates a grid with the given dimensions, every position holding a
// default cell. Tab stops are initialized every 8 columns.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{
		rows:    rows,
		cols:    cols,
		cells:   make([][]Cell, rows),
		tabStop: make([]bool, cols),
	}

	for i := range g.cells {
		g.cells[i] = blankRow(cols)
	}

	for i := 0; i < cols; i += 8 {
		g.tabStop[i] = true
	}

	return g
}

func blankRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = NewCell()
	}
	return row
}

// Rows returns the grid height in character rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the grid width in character columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Cell returns a pointer to the cell at (row, col).
// Returns nil if coordinates are out of bounds.
func (g *Grid) Cell(row, col int) *Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return nil
	}
	return &g.cells[row][col]
}

// ClearRow resets all cells in the row to default state.
func (g *Grid) ClearRow(row int) {
	if row < 0 || row >= g.rows {
		return
	}
	for col := range g.cells[row] {
		g.cells[row][col].Reset()
	}
}

// ClearRowRange resets cells in the row from startCol (inclusive) to endCol (exclusive).
func (g *Grid) ClearRowRange(row, startCol, endCol int) {
	if row < 0 || row >= g.rows {
		return
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol > g.cols {
		endCol = g.cols
	}
	for col := startCol; col < endCol; col++ {
		g.cells[row][col].Reset()
	}
}

// ClearAll resets every cell in the grid to default state.
func (g *Grid) ClearAll() {
	for row := range g.cells {
		g.ClearRow(row)
	}
}

// ScrollUp removes the top n rows and appends fresh blank rows at the bottom.
func (g *Grid) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	if n > g.rows {
		n = g.rows
	}

	copy(g.cells, g.cells[n:])
	for row := g.rows - n; row < g.rows; row++ {
		g.cells[row] = blankRow(g.cols)
	}
}

// NextTabStop returns the column of the next tab stop after col,
// or the last column if none remains.
func (g *Grid) NextTabStop(col int) int {
	for c := col + 1; c < g.cols; c++ {
		if g.tabStop[c] {
			return c
		}
	}
	return g.cols - 1
}

// Clone returns an independent deep copy of the grid.
func (g *Grid) Clone() Frame {
	clone := &Grid{
		rows:    g.rows,
		cols:    g.cols,
		cells:   make([][]Cell, g.rows),
		tabStop: g.tabStop,
	}
	for i := range g.cells {
		clone.cells[i] = make([]Cell, g.cols)
		copy(clone.cells[i], g.cells[i])
	}
	return clone
}

// Equal reports whether two grids have identical dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for row := range g.cells {
		for col := range g.cells[row] {
			if g.cells[row][col] != other.cells[row][col] {
				return false
			}
		}
	}
	return true
}

// lastNonSpace returns the column of the last cell in the row whose character
// is not a space, or -1 if the row is blank.
func (g *Grid) lastNonSpace(row int) int {
	for col := g.cols - 1; col >= 0; col-- {
		if g.cells[row][col].Char != ' ' {
			return col
		}
	}
	return -1
}

// LineContent returns the text content of a row, trimming trailing spaces.
func (g *Grid) LineContent(row int) string {
	if row < 0 || row >= g.rows {
		return ""
	}

	last := g.lastNonSpace(row)
	if last < 0 {
		return ""
	}

	runes := make([]rune, 0, last+1)
	for col := 0; col <= last; col++ {
		runes = append(runes, g.cells[row][col].Char)
	}
	return string(runes)
}
