package engine

import "strings"

// DefaultBoardSize is the reference board dimension.
const DefaultBoardSize = 8

// Board is an N×N grid of cells stored in row-major order: index = row*N + col.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard creates an empty board of the given size.
func NewBoard(size int) *Board {
	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

// Size returns N.
func (b *Board) Size() int {
	return b.size
}

func (b *Board) index(row, col int) int {
	return row*b.size + col
}

// InBounds reports whether (row, col) lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// Get returns the cell at (row, col). Out-of-bounds returns an empty cell.
func (b *Board) Get(row, col int) Cell {
	if !b.InBounds(row, col) {
		return Cell{}
	}
	return b.cells[b.index(row, col)]
}

// Filled reports whether (row, col) is on the board and filled.
func (b *Board) Filled(row, col int) bool {
	return b.Get(row, col).Filled
}

// Fill sets (row, col) to a filled cell of the given color.
// A ColorNone color or out-of-bounds coordinate is ignored.
func (b *Board) Fill(row, col int, color ColorID) {
	if !b.InBounds(row, col) || color == ColorNone {
		return
	}
	b.cells[b.index(row, col)] = Cell{Filled: true, Color: color}
}

// Empty resets (row, col) to the empty cell.
func (b *Board) Empty(row, col int) {
	if b.InBounds(row, col) {
		b.cells[b.index(row, col)] = Cell{}
	}
}

// CanPlace reports whether m fits at (row, col) without leaving the board
// or overlapping a filled cell. It never mutates the board.
func (b *Board) CanPlace(m Matrix, row, col int) bool {
	if row < 0 || col < 0 || row+m.Height() > b.size || col+m.Width() > b.size {
		return false
	}
	for r, line := range m {
		for c, v := range line {
			if v && b.cells[b.index(row+r, col+c)].Filled {
				return false
			}
		}
	}
	return true
}

// Commit fills every occupied cell of m at (row, col) with color and
// returns the covered coordinates in row-major order.
// The caller must have checked CanPlace; Commit does not re-validate.
func (b *Board) Commit(m Matrix, row, col int, color ColorID) []Coord {
	placed := make([]Coord, 0, m.CellCount())
	for r, line := range m {
		for c, v := range line {
			if !v {
				continue
			}
			b.cells[b.index(row+r, col+c)] = Cell{Filled: true, Color: color}
			placed = append(placed, At(row+r, col+c))
		}
	}
	return placed
}

// HasPlacement reports whether m fits anywhere on the board.
func (b *Board) HasPlacement(m Matrix) bool {
	for row := 0; row <= b.size-m.Height(); row++ {
		for col := 0; col <= b.size-m.Width(); col++ {
			if b.CanPlace(m, row, col) {
				return true
			}
		}
	}
	return false
}

// Clear empties every cell.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Cell{}
	}
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{size: b.size, cells: cells}
}

// FilledCount returns the number of filled cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, cell := range b.cells {
		if cell.Filled {
			n++
		}
	}
	return n
}

// FilledCoords returns all filled coordinates in row-major order.
func (b *Board) FilledCoords() []Coord {
	coords := make([]Coord, 0)
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.cells[b.index(row, col)].Filled {
				coords = append(coords, At(row, col))
			}
		}
	}
	return coords
}

// Rows returns a copy of the cells as a [row][col] slice.
func (b *Board) Rows() [][]Cell {
	out := make([][]Cell, b.size)
	for row := range out {
		out[row] = make([]Cell, b.size)
		copy(out[row], b.cells[row*b.size:(row+1)*b.size])
	}
	return out
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if b.size != other.size {
		return false
	}
	for i, cell := range b.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders filled cells as '#' and empty cells as '.'.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.size*b.size + b.size)
	for row := 0; row < b.size; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < b.size; col++ {
			if b.cells[b.index(row, col)].Filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// BoardFromRows builds a board from '#'/'.' strings, filling with color.
// Characters other than '#' are treated as empty. Intended for tests and
// fixtures; rows shorter than the board leave the remainder empty.
func BoardFromRows(size int, color ColorID, rows ...string) *Board {
	b := NewBoard(size)
	for r, line := range rows {
		for c, ch := range line {
			if ch == '#' {
				b.Fill(r, c, color)
			}
		}
	}
	return b
}
