package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Matrix is a rectangular occupancy grid, indexed [row][col].
// Catalog matrices are canonical: at least one true cell and no empty
// border row or column.
type Matrix [][]bool

// ParseMatrix builds a matrix from row strings.
// '#', 'X' and 'x' mark occupied cells; '.', ' ' and '_' mark empty ones.
func ParseMatrix(rows ...string) (Matrix, error) {
	if len(rows) == 0 {
		return nil, errors.New("shape: no rows")
	}
	width := len(rows[0])
	m := make(Matrix, len(rows))
	for r, line := range rows {
		if len(line) != width {
			return nil, fmt.Errorf("shape: row %d has width %d, want %d", r, len(line), width)
		}
		m[r] = make([]bool, width)
		for c, ch := range line {
			switch ch {
			case '#', 'X', 'x':
				m[r][c] = true
			case '.', ' ', '_':
			default:
				return nil, fmt.Errorf("shape: unexpected %q at row %d col %d", ch, r, c)
			}
		}
	}
	return m, m.Validate()
}

// MustParseMatrix is ParseMatrix that panics on error. Used for built-in shapes.
func MustParseMatrix(rows ...string) Matrix {
	m, err := ParseMatrix(rows...)
	if err != nil {
		panic(err)
	}
	return m
}

// Height returns the number of rows.
func (m Matrix) Height() int {
	return len(m)
}

// Width returns the number of columns.
func (m Matrix) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Validate checks that the matrix is rectangular and canonical.
func (m Matrix) Validate() error {
	h, w := m.Height(), m.Width()
	if h == 0 || w == 0 {
		return errors.New("shape: empty matrix")
	}
	for r := range m {
		if len(m[r]) != w {
			return fmt.Errorf("shape: row %d has width %d, want %d", r, len(m[r]), w)
		}
	}
	if m.CellCount() == 0 {
		return errors.New("shape: no occupied cells")
	}
	if !m.rowOccupied(0) || !m.rowOccupied(h-1) {
		return errors.New("shape: empty border row")
	}
	if !m.colOccupied(0) || !m.colOccupied(w-1) {
		return errors.New("shape: empty border column")
	}
	return nil
}

func (m Matrix) rowOccupied(r int) bool {
	for _, v := range m[r] {
		if v {
			return true
		}
	}
	return false
}

func (m Matrix) colOccupied(c int) bool {
	for r := range m {
		if m[r][c] {
			return true
		}
	}
	return false
}

// CellCount returns the number of occupied cells.
func (m Matrix) CellCount() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// Offsets returns the occupied cells relative to the top-left corner, row-major.
func (m Matrix) Offsets() []Coord {
	out := make([]Coord, 0, m.CellCount())
	for r, row := range m {
		for c, v := range row {
			if v {
				out = append(out, At(r, c))
			}
		}
	}
	return out
}

// RotateClockwise returns a new matrix turned 90 degrees clockwise:
// out[c][rows-1-r] = m[r][c].
func (m Matrix) RotateClockwise() Matrix {
	rows, cols := m.Height(), m.Width()
	out := make(Matrix, cols)
	for c := range out {
		out[c] = make([]bool, rows)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[c][rows-1-r] = m[r][c]
		}
	}
	return out
}

// Rotate applies n clockwise quarter turns. Negative n is normalized.
func (m Matrix) Rotate(n int) Matrix {
	n = ((n % 4) + 4) % 4
	out := m.Clone()
	for i := 0; i < n; i++ {
		out = out.RotateClockwise()
	}
	return out
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for r := range m {
		out[r] = append([]bool(nil), m[r]...)
	}
	return out
}

// Equal reports whether two matrices have the same shape and cells.
func (m Matrix) Equal(other Matrix) bool {
	if m.Height() != other.Height() || m.Width() != other.Width() {
		return false
	}
	for r := range m {
		for c := range m[r] {
			if m[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the matrix with '#' and '.' rows joined by newlines.
func (m Matrix) String() string {
	var sb strings.Builder
	for r, row := range m {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, v := range row {
			if v {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
