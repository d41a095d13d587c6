package engine

// PointsPerLine is awarded for each cleared row or column.
const PointsPerLine = 100

// ClearResult describes one line-clear pass.
type ClearResult struct {
	Rows   []int
	Cols   []int
	Cells  []Coord // union of cleared cells, row-major, no duplicates
	Points int
}

// Lines returns the number of cleared rows plus columns.
func (r ClearResult) Lines() int {
	return len(r.Rows) + len(r.Cols)
}

// DetectFullLines returns the indexes of completely filled rows and columns,
// each in ascending order.
func DetectFullLines(b *Board) (rows, cols []int) {
	n := b.Size()
	for row := 0; row < n; row++ {
		full := true
		for col := 0; col < n; col++ {
			if !b.Filled(row, col) {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, row)
		}
	}
	for col := 0; col < n; col++ {
		full := true
		for row := 0; row < n; row++ {
			if !b.Filled(row, col) {
				full = false
				break
			}
		}
		if full {
			cols = append(cols, col)
		}
	}
	return rows, cols
}

// ComputeClearedCells returns the union of all cells in the given rows and
// columns. A cell on both a cleared row and a cleared column appears once.
func ComputeClearedCells(b *Board, rows, cols []int) []Coord {
	n := b.Size()
	marked := make([]bool, n*n)
	for _, row := range rows {
		for col := 0; col < n; col++ {
			marked[row*n+col] = true
		}
	}
	for _, col := range cols {
		for row := 0; row < n; row++ {
			marked[row*n+col] = true
		}
	}

	cells := make([]Coord, 0)
	for i, m := range marked {
		if m {
			cells = append(cells, At(i/n, i%n))
		}
	}
	return cells
}

// ApplyClear resets every listed cell to empty.
func ApplyClear(b *Board, cells []Coord) {
	for _, c := range cells {
		b.Empty(c.Row, c.Col)
	}
}

// LinePoints returns the score for clearing the given number of rows and
// columns. Lines are counted, not cells.
func LinePoints(rows, cols int) int {
	return (rows + cols) * PointsPerLine
}

// ClearFullLines detects, clears and scores every full line on the board.
func ClearFullLines(b *Board) ClearResult {
	rows, cols := DetectFullLines(b)
	if len(rows) == 0 && len(cols) == 0 {
		return ClearResult{}
	}
	cells := ComputeClearedCells(b, rows, cols)
	ApplyClear(b, cells)
	return ClearResult{
		Rows:   rows,
		Cols:   cols,
		Cells:  cells,
		Points: LinePoints(len(rows), len(cols)),
	}
}
