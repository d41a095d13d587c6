package engine

// Weights are the coefficients of the placement scoring function.
type Weights struct {
	Line       int // per row or column completed
	ClearBonus int // flat bonus when anything is completed
	Gap        int // per empty run opened behind a filled cell
	Contact    int // per side touching a previously filled cell
	Edge       int // per side touching the board edge
	Height     int // multiplied by (N - row)
}

// DefaultWeights returns the reference coefficients.
func DefaultWeights() Weights {
	return Weights{
		Line:       1000,
		ClearBonus: 2000,
		Gap:        -50,
		Contact:    100,
		Edge:       -30,
		Height:     20,
	}
}

// Move is a candidate placement with its heuristic score.
type Move struct {
	ShapeID    ShapeID
	ShapeIndex int // position in the batch
	Row        int
	Col        int
	Score      int
}

// Features are the raw terms of a placement evaluation.
type Features struct {
	Lines    int
	Gaps     int
	Contacts int
	Edges    int
}

var neighbors = [4]Coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// FindBestMove searches every placement of every shape in the batch and
// returns the highest scoring one. Ties keep the first candidate in scan
// order: batch order, then rows, then columns. Returns false when nothing
// fits. The board is not modified.
func FindBestMove(b *Board, batch Batch, w Weights) (Move, bool) {
	var best Move
	found := false
	n := b.Size()

	for i, shape := range batch {
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				if !b.CanPlace(shape.Matrix, row, col) {
					continue
				}
				score := EvaluatePlacement(b, shape.Matrix, row, col, w)
				if !found || score > best.Score {
					best = Move{
						ShapeID:    shape.ID,
						ShapeIndex: i,
						Row:        row,
						Col:        col,
						Score:      score,
					}
					found = true
				}
			}
		}
	}
	return best, found
}

// EvaluatePlacement scores placing m at (row, col). The placement must be
// legal; the evaluation runs on a scratch copy of b.
func EvaluatePlacement(b *Board, m Matrix, row, col int, w Weights) int {
	f := PlacementFeatures(b, m, row, col)
	score := f.Lines*w.Line +
		f.Gaps*w.Gap +
		f.Contacts*w.Contact +
		f.Edges*w.Edge +
		(b.Size()-row)*w.Height
	if f.Lines > 0 {
		score += w.ClearBonus
	}
	return score
}

// PlacementFeatures computes the evaluation terms for placing m at (row, col).
func PlacementFeatures(b *Board, m Matrix, row, col int) Features {
	scratch := b.Clone()
	placed := scratch.Commit(m, row, col, 1)

	rows, cols := DetectFullLines(scratch)
	f := Features{
		Lines: len(rows) + len(cols),
		Gaps:  CountGaps(scratch),
	}

	for _, p := range placed {
		for _, d := range neighbors {
			r, c := p.Row+d.Row, p.Col+d.Col
			if !b.InBounds(r, c) {
				f.Edges++
				continue
			}
			if b.Filled(r, c) {
				f.Contacts++
			}
		}
	}
	return f
}

// CountGaps counts empty runs that begin after a filled cell has been seen,
// scanning each row left to right and each column top to bottom. It is an
// approximation of dead space, not a reachability test.
func CountGaps(b *Board) int {
	n := b.Size()
	gaps := 0
	for row := 0; row < n; row++ {
		gaps += countRuns(n, func(i int) bool { return b.Filled(row, i) })
	}
	for col := 0; col < n; col++ {
		gaps += countRuns(n, func(i int) bool { return b.Filled(i, col) })
	}
	return gaps
}

// countRuns counts maximal empty runs in a line of length n that start
// immediately after a filled cell.
func countRuns(n int, filled func(int) bool) int {
	runs := 0
	seenFilled := false
	inRun := false
	for i := 0; i < n; i++ {
		if filled(i) {
			seenFilled = true
			inRun = false
			continue
		}
		if seenFilled && !inRun {
			runs++
			inRun = true
		}
	}
	return runs
}
