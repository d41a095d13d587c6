package engine

// ShapeSnapshot summarizes an active shape.
type ShapeSnapshot struct {
	Name     string
	Color    ColorID
	Rotation int
	Cells    int
}

// Snapshot captures the observable session state for determinism testing
// and status displays.
type Snapshot struct {
	Phase        Phase
	Score        int
	AIEnabled    bool
	Board        string // '#'/'.' rows
	Filled       int
	Batch        []ShapeSnapshot
	Placements   int
	LinesCleared int
	Batches      int
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	batch := make([]ShapeSnapshot, len(s.batch))
	for i, sh := range s.batch {
		batch[i] = ShapeSnapshot{
			Name:     sh.Name,
			Color:    sh.Color,
			Rotation: sh.Rotation,
			Cells:    sh.Matrix.CellCount(),
		}
	}

	return Snapshot{
		Phase:        s.phase,
		Score:        s.score,
		AIEnabled:    s.aiEnabled,
		Board:        s.board.String(),
		Filled:       s.board.FilledCount(),
		Batch:        batch,
		Placements:   s.placements,
		LinesCleared: s.linesCleared,
		Batches:      s.batches,
	}
}
