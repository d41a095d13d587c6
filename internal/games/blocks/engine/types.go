// Package engine provides the core rules of the block placement puzzle:
// shapes, the board, line clearing, batch generation, the session state
// machine and the heuristic autoplayer.
// This package is UI-agnostic and deterministic for a given seed.
package engine

import "fmt"

// ColorID identifies a palette entry. ColorNone marks an empty cell.
type ColorID int

// ColorNone is the sentinel color of an empty cell.
const ColorNone ColorID = 0

// Coord addresses a board cell by row and column.
type Coord struct {
	Row int
	Col int
}

// At is shorthand for Coord{Row: row, Col: col}.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Cell is a single board square.
type Cell struct {
	Filled bool
	Color  ColorID // ColorNone unless Filled
}

// Phase is the top-level mode of a session.
type Phase int

const (
	PhaseStart Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

// String returns the upper-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "START"
	case PhasePlaying:
		return "PLAYING"
	case PhasePaused:
		return "PAUSED"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}
