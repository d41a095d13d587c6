package engine

import (
	"math/rand"
	"testing"
)

func randomBoard(rng *rand.Rand, size int, density float64) *Board {
	b := NewBoard(size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if rng.Float64() < density {
				b.Fill(row, col, ColorID(1+rng.Intn(7)))
			}
		}
	}
	return b
}

func TestCanPlaceBounds(t *testing.T) {
	b := NewBoard(8)
	i := MustParseMatrix("####")

	tests := []struct {
		name     string
		row, col int
		expected bool
	}{
		{"top-left", 0, 0, true},
		{"flush right", 0, 4, true},
		{"past right edge", 0, 5, false},
		{"bottom row", 7, 0, true},
		{"below board", 8, 0, false},
		{"negative row", -1, 0, false},
		{"negative col", 0, -1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.CanPlace(i, tc.row, tc.col); got != tc.expected {
				t.Errorf("CanPlace(I, %d, %d) = %v, expected %v", tc.row, tc.col, got, tc.expected)
			}
		})
	}
}

func TestCanPlaceOverlap(t *testing.T) {
	b := BoardFromRows(8, 1,
		"........",
		".#......",
	)
	corner := MustParseMatrix("##", "#.")
	s := MustParseMatrix(".##", "##.")

	if b.CanPlace(corner, 0, 1) {
		t.Error("corner at (0,1) covers filled (1,1)")
	}
	if !b.CanPlace(corner, 0, 2) {
		t.Error("corner at (0,2) should fit")
	}
	// the empty corner of S sits on the filled cell
	if !b.CanPlace(s, 1, 1) {
		t.Error("S at (1,1) only overlaps through an empty matrix cell")
	}
}

func TestCanPlaceIsPure(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := randomBoard(rng, 8, 0.4)
	before := b.Clone()

	for _, s := range DefaultCatalog().Shapes() {
		for row := -1; row <= 8; row++ {
			for col := -1; col <= 8; col++ {
				b.CanPlace(s.Matrix, row, col)
			}
		}
	}

	if !b.Equal(before) {
		t.Errorf("CanPlace mutated the board:\n%s\nwant\n%s", b, before)
	}
}

func TestCommitAddsShapeCells(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	catalog := DefaultCatalog()

	for trial := 0; trial < 200; trial++ {
		b := randomBoard(rng, 8, 0.3)
		shape := catalog.Shape(rng.Intn(catalog.Len())).Matrix.Rotate(rng.Intn(4))
		row, col := rng.Intn(8), rng.Intn(8)
		if !b.CanPlace(shape, row, col) {
			continue
		}

		before := b.FilledCount()
		placed := b.Commit(shape, row, col, 3)

		if got, want := b.FilledCount(), before+shape.CellCount(); got != want {
			t.Fatalf("trial %d: FilledCount() = %d, want %d", trial, got, want)
		}
		if len(placed) != shape.CellCount() {
			t.Fatalf("trial %d: Commit returned %d coords, want %d", trial, len(placed), shape.CellCount())
		}
		for _, c := range placed {
			if cell := b.Get(c.Row, c.Col); !cell.Filled || cell.Color != 3 {
				t.Fatalf("trial %d: cell %v = %+v, want filled with color 3", trial, c, cell)
			}
		}
	}
}

func TestCellInvariant(t *testing.T) {
	b := NewBoard(4)
	b.Fill(1, 1, ColorNone)
	if b.Filled(1, 1) {
		t.Error("Fill with ColorNone must not produce a filled cell")
	}

	b.Fill(2, 2, 5)
	b.Empty(2, 2)
	if cell := b.Get(2, 2); cell != (Cell{}) {
		t.Errorf("emptied cell = %+v, want zero cell", cell)
	}
}

func TestBoardClone(t *testing.T) {
	b := BoardFromRows(4, 2, "#...", ".#..")
	c := b.Clone()
	c.Fill(3, 3, 4)

	if b.Filled(3, 3) {
		t.Error("Clone shares storage with the original")
	}
	if !b.Equal(BoardFromRows(4, 2, "#...", ".#..")) {
		t.Errorf("original changed:\n%s", b)
	}
}

func TestHasPlacement(t *testing.T) {
	checker := NewBoard(8)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if (row+col)%2 == 0 {
				checker.Fill(row, col, 1)
			}
		}
	}

	if !checker.HasPlacement(MustParseMatrix("#")) {
		t.Error("single should fit a checkerboard")
	}
	if checker.HasPlacement(MustParseMatrix("##")) {
		t.Error("domino cannot fit a checkerboard")
	}
	if NewBoard(3).HasPlacement(MustParseMatrix("####")) {
		t.Error("I cannot fit a 3x3 board")
	}
}
