package engine

import (
	"errors"
	"fmt"
)

// CatalogShape is a named base shape.
type CatalogShape struct {
	Name   string
	Matrix Matrix
}

// Catalog is the fixed library of base shapes a session spawns from.
// It hands out copies so stored matrices stay immutable.
type Catalog struct {
	shapes []CatalogShape
}

// NewCatalog validates and copies the given shapes.
func NewCatalog(shapes []CatalogShape) (Catalog, error) {
	if len(shapes) == 0 {
		return Catalog{}, errors.New("catalog: no shapes")
	}
	seen := make(map[string]bool, len(shapes))
	out := make([]CatalogShape, 0, len(shapes))
	for i, s := range shapes {
		if s.Name == "" {
			return Catalog{}, fmt.Errorf("catalog: shape %d has no name", i)
		}
		if seen[s.Name] {
			return Catalog{}, fmt.Errorf("catalog: duplicate shape %q", s.Name)
		}
		seen[s.Name] = true
		if err := s.Matrix.Validate(); err != nil {
			return Catalog{}, fmt.Errorf("catalog: shape %q: %w", s.Name, err)
		}
		out = append(out, CatalogShape{Name: s.Name, Matrix: s.Matrix.Clone()})
	}
	return Catalog{shapes: out}, nil
}

// DefaultCatalog returns the built-in shapes: single, domino, trominoes
// and the seven tetrominoes.
func DefaultCatalog() Catalog {
	c, err := NewCatalog([]CatalogShape{
		{Name: "single", Matrix: MustParseMatrix("#")},
		{Name: "domino", Matrix: MustParseMatrix("##")},
		{Name: "line3", Matrix: MustParseMatrix("###")},
		{Name: "corner", Matrix: MustParseMatrix("##", "#.")},
		{Name: "I", Matrix: MustParseMatrix("####")},
		{Name: "O", Matrix: MustParseMatrix("##", "##")},
		{Name: "T", Matrix: MustParseMatrix("###", ".#.")},
		{Name: "S", Matrix: MustParseMatrix(".##", "##.")},
		{Name: "Z", Matrix: MustParseMatrix("##.", ".##")},
		{Name: "L", Matrix: MustParseMatrix("#.", "#.", "##")},
		{Name: "J", Matrix: MustParseMatrix(".#", ".#", "##")},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of shapes.
func (c Catalog) Len() int {
	return len(c.shapes)
}

// Shape returns a copy of the shape at index i.
func (c Catalog) Shape(i int) CatalogShape {
	s := c.shapes[i]
	return CatalogShape{Name: s.Name, Matrix: s.Matrix.Clone()}
}

// Shapes returns copies of all shapes in catalog order.
func (c Catalog) Shapes() []CatalogShape {
	out := make([]CatalogShape, len(c.shapes))
	for i := range c.shapes {
		out[i] = c.Shape(i)
	}
	return out
}

// Lookup finds a shape by name.
func (c Catalog) Lookup(name string) (CatalogShape, bool) {
	for i, s := range c.shapes {
		if s.Name == name {
			return c.Shape(i), true
		}
	}
	return CatalogShape{}, false
}
