package engine

import (
	"math/rand"

	"github.com/google/uuid"
)

// BatchSize is the number of shapes offered per batch.
const BatchSize = 3

// ShapeID identifies an active shape within a session.
type ShapeID = uuid.UUID

// ActiveShape is a spawned shape waiting to be placed.
type ActiveShape struct {
	ID       ShapeID
	Name     string // catalog name
	Matrix   Matrix // rotated at spawn; read-only
	Color    ColorID
	Rotation int // clockwise quarter turns applied at spawn
}

// Batch is the ordered set of shapes currently available to place.
type Batch []ActiveShape

// Index returns the position of the shape with the given ID, or -1.
func (b Batch) Index(id ShapeID) int {
	for i, s := range b {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Remove returns the batch without the shape at index i, preserving order.
func (b Batch) Remove(i int) Batch {
	out := make(Batch, 0, len(b)-1)
	out = append(out, b[:i]...)
	return append(out, b[i+1:]...)
}

// Clone returns a copy of the batch. Matrices are shared.
func (b Batch) Clone() Batch {
	if b == nil {
		return nil
	}
	out := make(Batch, len(b))
	copy(out, b)
	return out
}

// Generator spawns random shapes from a catalog and palette.
type Generator struct {
	catalog Catalog
	palette []ColorID
	rng     *rand.Rand
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(catalog Catalog, palette []ColorID, rng *rand.Rand) *Generator {
	return &Generator{
		catalog: catalog,
		palette: append([]ColorID(nil), palette...),
		rng:     rng,
	}
}

// Spawn creates one shape: uniform catalog pick, uniform palette pick and
// 0-3 clockwise rotations, all drawn from the generator's RNG.
func (g *Generator) Spawn() ActiveShape {
	base := g.catalog.Shape(g.rng.Intn(g.catalog.Len()))
	color := g.palette[g.rng.Intn(len(g.palette))]
	rotation := g.rng.Intn(4)

	return ActiveShape{
		ID:       g.newID(),
		Name:     base.Name,
		Matrix:   base.Matrix.Rotate(rotation),
		Color:    color,
		Rotation: rotation,
	}
}

// Generate returns a fresh batch of BatchSize shapes.
func (g *Generator) Generate() Batch {
	batch := make(Batch, BatchSize)
	for i := range batch {
		batch[i] = g.Spawn()
	}
	return batch
}

// newID draws a UUID from the seeded RNG so replays produce the same IDs.
func (g *Generator) newID() ShapeID {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return uuid.New()
	}
	return id
}

// HasValidMoves reports whether any shape in the batch fits anywhere.
func HasValidMoves(b *Board, batch Batch) bool {
	for _, s := range batch {
		if b.HasPlacement(s.Matrix) {
			return true
		}
	}
	return false
}
