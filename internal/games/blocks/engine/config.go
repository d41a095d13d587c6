package engine

import (
	"errors"
	"fmt"
	"time"
)

// DefaultAIDelay is the pause between an AI decision and its placement.
const DefaultAIDelay = 400 * time.Millisecond

// Config is the static configuration of a session.
type Config struct {
	BoardSize int
	Catalog   Catalog
	Palette   []ColorID // non-sentinel colors to draw from
	AIDelay   time.Duration
	Weights   Weights
	Seed      int64
}

// DefaultConfig returns the reference 8×8 configuration with seven colors.
func DefaultConfig() Config {
	return Config{
		BoardSize: DefaultBoardSize,
		Catalog:   DefaultCatalog(),
		Palette:   []ColorID{1, 2, 3, 4, 5, 6, 7},
		AIDelay:   DefaultAIDelay,
		Weights:   DefaultWeights(),
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	if c.BoardSize < 1 {
		return fmt.Errorf("engine: board size %d must be positive", c.BoardSize)
	}
	if c.Catalog.Len() == 0 {
		return errors.New("engine: catalog is empty")
	}
	if len(c.Palette) == 0 {
		return errors.New("engine: palette is empty")
	}
	for i, color := range c.Palette {
		if color == ColorNone {
			return fmt.Errorf("engine: palette entry %d uses the empty color", i)
		}
	}
	if c.AIDelay < 0 {
		return fmt.Errorf("engine: negative AI delay %s", c.AIDelay)
	}
	fits := false
	for _, s := range c.Catalog.shapes {
		if s.Matrix.Height() <= c.BoardSize && s.Matrix.Width() <= c.BoardSize {
			fits = true
			break
		}
	}
	if !fits {
		return fmt.Errorf("engine: no catalog shape fits a %dx%d board", c.BoardSize, c.BoardSize)
	}
	return nil
}
