// Package config provides YAML-based configuration loading for the block
// puzzle: board size, palette, shape catalog and autoplay tuning.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

// BlocksConfig contains all configuration for the block puzzle.
type BlocksConfig struct {
	Board   BlocksBoard   `yaml:"board"`
	Palette []string      `yaml:"palette"` // color names, see core.ParseColor
	Shapes  []ShapeConfig `yaml:"shapes"`
	AI      BlocksAI      `yaml:"ai"`
}

// BlocksBoard defines the board dimensions.
type BlocksBoard struct {
	Size int `yaml:"size"` // N for an N×N board
}

// ShapeConfig is one catalog entry in '#'/'.' row notation.
type ShapeConfig struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// BlocksAI defines autoplay pacing and scoring weights.
type BlocksAI struct {
	DelayMS int       `yaml:"delay_ms"`
	Weights AIWeights `yaml:"weights"`
}

// AIWeights mirrors engine.Weights for YAML.
type AIWeights struct {
	Line       int `yaml:"line"`
	ClearBonus int `yaml:"clear_bonus"`
	Gap        int `yaml:"gap"`
	Contact    int `yaml:"contact"`
	Edge       int `yaml:"edge"`
	Height     int `yaml:"height"`
}

// Colors resolves the palette names. Engine color i+1 is Colors()[i].
func (c BlocksConfig) Colors() ([]core.Color, error) {
	colors := make([]core.Color, len(c.Palette))
	for i, name := range c.Palette {
		color, ok := core.ParseColor(name)
		if !ok || color == core.ColorDefault {
			return nil, fmt.Errorf("config: palette entry %d: unknown color %q", i, name)
		}
		colors[i] = color
	}
	return colors, nil
}

// Catalog parses the configured shapes.
func (c BlocksConfig) Catalog() (engine.Catalog, error) {
	shapes := make([]engine.CatalogShape, len(c.Shapes))
	for i, sc := range c.Shapes {
		m, err := engine.ParseMatrix(sc.Rows...)
		if err != nil {
			return engine.Catalog{}, fmt.Errorf("config: shape %q: %w", sc.Name, err)
		}
		shapes[i] = engine.CatalogShape{Name: sc.Name, Matrix: m}
	}
	catalog, err := engine.NewCatalog(shapes)
	if err != nil {
		return engine.Catalog{}, fmt.Errorf("config: %w", err)
	}
	return catalog, nil
}

// EngineConfig converts the YAML configuration into a validated
// engine.Config with the given seed.
func (c BlocksConfig) EngineConfig(seed int64) (engine.Config, error) {
	colors, err := c.Colors()
	if err != nil {
		return engine.Config{}, err
	}
	catalog, err := c.Catalog()
	if err != nil {
		return engine.Config{}, err
	}

	palette := make([]engine.ColorID, len(colors))
	for i := range colors {
		palette[i] = engine.ColorID(i + 1)
	}

	cfg := engine.Config{
		BoardSize: c.Board.Size,
		Catalog:   catalog,
		Palette:   palette,
		AIDelay:   time.Duration(c.AI.DelayMS) * time.Millisecond,
		Weights: engine.Weights{
			Line:       c.AI.Weights.Line,
			ClearBonus: c.AI.Weights.ClearBonus,
			Gap:        c.AI.Weights.Gap,
			Contact:    c.AI.Weights.Contact,
			Edge:       c.AI.Weights.Edge,
			Height:     c.AI.Weights.Height,
		},
		Seed: seed,
	}
	if err := cfg.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
