package config

import (
	_ "embed"
	"strings"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the default block puzzle configuration.
func DefaultBlocksConfig() BlocksConfig {
	w := engine.DefaultWeights()

	catalog := engine.DefaultCatalog()
	shapes := make([]ShapeConfig, 0, catalog.Len())
	for _, s := range catalog.Shapes() {
		shapes = append(shapes, ShapeConfig{
			Name: s.Name,
			Rows: strings.Split(s.Matrix.String(), "\n"),
		})
	}

	return BlocksConfig{
		Board: BlocksBoard{
			Size: engine.DefaultBoardSize,
		},
		Palette: []string{"red", "green", "yellow", "blue", "magenta", "cyan", "orange"},
		Shapes:  shapes,
		AI: BlocksAI{
			DelayMS: int(engine.DefaultAIDelay.Milliseconds()),
			Weights: AIWeights{
				Line:       w.Line,
				ClearBonus: w.ClearBonus,
				Gap:        w.Gap,
				Contact:    w.Contact,
				Edge:       w.Edge,
				Height:     w.Height,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBlocksYAML
}
