package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var flagAI bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game directly.

Controls:
  Arrows/WASD  - Move the shape
  1/2/3, Tab   - Pick a shape from the batch
  Enter/Space  - Place
  I            - Toggle the AI
  P            - Pause
  R            - Restart
  Esc/Q        - Quit
  Ctrl+S       - Save a screenshot

Examples:
  blocks play
  blocks play --ai
  blocks play --seed 42 --config ./my-blocks.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAI, "ai", false, "Start with the AI playing")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	gameID := "blocks"
	if flagAI {
		gameID = "blocks_ai"
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "id", gameID, "seed", flagSeed)
	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
