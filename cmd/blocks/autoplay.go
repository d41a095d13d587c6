package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagGames  int
	flagDelay  time.Duration
	flagNoSave bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Run AI games without a UI",
	Long: `Play a series of games with the AI and print the results.

Game i is seeded with --seed plus i, so a run is reproducible.
Each final score is saved under "blocks_ai" and the run summary is
recorded for 'blocks scores --runs'. Ctrl+C stops after saving the
games finished so far.

Examples:
  blocks autoplay
  blocks autoplay --games 100 --seed 1
  blocks autoplay --delay 400ms --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagGames, "games", 10, "Number of games to play")
	autoplayCmd.Flags().DurationVar(&flagDelay, "delay", 0, "Pause before each AI placement")
	autoplayCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record results")
}

func runAutoplay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if flagGames < 1 {
		return fmt.Errorf("--games must be at least 1, got %d", flagGames)
	}
	if flagDelay < 0 {
		return fmt.Errorf("--delay must not be negative, got %s", flagDelay)
	}

	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		return err
	}

	var store *storage.Store
	if !flagNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("results will not be saved", "err", err)
			store = nil
		}
	}
	if store != nil {
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := blocks.HeadlessOptions{
		Games: flagGames,
		Seed:  seed,
		Delay: flagDelay,
		OnGame: func(i int, snap engine.Snapshot) {
			logger.Info("game over",
				"game", i+1,
				"seed", seed+int64(i),
				"score", snap.Score,
				"placements", snap.Placements,
				"lines", snap.LinesCleared,
			)
			if store != nil && snap.Score > 0 {
				if _, err := store.SaveScore("blocks_ai", snap.Score); err != nil {
					logger.Error("cannot save score", "err", err)
				}
			}
		},
	}

	// Debug runs trace every event on a separate goroutine.
	if logger.GetLevel() <= log.DebugLevel {
		events := engine.NewChannelSink(256)
		traced := make(chan struct{})
		go traceEvents(logger, events, traced)
		opts.Sink = events
		defer func() {
			events.Close()
			<-traced
		}()
	}

	start := time.Now()
	sum, runErr := blocks.RunHeadless(ctx, cfg, opts)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		logger.Warn("interrupted", "finished", sum.Games, "requested", flagGames)
	}

	if sum.Games == 0 {
		return nil
	}

	if store != nil {
		_, err := store.SaveRun(storage.AutoplayRun{
			Seed:       seed,
			Games:      sum.Games,
			Best:       sum.Best,
			Average:    sum.Average(),
			Placements: sum.Placements,
			Lines:      sum.Lines,
		})
		if err != nil {
			logger.Error("cannot save run", "err", err)
		}
	}

	fmt.Printf("Games:      %d\n", sum.Games)
	fmt.Printf("Best:       %d\n", sum.Best)
	fmt.Printf("Average:    %.1f\n", sum.Average())
	fmt.Printf("Placements: %d\n", sum.Placements)
	fmt.Printf("Lines:      %d\n", sum.Lines)
	fmt.Printf("Elapsed:    %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// traceEvents logs session events at debug level until sink is closed and
// drained.
func traceEvents(logger *log.Logger, sink *engine.ChannelSink, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case evt := <-sink.Events():
			logger.Debug("event", "type", fmt.Sprintf("%T", evt), "data", evt)
		case <-sink.Done():
			for {
				select {
				case evt := <-sink.Events():
					logger.Debug("event", "type", fmt.Sprintf("%T", evt), "data", evt)
				default:
					return
				}
			}
		}
	}
}
