package blocks

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

// HeadlessOptions controls a batch of unattended AI games.
type HeadlessOptions struct {
	Games int           // number of games to play
	Seed  int64         // game i is seeded with Seed+i
	Delay time.Duration // pause before each AI placement

	// OnGame is called after each finished game.
	OnGame func(i int, snap engine.Snapshot)

	// Sink, if set, receives every session event.
	Sink engine.EventSink
}

// HeadlessSummary aggregates the games of one headless run.
type HeadlessSummary struct {
	Games      int
	Best       int
	Total      int
	Placements int
	Lines      int
}

// Average returns the mean final score.
func (s HeadlessSummary) Average() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Total) / float64(s.Games)
}

// RunHeadless plays opts.Games sessions to completion with autoplay on.
// On cancellation it returns the summary of the games finished so far
// together with the context error.
func RunHeadless(ctx context.Context, cfg config.BlocksConfig, opts HeadlessOptions) (HeadlessSummary, error) {
	var sum HeadlessSummary

	for i := 0; i < opts.Games; i++ {
		ec, err := cfg.EngineConfig(opts.Seed + int64(i))
		if err != nil {
			return sum, err
		}
		ec.AIDelay = opts.Delay

		lines := 0
		counter := engine.SinkFunc(func(evt engine.Event) {
			if e, ok := evt.(engine.LinesCleared); ok {
				lines += len(e.Rows) + len(e.Cols)
			}
		})
		sink := engine.MultiSink{counter, opts.Sink}

		session, err := engine.NewSession(ec, engine.WithSink(sink), engine.WithLogger(logger))
		if err != nil {
			return sum, err
		}
		agent := engine.NewAgent(session, engine.WithAgentLogger(logger))

		if err := session.SetAIEnabled(true); err != nil {
			return sum, err
		}
		if err := session.Start(); err != nil {
			return sum, err
		}
		if err := agent.Run(ctx); err != nil {
			return sum, err
		}
		if session.Phase() != engine.PhaseGameOver {
			return sum, fmt.Errorf("headless: game %d stopped in phase %s", i, session.Phase())
		}

		snap := session.Snapshot()
		sum.Games++
		sum.Total += snap.Score
		sum.Best = max(sum.Best, snap.Score)
		sum.Placements += snap.Placements
		sum.Lines += lines
		if opts.OnGame != nil {
			opts.OnGame(i, snap)
		}
	}

	return sum, nil
}
