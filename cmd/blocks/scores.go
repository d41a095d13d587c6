package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagRuns  bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a mode (default "blocks"),
or the most recent autoplay runs with --runs.
--clear deletes every recorded score of the mode.

Examples:
  blocks scores
  blocks scores blocks_ai
  blocks scores --runs
  blocks scores blocks_ai --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "Show recent autoplay runs instead")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "blocks"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !flagRuns && !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'blocks list' to see available modes", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagRuns {
		return printRuns(store)
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared all scores for %s.\n", gameID)
		return nil
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Average: %.0f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
	return nil
}

func printRuns(store *storage.Store) error {
	runs, err := store.RecentRuns(10)
	if err != nil {
		return fmt.Errorf("retrieving autoplay runs: %w", err)
	}

	fmt.Println("Recent Autoplay Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No autoplay runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-12s  %-5s  %-8s  %-9s  %s\n", "Date", "Seed", "Games", "Best", "Average", "Lines")
	fmt.Printf("  %-16s  %-12s  %-5s  %-8s  %-9s  %s\n", "----", "----", "-----", "----", "-------", "-----")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-12d  %-5d  %-8d  %-9.1f  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Seed, r.Games, r.Best, r.Average, r.Lines)
	}
	return nil
}
