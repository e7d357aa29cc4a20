package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

// statsStore is implemented by backends that keep aggregate statistics.
type statsStore interface {
	GameStats(ctx context.Context, gameID string) (*storage.GameStats, error)
}

var scoresCmd = &cobra.Command{
	Use:   "scores [classic|campaign]",
	Short: "Show high scores",
	Long: `Display the top scores for one mode, or for every mode when none is given.

Examples:
  t2048 scores
  t2048 scores campaign
  t2048 scores classic --limit 25
  t2048 scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", storage.DefaultLimit, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the scores of the given mode")
}

func runScores(cmd *cobra.Command, args []string) {
	var ids []string
	if len(args) > 0 {
		id, err := gameIDForMode(args[0])
		if err != nil {
			fail("%v", err)
		}
		ids = append(ids, id)
	} else {
		if flagClear {
			fail("--clear needs a mode")
		}
		for _, g := range registry.List() {
			ids = append(ids, g.ID)
		}
	}

	cfg := loadConfig()
	logger := newLogger(cfg, os.Stderr)
	ctx := cmd.Context()

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		fail("opening scores: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(ctx, ids[0]); err != nil {
			logger.Error("clear failed", "game", ids[0], "err", err)
			return
		}
		fmt.Printf("Cleared scores for %s\n", ids[0])
		return
	}

	for i, id := range ids {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(ctx, store, id); err != nil {
			logger.Error("cannot read scores", "game", id, "err", err)
		}
	}
}

func printScores(ctx context.Context, store storage.ScoreStore, gameID string) error {
	title := gameID
	if game, err := registry.Create(gameID); err == nil {
		title = game.Title()
	}

	scores, err := store.TopScores(ctx, gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %s\n", "Rank", "Score", "Max Tile", "Moves", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-6s  %s\n", "----", "-----", "--------", "-----", "----")
	for i, e := range scores {
		dateStr := e.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-8d  %-6d  %s\n", i+1, e.Score, e.MaxTile, e.Moves, dateStr)
	}

	fmt.Println()
	if ss, ok := store.(statsStore); ok {
		stats, err := ss.GameStats(ctx, gameID)
		if err != nil {
			return err
		}
		fmt.Printf("Games: %d  Best: %d  Best tile: %d  Average: %.0f\n",
			stats.GamesCount, stats.HighScore, stats.BestTile, stats.AvgScore)
		return nil
	}

	best, err := store.HighScore(ctx, gameID)
	if err != nil {
		return err
	}
	fmt.Printf("Best: %d\n", best)
	return nil
}
