package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the mode picker menu",
	Long: `Start t2048 in interactive menu mode.

Pick classic, campaign or a campaign start level. After a game ends,
press Esc to return to the menu and play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  t2048 menu
  t2048 menu --fps 60
  t2048 menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, closeLog := tuiLogger(cfg)
	defer closeLog()

	store := openStore(cmd.Context(), cfg, logger)
	if store != nil {
		defer store.Close()
	}

	rt := runtimeConfig(cfg)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, rt)
		if err != nil {
			logger.Error("menu failed", "err", err)
			break
		}

		// Update config with any size changes
		rt = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "err", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		game, err := tui.StartGame(menuResult.GameID, menuResult.Level)
		if err != nil {
			logger.Error("cannot create game", "game", menuResult.GameID, "err", err)
			continue
		}

		// Fresh seed for each game unless one was given
		if flagSeed == 0 {
			rt.Seed = time.Now().UnixNano()
		}

		logger.Info("game started", "game", game.ID(), "level", menuResult.Level)
		back, err := tui.Run(game, store, rt, logger)
		if err != nil {
			logger.Error("game failed", "game", game.ID(), "err", err)
		}
		state := game.State()
		logger.Info("game finished", "game", game.ID(), "score", state.Score, "max_tile", state.MaxTile, "moves", state.Moves)

		if !back {
			break
		}
	}
}
