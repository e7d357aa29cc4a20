package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play [classic|campaign]",
	Short: "Play a game mode directly",
	Long: `Start playing 2048 without the menu. The mode defaults to classic.

Controls:
  Arrows/WASD/hjkl  - Slide tiles
  P/Space           - Pause
  Esc/B             - Pause, or leave when paused or over
  R                 - Restart
  Ctrl+S            - Save a screenshot to ~/.t2048/screenshots
  Q/Ctrl+C          - Quit

Examples:
  t2048 play
  t2048 play campaign
  t2048 play campaign --level 5
  t2048 play classic --seed 42`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(t2048.ModeClassic), string(t2048.ModeCampaign)},
	Run:       runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign start level (1-10)")
}

// gameIDForMode maps a mode name (or a registered ID) to a registry ID.
func gameIDForMode(mode string) (string, error) {
	switch strings.ToLower(mode) {
	case "", string(t2048.ModeClassic), t2048.IDClassic:
		return t2048.IDClassic, nil
	case string(t2048.ModeCampaign), t2048.IDCampaign:
		return t2048.IDCampaign, nil
	}
	return "", fmt.Errorf("unknown mode %q (want classic or campaign)", mode)
}

func runPlay(cmd *cobra.Command, args []string) {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	}
	gameID, err := gameIDForMode(mode)
	if err != nil {
		fail("%v", err)
	}

	if flagLevel != 0 {
		if gameID != t2048.IDCampaign {
			fail("--level only applies to campaign mode")
		}
		if flagLevel < 1 || flagLevel > t2048.LevelCount() {
			fail("level must be between 1 and %d", t2048.LevelCount())
		}
	}

	cfg := loadConfig()
	logger, closeLog := tuiLogger(cfg)
	defer closeLog()

	game, err := tui.StartGame(gameID, flagLevel)
	if err != nil {
		fail("creating game: %v", err)
	}

	store := openStore(cmd.Context(), cfg, logger)

	_, runErr := tui.Run(game, store, runtimeConfig(cfg), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}

	if game.State().Score > 0 {
		fmt.Println(game.ShareText())
	}
}
