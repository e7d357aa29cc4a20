package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Run a move script and print the result",
	Long: `Replay a deterministic move script and print every step as YAML.

Script format:
  seed: 42
  spawn4: 0.1              # optional
  board:                   # optional, else two spawned tiles
    - [2, 2, 0, 0]
    - [0, 0, 0, 0]
    - [0, 0, 0, 0]
    - [0, 0, 0, 0]
  moves: [left, up, right, down]

The same script always produces the same output.`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg, os.Stderr)

	data, err := os.ReadFile(args[0])
	if err != nil {
		fail("reading script: %v", err)
	}

	script, err := t2048.ParseScript(data)
	if err != nil {
		fail("%s: %v", args[0], err)
	}

	result, err := script.Run()
	if err != nil {
		fail("replay: %v", err)
	}
	logger.Debug("replay finished",
		"moves", len(script.Moves),
		"played", len(result.Steps),
		"score", result.Score,
		"game_over", result.GameOver,
	)

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	if err := enc.Encode(result); err != nil {
		fail("encoding result: %v", err)
	}
}
