// t2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	t2048                    - Start the mode picker menu
//	t2048 play [mode]        - Play classic or campaign directly
//	t2048 list               - List game modes
//	t2048 scores [mode]      - Show high scores
//	t2048 serve              - Start SSH server for remote play
//	t2048 replay <script>    - Run a move script and print the result
//	t2048 config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default from config: 30)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Read configuration from this file
//	--log-level <level>  - Override the configured log level
//	--db <path>          - Override the SQLite database path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board with the arrow keys, WASD or hjkl. Equal tiles merge
into their sum; reach 2048 in classic mode or clear all ten campaign
levels.

Available commands:
  menu     - Interactive mode picker (default)
  play     - Play a mode directly
  list     - Show the game modes
  scores   - View high scores
  serve    - Start SSH server for remote play
  replay   - Run a YAML move script deterministically
  config   - Print the effective configuration

Examples:
  t2048
  t2048 play campaign --level 3
  t2048 scores classic
  t2048 serve
  t2048 replay moves.yaml`,
	SilenceUsage: true,
	Run:          runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (sqlite backend)")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints the error and exits like every other command.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
