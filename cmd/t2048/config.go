package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
)

var flagEnvHelp bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration t2048 would run with, after the config file,
T2048_* environment variables and command-line flags are applied.

Examples:
  t2048 config
  t2048 config --config ./t2048.yaml
  t2048 config --env`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEnvHelp, "env", false, "List the supported environment variables")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagEnvHelp {
		text, err := config.Describe()
		if err != nil {
			fail("%v", err)
		}
		fmt.Println(text)
		return
	}

	cfg := loadConfig()
	out, err := config.Marshal(cfg)
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("# source: %s\n", cfg.Source)
	fmt.Print(string(out))
}
