package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// loadConfig reads the configuration and applies the global flags on top.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagDBPath != "" {
		cfg.Storage.Backend = config.BackendSQLite
		cfg.Storage.SQLitePath = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		fail("%v", err)
	}
	return cfg
}

// newLogger builds the process logger. The level was validated by loadConfig.
func newLogger(cfg config.Config, w io.Writer) *log.Logger {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           level,
	})
}

// tuiLogger logs to ~/.t2048/t2048.log so output does not tear the
// alternate screen. The returned func closes the file.
func tuiLogger(cfg config.Config) (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(cfg, io.Discard), func() {}
	}
	dir := filepath.Join(home, ".t2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(cfg, io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "t2048.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(cfg, io.Discard), func() {}
	}
	return newLogger(cfg, f), func() { f.Close() }
}

// openStore opens the configured backend. Failures are logged and nil is
// returned so games remain playable without persistence.
func openStore(ctx context.Context, cfg config.Config, logger *log.Logger) storage.ScoreStore {
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logger.Warn("could not open score storage", "backend", cfg.Storage.Backend, "err", err)
		return nil
	}
	logger.Debug("score storage opened", "backend", cfg.Storage.Backend)
	return store
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.TickRate,
		Seed:     flagSeed,
	}
}
