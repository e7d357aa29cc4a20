package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
// It matches defaults/t2048.yaml and is used if that file fails to parse.
func Default() Config {
	return Config{
		LogLevel: "info",
		TickRate: 30,
		Storage: Storage{
			Backend:    BackendSQLite,
			SQLitePath: "~/.t2048/scores.db",
			Redis: Redis{
				Host:      "localhost",
				Port:      "6379",
				KeyPrefix: "t2048",
			},
		},
		SSH: SSH{
			Address:     "0.0.0.0:2048",
			HostKeyPath: ".ssh/t2048_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		Source: "embedded",
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}
