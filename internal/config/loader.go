package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	fileName   = "t2048.yaml"
	localPath  = "configs/" + fileName
	envHeading = "Environment variables:"
)

// Load reads the configuration.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/t2048.yaml -> embedded default.
// T2048_* environment variables override whichever source was used.
func Load(customPath string) (Config, error) {
	base := embedded()

	// Try custom path first
	if customPath != "" {
		cfg := base
		if err := cleanenv.ReadConfig(customPath, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory.
	// Unreadable candidates are skipped.
	for _, path := range []string{userConfigPath(), localPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg := base
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			continue
		}
		cfg.Source = path
		return cfg, cfg.Validate()
	}

	// Use embedded default YAML
	cfg := base
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to read environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// embedded parses the embedded defaults, falling back to Default.
func embedded() Config {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default()
	}
	cfg.Source = "embedded"
	return cfg
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", "config.yaml")
}

// Describe lists the environment variables Load understands.
func Describe() (string, error) {
	var cfg Config
	heading := envHeading
	text, err := cleanenv.GetDescription(&cfg, &heading)
	if err != nil {
		return "", fmt.Errorf("config: describe: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Marshal renders the config as YAML.
func Marshal(cfg Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return out, nil
}
