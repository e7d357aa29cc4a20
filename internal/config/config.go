// Package config loads the t2048 runtime configuration: logging, the
// simulation tick rate, score storage and the SSH server. Values come from
// embedded YAML defaults, an optional config file and T2048_* environment
// variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/charmbracelet/log"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the complete runtime configuration.
type Config struct {
	LogLevel string  `yaml:"log_level" env:"T2048_LOG_LEVEL" env-description:"Log level (debug, info, warn, error)"`
	TickRate int     `yaml:"tick_rate" env:"T2048_TICK_RATE" env-description:"Simulation ticks per second"`
	Storage  Storage `yaml:"storage"`
	SSH      SSH     `yaml:"ssh"`

	// Source is the file the config was read from, or "embedded".
	Source string `yaml:"-"`
}

// Storage selects and configures the score backend.
type Storage struct {
	Backend    string `yaml:"backend" env:"T2048_STORAGE_BACKEND" env-description:"Score backend: sqlite or redis"`
	SQLitePath string `yaml:"sqlite_path" env:"T2048_SQLITE_PATH" env-description:"SQLite database path (~ is expanded)"`
	Redis      Redis  `yaml:"redis"`
}

// Redis holds the connection settings for the redis leaderboard.
type Redis struct {
	Host      string `yaml:"host" env:"T2048_REDIS_HOST" env-description:"Redis host"`
	Port      string `yaml:"port" env:"T2048_REDIS_PORT" env-description:"Redis port"`
	DB        int    `yaml:"db" env:"T2048_REDIS_DB" env-description:"Redis database number"`
	Password  string `yaml:"password" env:"T2048_REDIS_PASSWORD" env-description:"Redis password"`
	KeyPrefix string `yaml:"key_prefix" env:"T2048_REDIS_KEY_PREFIX" env-description:"Prefix for every redis key"`
}

// Addr returns host:port.
func (r Redis) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

// SSH configures `t2048 serve`.
type SSH struct {
	Address     string        `yaml:"address" env:"T2048_SSH_ADDRESS" env-description:"SSH listen address"`
	HostKeyPath string        `yaml:"host_key_path" env:"T2048_SSH_HOST_KEY" env-description:"SSH host key path"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"T2048_SSH_IDLE_TIMEOUT" env-description:"Disconnect idle sessions after this long"`
}

// Validate checks the values that would otherwise fail late at runtime.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, c.TickRate)
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("%w: storage.sqlite_path is empty", ErrInvalid)
		}
	case BackendRedis:
		if c.Storage.Redis.Host == "" || c.Storage.Redis.Port == "" {
			return fmt.Errorf("%w: storage.redis host and port are required", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalid, c.Storage.Backend)
	}

	if c.SSH.IdleTimeout < 0 {
		return fmt.Errorf("%w: ssh.idle_timeout is negative", ErrInvalid)
	}
	return nil
}
