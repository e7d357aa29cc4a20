// Package storage persists final game scores. Two backends implement
// ScoreStore: SQLite through the pure-Go modernc.org/sqlite driver (the
// default, no CGO) and a redis leaderboard built on sorted sets.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/tui-2048/internal/config"
)

// DefaultLimit is used when a non-positive limit is passed to TopScores.
const DefaultLimit = 10

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("storage: unknown backend")

// ScoreEntry represents a single finished game.
type ScoreEntry struct {
	ID        int64     `json:"id"`
	GameID    string    `json:"game_id"`
	Score     int       `json:"score"`
	MaxTile   int       `json:"max_tile"`
	Moves     int       `json:"moves"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoreStore records and ranks finished games.
type ScoreStore interface {
	// SaveScore records a finished game and returns its ID.
	// A zero CreatedAt is replaced with the current time.
	SaveScore(ctx context.Context, entry ScoreEntry) (int64, error)

	// TopScores returns up to limit entries for the game, best first.
	TopScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error)

	// HighScore returns the best score for the game, or 0.
	HighScore(ctx context.Context, gameID string) (int, error)

	// ClearScores deletes every entry for the game.
	ClearScores(ctx context.Context, gameID string) error

	Close() error
}

// Open connects to the backend selected in cfg.
func Open(ctx context.Context, cfg config.Storage) (ScoreStore, error) {
	switch cfg.Backend {
	case config.BackendSQLite, "":
		return OpenSQLite(cfg.SQLitePath)
	case config.BackendRedis:
		return OpenRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, cfg.Backend)
	}
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
