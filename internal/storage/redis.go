package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/tui-2048/internal/config"
)

// RedisStore keeps one sorted set per game, scored by the game score.
// Members are JSON-encoded ScoreEntry values; IDs come from a counter key.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ ScoreStore = (*RedisStore)(nil)

// OpenRedis connects to redis and verifies the connection.
func OpenRedis(ctx context.Context, cfg config.Redis) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("storage: failed to connect to redis at %s: %w", cfg.Addr(), err)
	}

	return NewRedisStore(client, cfg.KeyPrefix), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "t2048"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) scoresKey(gameID string) string {
	return s.prefix + ":scores:" + gameID
}

func (s *RedisStore) seqKey() string {
	return s.prefix + ":scores:seq"
}

// SaveScore adds the entry to the game's leaderboard.
func (s *RedisStore) SaveScore(ctx context.Context, e ScoreEntry) (int64, error) {
	id, err := s.client.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot allocate score id: %w", err)
	}

	e.ID = id
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC().Truncate(time.Second)

	member, err := json.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("storage: could not marshal score: %w", err)
	}

	err = s.client.ZAdd(ctx, s.scoresKey(e.GameID), redis.Z{
		Score:  float64(e.Score),
		Member: member,
	}).Err()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	return id, nil
}

// TopScores returns the best entries. Equal scores are ordered by member,
// not by insertion.
func (s *RedisStore) TopScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	members, err := s.client.ZRevRange(ctx, s.scoresKey(gameID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}

	entries := make([]ScoreEntry, 0, len(members))
	for _, m := range members {
		var e ScoreEntry
		if err := json.Unmarshal([]byte(m), &e); err != nil {
			return nil, fmt.Errorf("storage: failed to unmarshal score: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// HighScore returns the top score for the game, or 0 if none exist.
func (s *RedisStore) HighScore(ctx context.Context, gameID string) (int, error) {
	top, err := s.client.ZRevRangeWithScores(ctx, s.scoresKey(gameID), 0, 0).Result()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if len(top) == 0 {
		return 0, nil
	}
	return int(top[0].Score), nil
}

// ClearScores deletes the game's leaderboard.
func (s *RedisStore) ClearScores(ctx context.Context, gameID string) error {
	if err := s.client.Del(ctx, s.scoresKey(gameID)).Err(); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
