// Package adapter contains infrastructure-backed implementations of the core
// interfaces.
package adapter

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/leaderboard"

	"github.com/redis/go-redis/v9"
)

// fieldSep joins category and username into a single hash field. Neither is
// expected to contain the unit separator control character.
const fieldSep = "\x1f"

// NewRedisClient creates and returns a new Redis client instance. It pings
// the server to ensure connectivity.
func NewRedisClient(redisCfg config.RedisConfig) (*redis.Client, error) {
	if redisCfg.Address == "" {
		return nil, fmt.Errorf("redis configuration is missing or address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", redisCfg.Address, err)
	}
	return client, nil
}

// RedisLeaderboard keeps best-score-per-(category, username) entries in
// Redis, so several quiz sessions in different processes can share one
// board. It mirrors the in-memory leaderboard's contract: monotonic-max
// updates, rankings sorted by score descending, ties kept in first-submission
// order.
type RedisLeaderboard struct {
	client *redis.Client
	prefix string
}

func NewRedisLeaderboard(client *redis.Client, prefix string) *RedisLeaderboard {
	if prefix == "" {
		prefix = "trivia:leaderboard"
	}
	return &RedisLeaderboard{client: client, prefix: prefix}
}

func (r *RedisLeaderboard) scoresKey() string { return r.prefix + ":scores" }
func (r *RedisLeaderboard) orderKey() string  { return r.prefix + ":order" }

// AddScore records score for the (category, username) pair, keeping the
// maximum of all submissions.
func (r *RedisLeaderboard) AddScore(ctx context.Context, category, username string, score int) error {
	field := category + fieldSep + username

	current, err := r.client.HGet(ctx, r.scoresKey(), field).Int()
	if err == redis.Nil {
		if err := r.client.HSet(ctx, r.scoresKey(), field, score).Err(); err != nil {
			return fmt.Errorf("failed to store score: %w", err)
		}
		if err := r.client.RPush(ctx, r.orderKey(), field).Err(); err != nil {
			return fmt.Errorf("failed to record entry order: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read stored score: %w", err)
	}

	if score > current {
		if err := r.client.HSet(ctx, r.scoresKey(), field, score).Err(); err != nil {
			return fmt.Errorf("failed to update score: %w", err)
		}
	}
	return nil
}

// TopScoresForCategory returns up to n entries for the category, best first.
func (r *RedisLeaderboard) TopScoresForCategory(ctx context.Context, category string, n int) ([]leaderboard.Entry, error) {
	if n <= 0 {
		return []leaderboard.Entry{}, nil
	}
	entries, err := r.entries(ctx, func(e leaderboard.Entry) bool {
		return e.Category == category
	})
	if err != nil {
		return nil, err
	}
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// UserScores returns the user's entries across all categories, best first.
func (r *RedisLeaderboard) UserScores(ctx context.Context, username string) ([]leaderboard.Entry, error) {
	return r.entries(ctx, func(e leaderboard.Entry) bool {
		return e.Username == username
	})
}

// entries walks the board in insertion order, keeps entries matching the
// filter, and sorts them by score descending with a stable sort.
func (r *RedisLeaderboard) entries(ctx context.Context, keep func(leaderboard.Entry) bool) ([]leaderboard.Entry, error) {
	order, err := r.client.LRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read entry order: %w", err)
	}
	scores, err := r.client.HGetAll(ctx, r.scoresKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}

	matched := make([]leaderboard.Entry, 0)
	for _, field := range order {
		category, username, ok := strings.Cut(field, fieldSep)
		if !ok {
			continue
		}
		raw, ok := scores[field]
		if !ok {
			continue
		}
		score, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt score for %q: %w", field, err)
		}
		entry := leaderboard.Entry{Username: username, Category: category, Score: score}
		if keep(entry) {
			matched = append(matched, entry)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})
	return matched, nil
}
