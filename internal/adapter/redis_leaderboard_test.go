package adapter

import (
	"context"
	"testing"

	"trivia-quiz/internal/quiz"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ quiz.ScoreSink = (*RedisLeaderboard)(nil)

func newTestBoard(t *testing.T) *RedisLeaderboard {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLeaderboard(client, "")
}

func TestRedisLeaderboard_AddScore(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an entry on first submission", func(t *testing.T) {
		board := newTestBoard(t)
		require.NoError(t, board.AddScore(ctx, "new category", "new user", 42))

		scores, err := board.UserScores(ctx, "new user")
		require.NoError(t, err)
		require.Len(t, scores, 1)
		assert.Equal(t, 42, scores[0].Score)
	})

	t.Run("keeps the maximum of all submissions", func(t *testing.T) {
		board := newTestBoard(t)
		for _, s := range []int{42, 47, 40} {
			require.NoError(t, board.AddScore(ctx, "some category", "some user", s))
		}
		scores, err := board.UserScores(ctx, "some user")
		require.NoError(t, err)
		require.Len(t, scores, 1)
		assert.Equal(t, 47, scores[0].Score)
	})
}

func TestRedisLeaderboard_TopScoresForCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("sorts descending and caps at n", func(t *testing.T) {
		board := newTestBoard(t)
		require.NoError(t, board.AddScore(ctx, "c", "u1", 3))
		require.NoError(t, board.AddScore(ctx, "c", "u2", 5))
		require.NoError(t, board.AddScore(ctx, "c", "u3", 1))

		top, err := board.TopScoresForCategory(ctx, "c", 2)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "u2", top[0].Username)
		assert.Equal(t, "u1", top[1].Username)
	})

	t.Run("breaks exact ties by submission order", func(t *testing.T) {
		board := newTestBoard(t)
		require.NoError(t, board.AddScore(ctx, "c", "first", 7))
		require.NoError(t, board.AddScore(ctx, "c", "second", 7))

		top, err := board.TopScoresForCategory(ctx, "c", 2)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "first", top[0].Username)
	})

	t.Run("unknown category and non-positive n are empty", func(t *testing.T) {
		board := newTestBoard(t)
		require.NoError(t, board.AddScore(ctx, "c", "u", 1))

		top, err := board.TopScoresForCategory(ctx, "unknown", 1)
		require.NoError(t, err)
		assert.Empty(t, top)

		top, err = board.TopScoresForCategory(ctx, "c", 0)
		require.NoError(t, err)
		assert.Empty(t, top)
	})
}

func TestRedisLeaderboard_UserScores(t *testing.T) {
	ctx := context.Background()
	board := newTestBoard(t)

	require.NoError(t, board.AddScore(ctx, "cat 1", "some user", 1))
	require.NoError(t, board.AddScore(ctx, "cat 2", "some user", 3))
	require.NoError(t, board.AddScore(ctx, "cat 3", "some user", 2))
	require.NoError(t, board.AddScore(ctx, "cat 1", "other user", 9))

	scores, err := board.UserScores(ctx, "some user")
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{scores[0].Score, scores[1].Score, scores[2].Score})

	scores, err = board.UserScores(ctx, "unknown user")
	require.NoError(t, err)
	assert.Empty(t, scores)
}
