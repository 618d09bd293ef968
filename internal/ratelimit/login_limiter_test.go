package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLimiter(t *testing.T, now time.Time) (*RedisLimiter, redismock.ClientMock) {
	t.Helper()

	db, mock := redismock.NewClientMock()
	limiter := NewRedisLimiter(db, 3, time.Minute)
	limiter.now = func() time.Time { return now }

	return limiter, mock
}

func expectAttempt(mock redismock.ClientMock, key string, now time.Time, count int64) {
	mock.ExpectZRemRangeByScore(key, "0", strconv.FormatInt(now.Unix()-60, 10)).SetVal(0)
	mock.ExpectZAdd(key, redis.Z{Score: float64(now.Unix()), Member: strconv.FormatInt(now.UnixNano(), 10)}).SetVal(1)
	mock.ExpectZCard(key).SetVal(count)
	mock.ExpectExpire(key, time.Minute).SetVal(true)
}

func TestRedisLimiter_Check(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_100, 0)
	key := "admin_login_attempts:203.0.113.7"

	t.Run("Success - Within Window", func(t *testing.T) {
		limiter, mock := setupLimiter(t, now)
		expectAttempt(mock, key, now, 1)

		decision, err := limiter.Check(ctx, "203.0.113.7")

		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, 2, decision.Remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Last Allowed Attempt", func(t *testing.T) {
		limiter, mock := setupLimiter(t, now)
		expectAttempt(mock, key, now, 3)

		decision, err := limiter.Check(ctx, "203.0.113.7")

		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, 0, decision.Remaining)
	})

	t.Run("Failure - Limit Exceeded", func(t *testing.T) {
		limiter, mock := setupLimiter(t, now)
		expectAttempt(mock, key, now, 4)
		mock.ExpectZRangeWithScores(key, 0, 0).SetVal([]redis.Z{{Score: float64(now.Unix() - 45), Member: "x"}})

		decision, err := limiter.Check(ctx, "203.0.113.7")

		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, 15, decision.RetryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Pipeline Error", func(t *testing.T) {
		limiter, mock := setupLimiter(t, now)
		mock.ExpectZRemRangeByScore(key, "0", strconv.FormatInt(now.Unix()-60, 10)).SetErr(errors.New("connection refused"))

		_, err := limiter.Check(ctx, "203.0.113.7")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "recording login attempt")
	})
}

func TestDisabled(t *testing.T) {
	decision, err := Disabled{}.Check(context.Background(), "any")

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}
