package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/internal/provider"
)

func newCachedInvoker(t *testing.T, next provider.Invoker) (provider.Invoker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mw := Wrap(client, &Config{TTL: 5 * time.Minute}, logger.NewTestLogger(t))
	return mw(next), mr
}

func countingProvider(calls *atomic.Int32, payload models.Payload) provider.Invoker {
	return provider.Func(func(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
		calls.Add(1)
		return payload, nil
	})
}

func TestCacheServesRepeatCalls(t *testing.T) {
	var calls atomic.Int32
	inv, _ := newCachedInvoker(t, countingProvider(&calls, models.Payload{"PTS": 25.1}))

	params := map[string]interface{}{"player_id": "2544", "season": "2025-26"}

	first, failure := inv.Invoke(context.Background(), provider.OpPlayerStats, params)
	require.Nil(t, failure)
	second, failure := inv.Invoke(context.Background(), provider.OpPlayerStats, params)
	require.Nil(t, failure)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first["PTS"], second["PTS"])
}

func TestCacheKeyIgnoresParamOrder(t *testing.T) {
	a := Key(provider.OpPlayerStats, map[string]interface{}{"player_id": "2544", "season": "2025-26"})
	b := Key(provider.OpPlayerStats, map[string]interface{}{"season": "2025-26", "player_id": "2544"})
	c := Key(provider.OpPlayerStats, map[string]interface{}{"player_id": "201142", "season": "2025-26"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	var calls atomic.Int32
	failing := provider.Func(func(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
		calls.Add(1)
		return nil, models.NewFailure(models.FailureUpstreamUnavailable, "down")
	})
	inv, _ := newCachedInvoker(t, failing)

	for i := 0; i < 2; i++ {
		_, failure := inv.Invoke(context.Background(), provider.OpStandings, nil)
		require.NotNil(t, failure)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestCacheExpiry(t *testing.T) {
	var calls atomic.Int32
	inv, mr := newCachedInvoker(t, countingProvider(&calls, models.Payload{"ok": true}))

	params := map[string]interface{}{"season": "2025-26"}
	_, failure := inv.Invoke(context.Background(), provider.OpStandings, params)
	require.Nil(t, failure)

	mr.FastForward(10 * time.Minute)

	_, failure = inv.Invoke(context.Background(), provider.OpStandings, params)
	require.Nil(t, failure)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCacheDegradesWhenRedisDown(t *testing.T) {
	var calls atomic.Int32
	inv, mr := newCachedInvoker(t, countingProvider(&calls, models.Payload{"ok": true}))
	mr.Close()

	payload, failure := inv.Invoke(context.Background(), provider.OpStandings, nil)
	require.Nil(t, failure)
	assert.Equal(t, true, payload["ok"])
	assert.Equal(t, int32(1), calls.Load())
}

func TestCacheDropsCorruptEntries(t *testing.T) {
	var calls atomic.Int32
	inv, mr := newCachedInvoker(t, countingProvider(&calls, models.Payload{"ok": true}))

	params := map[string]interface{}{"season": "2025-26"}
	require.NoError(t, mr.Set(Key(provider.OpStandings, params), "{corrupt"))

	payload, failure := inv.Invoke(context.Background(), provider.OpStandings, params)
	require.Nil(t, failure)
	assert.Equal(t, true, payload["ok"])
	assert.Equal(t, int32(1), calls.Load())
}
