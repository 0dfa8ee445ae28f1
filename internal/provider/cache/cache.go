// Package cache decorates an Invoker with redis get-or-compute
// semantics keyed by operation and bound parameters.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/common/metrics"
	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/internal/provider"
)

type Config struct {
	TTL time.Duration
}

type cachingInvoker struct {
	next   provider.Invoker
	client *redis.Client
	config *Config
	logger logger.Logger
}

// Wrap returns a Middleware that serves repeated invocations from
// redis. Cache transport errors degrade to pass-through; only
// successful payloads are stored.
func Wrap(client *redis.Client, config *Config, log logger.Logger) provider.Middleware {
	return func(next provider.Invoker) provider.Invoker {
		return &cachingInvoker{
			next:   next,
			client: client,
			config: config,
			logger: log.WithFields(map[string]interface{}{"component": "provider-cache"}),
		}
	}
}

func (c *cachingInvoker) Invoke(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
	key := Key(operation, params)

	if val, err := c.client.Get(ctx, key).Result(); err == nil {
		var payload models.Payload
		if err := json.Unmarshal([]byte(val), &payload); err == nil {
			metrics.CacheRequests.WithLabelValues("hit").Inc()
			return payload, nil
		}
		// Unreadable entry: drop it and fall through to the source.
		c.client.Del(ctx, key)
	}
	metrics.CacheRequests.WithLabelValues("miss").Inc()

	payload, failure := c.next.Invoke(ctx, operation, params)
	if failure != nil {
		return nil, failure
	}

	if data, err := json.Marshal(payload); err == nil {
		if err := c.client.Set(ctx, key, data, c.config.TTL).Err(); err != nil {
			c.logger.Warn("cache store failed", map[string]interface{}{
				"operation": operation,
				"error":     err.Error(),
			})
		}
	}

	return payload, nil
}

// Key derives a deterministic cache key from the operation name and
// parameter map. Parameters are serialized in sorted key order so the
// same call always maps to the same key.
func Key(operation string, params map[string]interface{}) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%v;", k, params[k])
	}

	return fmt.Sprintf("nbaq:%s:%s", operation, hex.EncodeToString(h.Sum(nil))[:16])
}
