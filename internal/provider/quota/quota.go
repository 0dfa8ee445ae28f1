// Package quota guards the upstream stats provider with a token-bucket
// rate limiter and a circuit breaker. Denials surface as ordinary typed
// failures so the executor needs no special handling.
package quota

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/internal/provider"
)

type Config struct {
	RequestsPerSecond float64
	Burst             int
	BreakerMaxFails   int
	BreakerCooldown   time.Duration
}

type limitingInvoker struct {
	next    provider.Invoker
	limiter *rate.Limiter
	logger  logger.Logger
}

// WrapLimiter rejects calls that exceed the configured request rate.
// A denied call fails immediately with a rate-limited Failure instead
// of queueing, keeping plan latency bounded.
func WrapLimiter(config *Config, log logger.Logger) provider.Middleware {
	limiter := rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst)
	return func(next provider.Invoker) provider.Invoker {
		return &limitingInvoker{
			next:    next,
			limiter: limiter,
			logger:  log.WithFields(map[string]interface{}{"component": "quota"}),
		}
	}
}

func (l *limitingInvoker) Invoke(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
	if !l.limiter.Allow() {
		l.logger.Warn("call rejected by rate limiter", map[string]interface{}{
			"operation": operation,
		})
		return nil, models.NewFailure(models.FailureRateLimited, "%s: local quota exceeded", operation)
	}
	return l.next.Invoke(ctx, operation, params)
}

type breakerInvoker struct {
	next    provider.Invoker
	breaker *gobreaker.CircuitBreaker
	logger  logger.Logger
}

// WrapBreaker opens after consecutive upstream failures; while open,
// calls fail fast as upstream-unavailable.
func WrapBreaker(config *Config, log logger.Logger) provider.Middleware {
	settings := gobreaker.Settings{
		Name:    "stats-provider",
		Timeout: config.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.BreakerMaxFails)
		},
	}
	breaker := gobreaker.NewCircuitBreaker(settings)

	return func(next provider.Invoker) provider.Invoker {
		return &breakerInvoker{
			next:    next,
			breaker: breaker,
			logger:  log.WithFields(map[string]interface{}{"component": "breaker"}),
		}
	}
}

func (b *breakerInvoker) Invoke(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		payload, failure := b.next.Invoke(ctx, operation, params)
		if failure != nil {
			// Only infrastructure failures should trip the breaker;
			// a missing entity is a healthy upstream saying no.
			if failure.Kind == models.FailureUpstreamUnavailable {
				return failure, failure
			}
			return failure, nil
		}
		return payload, nil
	})

	if err != nil {
		if failure, ok := result.(*models.Failure); ok {
			return nil, failure
		}
		b.logger.Warn("circuit open", map[string]interface{}{
			"operation": operation,
		})
		return nil, models.NewFailure(models.FailureUpstreamUnavailable, "%s: circuit open", operation)
	}

	if failure, ok := result.(*models.Failure); ok {
		return nil, failure
	}
	return result.(models.Payload), nil
}
