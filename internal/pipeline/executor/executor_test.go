package executor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghadfield32/nba-query-engine/internal/common/config"
	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/internal/provider"
)

func testConfig() config.PipelineConfig {
	return config.PipelineConfig{CallTimeout: 2000}
}

func planOf(calls ...models.ToolCall) *models.ExecutionPlan {
	multi := false
	for _, c := range calls {
		if c.Group > 0 {
			multi = true
		}
	}
	return &models.ExecutionPlan{TemplateID: "test-template", Calls: calls, MultiGroup: multi}
}

func okProvider(payload models.Payload) provider.Invoker {
	return provider.Func(func(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
		return payload, nil
	})
}

func TestExecuteAllSuccess(t *testing.T) {
	e := New(okProvider(models.Payload{"value": 1}), testConfig(), logger.NewTestLogger(t))

	result := e.Execute(context.Background(), planOf(
		models.ToolCall{ID: "c-00", Operation: provider.OpPlayerStats, Group: 0},
		models.ToolCall{ID: "c-01", Operation: provider.OpPlayerStats, Group: 0},
	))

	assert.True(t, result.AllSuccess)
	assert.False(t, result.Partial)
	assert.Len(t, result.Results, 2)
	assert.Equal(t, []string{"c-00", "c-01"}, result.Order)
	for _, res := range result.Results {
		assert.True(t, res.Success)
		assert.Nil(t, res.Failure)
	}
}

func TestExecuteGroupRunsConcurrently(t *testing.T) {
	const latency = 100 * time.Millisecond
	slow := provider.Func(func(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
		time.Sleep(latency)
		return models.Payload{}, nil
	})
	e := New(slow, testConfig(), logger.NewTestLogger(t))

	calls := make([]models.ToolCall, 4)
	for i := range calls {
		calls[i] = models.ToolCall{ID: string(rune('a' + i)), Operation: provider.OpTeamStats, Group: 0}
	}

	started := time.Now()
	result := e.Execute(context.Background(), planOf(calls...))
	elapsed := time.Since(started)

	assert.True(t, result.AllSuccess)
	// Four concurrent 100ms calls should take about one latency, not four.
	assert.Less(t, elapsed, 3*latency)
}

func TestExecuteGroupBarrier(t *testing.T) {
	var group0Done atomic.Bool
	var orderViolated atomic.Bool

	p := provider.Func(func(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
		switch operation {
		case provider.OpTeamStats:
			time.Sleep(50 * time.Millisecond)
			group0Done.Store(true)
		case provider.OpHeadToHead:
			if !group0Done.Load() {
				orderViolated.Store(true)
			}
		}
		return models.Payload{}, nil
	})
	e := New(p, testConfig(), logger.NewTestLogger(t))

	result := e.Execute(context.Background(), planOf(
		models.ToolCall{ID: "c-00", Operation: provider.OpTeamStats, Group: 0},
		models.ToolCall{ID: "c-01", Operation: provider.OpHeadToHead, Group: 1},
	))

	assert.True(t, result.AllSuccess)
	assert.False(t, orderViolated.Load(), "group 1 call started before group 0 finished")
}

func TestExecutePartialFailure(t *testing.T) {
	p := provider.Func(func(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
		if operation == provider.OpStandings {
			return nil, models.NewFailure(models.FailureUpstreamUnavailable, "standings backend down")
		}
		return models.Payload{"value": 1}, nil
	})
	e := New(p, testConfig(), logger.NewTestLogger(t))

	result := e.Execute(context.Background(), planOf(
		models.ToolCall{ID: "c-00", Operation: provider.OpTeamStats, Group: 0},
		models.ToolCall{ID: "c-01", Operation: provider.OpTeamStats, Group: 0},
		models.ToolCall{ID: "c-02", Operation: provider.OpStandings, Group: 0},
	))

	assert.False(t, result.AllSuccess)
	assert.True(t, result.Partial)
	assert.Equal(t, 2, result.SuccessCount())
	assert.InDelta(t, 2.0/3.0, result.SuccessFraction(), 0.001)

	failed := result.Results["c-02"]
	require.NotNil(t, failed.Failure)
	assert.Equal(t, models.FailureUpstreamUnavailable, failed.Failure.Kind)
	assert.True(t, failed.Failure.Retryable)
}

func TestExecuteFailureDoesNotCancelSiblings(t *testing.T) {
	var slowFinished atomic.Bool
	p := provider.Func(func(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
		if operation == provider.OpStandings {
			return nil, models.NewFailure(models.FailureRateLimited, "quota exhausted")
		}
		select {
		case <-time.After(60 * time.Millisecond):
			slowFinished.Store(true)
			return models.Payload{}, nil
		case <-ctx.Done():
			return nil, models.NewFailure(models.FailureUpstreamUnavailable, "canceled")
		}
	})
	e := New(p, testConfig(), logger.NewTestLogger(t))

	result := e.Execute(context.Background(), planOf(
		models.ToolCall{ID: "fast-fail", Operation: provider.OpStandings, Group: 0},
		models.ToolCall{ID: "slow-ok", Operation: provider.OpTeamStats, Group: 0},
	))

	assert.True(t, result.Partial)
	assert.True(t, slowFinished.Load(), "sibling was interrupted by an unrelated failure")
	assert.True(t, result.Results["slow-ok"].Success)
}

func TestExecuteTotalFailure(t *testing.T) {
	p := provider.Func(func(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
		return nil, models.NewFailure(models.FailureEntityNotFound, "no such row")
	})
	e := New(p, testConfig(), logger.NewTestLogger(t))

	result := e.Execute(context.Background(), planOf(
		models.ToolCall{ID: "c-00", Operation: provider.OpPlayerStats, Group: 0},
	))

	assert.False(t, result.AllSuccess)
	assert.False(t, result.Partial)
	assert.Equal(t, 0.0, result.SuccessFraction())
}

func TestExecuteEmptyPlan(t *testing.T) {
	e := New(okProvider(models.Payload{}), testConfig(), logger.NewTestLogger(t))

	result := e.Execute(context.Background(), planOf())

	assert.False(t, result.AllSuccess)
	assert.False(t, result.Partial)
	assert.Empty(t, result.Results)
}

func TestExecuteCallTimeout(t *testing.T) {
	p := provider.Func(func(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
		select {
		case <-time.After(500 * time.Millisecond):
			return models.Payload{}, nil
		case <-ctx.Done():
			return nil, models.NewFailure(models.FailureUpstreamUnavailable, "deadline exceeded")
		}
	})
	e := New(p, config.PipelineConfig{CallTimeout: 50}, logger.NewTestLogger(t))

	result := e.Execute(context.Background(), planOf(
		models.ToolCall{ID: "c-00", Operation: provider.OpRecentGames, Group: 0},
	))

	res := result.Results["c-00"]
	require.NotNil(t, res.Failure)
	assert.Equal(t, models.FailureUpstreamUnavailable, res.Failure.Kind)
}

func TestExecuteRecoversProviderPanic(t *testing.T) {
	p := provider.Func(func(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
		if operation == provider.OpHeadToHead {
			panic("nil map write")
		}
		return models.Payload{}, nil
	})
	e := New(p, testConfig(), logger.NewNoOpLogger())

	result := e.Execute(context.Background(), planOf(
		models.ToolCall{ID: "c-00", Operation: provider.OpTeamStats, Group: 0},
		models.ToolCall{ID: "c-01", Operation: provider.OpHeadToHead, Group: 0},
	))

	assert.True(t, result.Partial)
	require.NotNil(t, result.Results["c-01"].Failure)
	assert.Equal(t, models.FailureUpstreamUnavailable, result.Results["c-01"].Failure.Kind)
}
