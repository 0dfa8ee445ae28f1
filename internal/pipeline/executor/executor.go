// Package executor runs execution plans against a provider. Calls in
// the same group run concurrently; groups run in ascending index order
// with a full barrier between them.
package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ghadfield32/nba-query-engine/internal/common/config"
	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/common/metrics"
	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/internal/provider"
)

// Executor fans plan groups out over a provider and collects results.
type Executor struct {
	provider provider.Invoker
	config   config.PipelineConfig
	logger   logger.Logger
}

// New creates an executor over the given provider.
func New(inv provider.Invoker, cfg config.PipelineConfig, log logger.Logger) *Executor {
	return &Executor{
		provider: inv,
		config:   cfg,
		logger:   log,
	}
}

// Execute runs every call in the plan. A failed call never cancels its
// siblings: each call finishes on its own and reports its own result.
// The returned result always holds one entry per plan call.
func (e *Executor) Execute(ctx context.Context, plan *models.ExecutionPlan) *models.ExecutionResult {
	started := time.Now()

	result := &models.ExecutionResult{
		Results: make(map[string]models.ToolResult, len(plan.Calls)),
		Order:   make([]string, 0, len(plan.Calls)),
	}
	for _, call := range plan.Calls {
		result.Order = append(result.Order, call.ID)
	}

	var mu sync.Mutex
	groups := plan.GroupCount()
	for g := 0; g < groups; g++ {
		calls := plan.CallsInGroup(g)
		if len(calls) == 0 {
			continue
		}

		var wg sync.WaitGroup
		for _, call := range calls {
			wg.Add(1)
			go func(call models.ToolCall) {
				defer wg.Done()
				res := e.invoke(ctx, call)
				mu.Lock()
				result.Results[call.ID] = res
				mu.Unlock()
			}(call)
		}
		wg.Wait()
	}

	result.Duration = time.Since(started)
	succeeded := result.SuccessCount()
	result.AllSuccess = len(plan.Calls) > 0 && succeeded == len(plan.Calls)
	result.Partial = succeeded > 0 && succeeded < len(plan.Calls)

	if result.Partial {
		metrics.PartialAnswers.Inc()
	}
	e.logger.Info("Plan executed", map[string]interface{}{
		"template_id": plan.TemplateID,
		"calls":       len(plan.Calls),
		"succeeded":   succeeded,
		"duration_ms": result.Duration.Milliseconds(),
	})

	return result
}

// invoke runs one tool call under the per-call timeout, converting any
// provider panic into a failed result so one bad call cannot take the
// request down.
func (e *Executor) invoke(ctx context.Context, call models.ToolCall) (result models.ToolResult) {
	callCtx := ctx
	if timeout := config.GetDuration(e.config.CallTimeout); timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Provider panicked", map[string]interface{}{
				"call_id":   call.ID,
				"operation": call.Operation,
				"panic":     fmt.Sprintf("%v", r),
			})
			result = models.ToolResult{
				CallID:    call.ID,
				Operation: call.Operation,
				Failure:   models.NewFailure(models.FailureUpstreamUnavailable, "provider panic: %v", r),
				Duration:  time.Since(started),
			}
			metrics.ToolCallsTotal.WithLabelValues(call.Operation, "failure").Inc()
		}
	}()

	payload, failure := e.provider.Invoke(callCtx, call.Operation, call.Params)
	elapsed := time.Since(started)

	if failure != nil {
		metrics.ToolCallsTotal.WithLabelValues(call.Operation, "failure").Inc()
		metrics.ToolCallFailures.WithLabelValues(call.Operation, string(failure.Kind)).Inc()
		e.logger.Warn("Tool call failed", map[string]interface{}{
			"call_id":   call.ID,
			"operation": call.Operation,
			"kind":      string(failure.Kind),
			"message":   failure.Message,
		})
		return models.ToolResult{
			CallID:    call.ID,
			Operation: call.Operation,
			Failure:   failure,
			Duration:  elapsed,
		}
	}

	metrics.ToolCallsTotal.WithLabelValues(call.Operation, "success").Inc()
	return models.ToolResult{
		CallID:    call.ID,
		Operation: call.Operation,
		Success:   true,
		Payload:   payload,
		Duration:  elapsed,
	}
}
