// Package harness executes fixture groups against a running MCP server:
// setup hooks, the tool call, validators, and group-end cleanups.
package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/awslabs/dataprocessing-mcp-harness/internal/inject"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/mcpserver"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/ratelimit"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/results"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/testcase"
)

// Group is a named sequence of cases sharing one injection scope. Cases run
// in order; cleanups run at group end in reverse order.
type Group struct {
	Name  string
	Cases []testcase.TestCase
}

// Runner drives groups against the server.
type Runner struct {
	caller  mcpserver.ToolCaller
	limiter *ratelimit.Limiter
}

// NewRunner creates a runner pacing tool calls with limiter.
func NewRunner(caller mcpserver.ToolCaller, limiter *ratelimit.Limiter) *Runner {
	if limiter == nil {
		limiter = ratelimit.New(0)
	}
	return &Runner{
		caller:  caller,
		limiter: limiter,
	}
}

// Run executes the groups sequentially and returns the run summary. A
// cancelled context stops before the next group; already-started groups
// still run their cleanups.
func (r *Runner) Run(ctx context.Context, groups []Group) *results.Summary {
	summary := results.NewSummary(len(groups))
	start := time.Now()

	for _, group := range groups {
		if ctx.Err() != nil {
			break
		}
		summary.Add(r.runGroup(ctx, group))
	}

	summary.SetTotalDuration(time.Since(start))
	return summary
}

type executed struct {
	tc       testcase.TestCase
	input    map[string]any
	response map[string]any
}

func (r *Runner) runGroup(ctx context.Context, group Group) results.GroupResult {
	logrus.WithField("group", group.Name).Info("running group")
	start := time.Now()

	result := results.GroupResult{Name: group.Name}
	responses := make(map[string]map[string]any, len(group.Cases))
	statuses := make(map[string]results.Status, len(group.Cases))
	var ran []executed

	for _, tc := range group.Cases {
		caseResult := r.runCase(ctx, tc, responses, statuses, &ran)
		statuses[tc.Name] = caseResult.Status
		result.Cases = append(result.Cases, caseResult)
	}

	// Reverse order, so dependent resources go before their dependencies.
	for i := len(ran) - 1; i >= 0; i-- {
		e := ran[i]
		for _, cleanup := range e.tc.CleanUps {
			if err := cleanup.CleanUp(ctx, e.input, e.response); err != nil {
				result.CleanupErrors = append(result.CleanupErrors,
					fmt.Errorf("%s: %w", e.tc.Name, err))
			}
		}
	}

	result.Duration = time.Since(start)
	return result
}

func (r *Runner) runCase(ctx context.Context, tc testcase.TestCase, responses map[string]map[string]any, statuses map[string]results.Status, ran *[]executed) results.CaseResult {
	caseResult := results.CaseResult{Name: tc.Name, Tool: tc.Tool}
	start := time.Now()
	defer func() {
		caseResult.Duration = time.Since(start)
	}()

	fail := func(format string, a ...any) results.CaseResult {
		caseResult.Status = results.StatusFailed
		caseResult.Messages = append(caseResult.Messages, fmt.Sprintf(format, a...))
		return caseResult
	}

	if ctx.Err() != nil {
		caseResult.Status = results.StatusSkipped
		caseResult.Messages = append(caseResult.Messages, "run cancelled")
		return caseResult
	}

	for _, dep := range tc.Dependencies {
		if statuses[dep] != results.StatusPassed {
			caseResult.Status = results.StatusSkipped
			caseResult.Messages = append(caseResult.Messages,
				fmt.Sprintf("dependency %q did not pass", dep))
			return caseResult
		}
	}

	for _, setup := range tc.Setup {
		if err := setup(ctx); err != nil {
			return fail("setup failed: %v", err)
		}
	}

	input, err := inject.Params(tc.Input, responses)
	if err != nil {
		return fail("failed to resolve input: %v", err)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return fail("rate limiter: %v", err)
	}

	response, err := r.caller.CallTool(ctx, tc.Tool, input)
	if err != nil {
		return fail("tool call failed: %v", err)
	}

	responses[tc.Name] = response
	*ran = append(*ran, executed{tc: tc, input: input, response: response})

	caseResult.Status = results.StatusPassed
	for _, validator := range tc.Validators {
		res := validator.Validate(ctx, input, response, responses)
		if !res.Success {
			caseResult.Status = results.StatusFailed
		}
		if res.Message != "" {
			caseResult.Messages = append(caseResult.Messages, res.Message)
		}
	}

	logrus.WithFields(logrus.Fields{
		"case":   tc.Name,
		"status": caseResult.Status,
	}).Debug("case finished")

	return caseResult
}
