// Package testcase defines the declarative model shared by all fixture
// tables: a tool invocation plus the checks and teardown attached to it.
package testcase

import (
	"context"
	"fmt"
)

// ValidationResult is the outcome of a single validator.
type ValidationResult struct {
	Success bool
	Message string
}

// Pass creates a successful validation result.
func Pass(message string) ValidationResult {
	return ValidationResult{Success: true, Message: message}
}

// Fail creates a failed validation result.
func Fail(message string) ValidationResult {
	return ValidationResult{Success: false, Message: message}
}

// Failf creates a failed validation result with a formatted message.
func Failf(format string, a ...any) ValidationResult {
	return ValidationResult{Success: false, Message: fmt.Sprintf(format, a...)}
}

// Validator checks one aspect of a tool invocation after it completes.
//
// response is the decoded response of this case's tool call; responses maps
// already-executed case names to their responses, for validators that pull
// identifiers out of earlier results.
type Validator interface {
	Validate(ctx context.Context, toolParams map[string]any, response map[string]any, responses map[string]map[string]any) ValidationResult
}

// Cleanup tears down AWS state a case created. Cleanups run at group end in
// reverse case order, after every case in the group has been validated.
type Cleanup interface {
	CleanUp(ctx context.Context, toolParams map[string]any, response map[string]any) error
}

// SetupFunc provisions AWS prerequisites (buckets, scripts, decoy resources)
// before the case's tool call.
type SetupFunc func(ctx context.Context) error

// TestCase describes one MCP tool invocation and its expected effects.
type TestCase struct {
	// Name identifies the case and keys its response in the injection map.
	Name string

	// Tool is the MCP tool to call, e.g. "manage_aws_glue_jobs".
	Tool string

	// Input is the tool's argument object.
	Input map[string]any

	// Dependencies lists case names that must have succeeded first.
	// A failed or skipped dependency skips this case.
	Dependencies []string

	Setup      []SetupFunc
	Validators []Validator
	CleanUps   []Cleanup
}
