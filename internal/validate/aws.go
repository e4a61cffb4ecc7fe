package validate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/awslabs/dataprocessing-mcp-harness/internal/awsops"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/extract"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/inject"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/testcase"
)

// requiredTags are stamped on every resource the server manages.
var requiredTags = []string{"CreatedAt", "ManagedBy", "ResourceType"}

const managedByValue = "DataprocessingMcpServer"

// AWSResource verifies the real AWS resource behind a tool call by invoking
// the named read operation directly against the service APIs.
type AWSResource struct {
	Ops       awsops.Invoker
	Operation string

	// Params are the read operation's parameters, fixture-table snake_case.
	Params map[string]any

	// Injectable maps parameter keys to {{dep_name.path}} templates resolved
	// against earlier cases' responses before the operation runs.
	Injectable map[string]string

	// ExpectedKeys lists tool-input keys whose values must appear in the
	// read operation's response. Dot paths address nested fields.
	ExpectedKeys []string

	// ValidateAbsence inverts the check: the read must fail with a
	// NotFound-class error.
	ValidateAbsence bool
}

// Validate implements testcase.Validator.
func (v AWSResource) Validate(ctx context.Context, toolParams map[string]any, _ map[string]any, responses map[string]map[string]any) testcase.ValidationResult {
	params := make(map[string]any, len(v.Params))
	for k, val := range v.Params {
		params[k] = val
	}

	for key, template := range v.Injectable {
		resolved, err := inject.Resolve(template, responses)
		if err != nil {
			return testcase.Failf("failed to resolve %q: %v", template, err)
		}
		params[key] = resolved
	}

	out, err := v.Ops.Invoke(ctx, v.Operation, awsops.NormalizeParams(params))

	if v.ValidateAbsence {
		return v.checkAbsence(out, err)
	}
	if err != nil {
		return testcase.Failf("%s failed: %v", v.Operation, err)
	}

	if res := v.checkExpectedKeys(toolParams, out); !res.Success {
		return res
	}
	if res := v.checkManagementTags(ctx, params, out); !res.Success {
		return res
	}

	return testcase.Pass(fmt.Sprintf("%s verified the resource", v.Operation))
}

func (v AWSResource) checkAbsence(out map[string]any, err error) testcase.ValidationResult {
	if err != nil {
		if awsops.IsNotFound(err) {
			return testcase.Pass(fmt.Sprintf("%s confirmed the resource is gone", v.Operation))
		}
		return testcase.Failf("unexpected error checking absence via %s: %v", v.Operation, err)
	}

	// Trigger deletion is asynchronous; DELETING counts as gone.
	if v.Operation == "get_trigger" {
		if state, err := extract.Extract(out, "Trigger.State"); err == nil && state == "DELETING" {
			return testcase.Pass("trigger is being deleted")
		}
	}

	return testcase.Failf("resource still exists after %s", v.Operation)
}

func (v AWSResource) checkExpectedKeys(toolParams, out map[string]any) testcase.ValidationResult {
	if len(v.ExpectedKeys) == 0 {
		return testcase.Pass("")
	}

	spec := awsops.OperationPrefixMap[v.Operation]

	expectedSrc := toolParams
	if spec.InputKey != "" {
		if sub, ok := toolParams[spec.InputKey].(map[string]any); ok {
			expectedSrc = sub
		}
	}

	actualSrc := out
	if spec.ResponseKey != "" {
		if sub, ok := out[spec.ResponseKey].(map[string]any); ok {
			actualSrc = sub
		}
	}

	for _, key := range v.ExpectedKeys {
		expected, ok := lookupPath(expectedSrc, key)
		if !ok {
			expected, ok = lookupPath(toolParams, key)
		}
		if !ok {
			return testcase.Failf("expected key %q missing from tool input", key)
		}

		actual, ok := lookupPath(actualSrc, key)
		if !ok {
			return testcase.Failf("key %q missing from %s response", key, v.Operation)
		}

		if !matches(expected, actual) {
			return testcase.Failf("key %q: expected %v, got %v", key, expected, actual)
		}
	}

	return testcase.Pass("")
}

// lookupPath resolves a dot path against nested maps, trying the segment
// verbatim, in SDK case, then case-insensitively.
func lookupPath(src map[string]any, path string) (any, bool) {
	var cursor any = src
	for _, seg := range strings.Split(path, ".") {
		m, ok := cursor.(map[string]any)
		if !ok {
			return nil, false
		}

		val, ok := m[seg]
		if !ok {
			val, ok = m[awsops.CamelCase(seg)]
		}
		if !ok {
			target := strings.ToLower(strings.ReplaceAll(seg, "_", ""))
			for k, candidate := range m {
				if strings.ToLower(strings.ReplaceAll(k, "_", "")) == target {
					val, ok = candidate, true
					break
				}
			}
		}
		if !ok {
			return nil, false
		}
		cursor = val
	}
	return cursor, true
}

// matches compares loosely: list-valued actuals pass on membership, and
// scalars compare by value rather than by JSON number type.
func matches(expected, actual any) bool {
	if list, ok := actual.([]any); ok {
		for _, item := range list {
			if looseEqual(expected, item) {
				return true
			}
		}
		return false
	}
	return looseEqual(expected, actual)
}

func looseEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func (v AWSResource) checkManagementTags(ctx context.Context, params, out map[string]any) testcase.ValidationResult {
	if _, skip := awsops.SkipTagCheckOperations[v.Operation]; skip {
		return testcase.Pass("")
	}

	switch awsops.ServiceFor(v.Operation) {
	case "glue":
		return v.checkTagsByARN(ctx, "glue", params, "get_tags", "ResourceArn")
	case "athena":
		return v.checkTagsByARN(ctx, "athena", params, "list_tags_for_resource", "ResourceARN")
	case "emr":
		if v.Operation != "describe_cluster" {
			return testcase.Pass("")
		}
		raw, err := extract.Extract(out, "Cluster.Tags")
		if err != nil {
			return testcase.Failf("cluster response has no tags: %v", err)
		}
		list, ok := raw.([]any)
		if !ok {
			return testcase.Failf("cluster tags are %T, not a list", raw)
		}
		return verifyTags(tagListToMap(list))
	default:
		return testcase.Pass("")
	}
}

func (v AWSResource) checkTagsByARN(ctx context.Context, service string, params map[string]any, tagOp, arnKey string) testcase.ValidationResult {
	account, err := v.Ops.AccountID(ctx)
	if err != nil {
		return testcase.Failf("failed to resolve account ID: %v", err)
	}

	arn, err := awsops.ResourceARN(v.Operation, service, v.Ops.Region(), account, params)
	if err != nil {
		if errors.Is(err, awsops.ErrNoARNSpec) {
			return testcase.Pass("")
		}
		return testcase.Failf("failed to build resource ARN: %v", err)
	}

	resp, err := v.Ops.Invoke(ctx, tagOp, map[string]any{arnKey: arn})
	if err != nil {
		return testcase.Failf("%s failed for %s: %v", tagOp, arn, err)
	}

	tags := map[string]string{}
	switch raw := resp["Tags"].(type) {
	case map[string]any:
		for k, val := range raw {
			tags[k] = fmt.Sprintf("%v", val)
		}
	case []any:
		tags = tagListToMap(raw)
	}

	return verifyTags(tags)
}

func tagListToMap(list []any) map[string]string {
	tags := make(map[string]string, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		key, _ := entry["Key"].(string)
		value, _ := entry["Value"].(string)
		if key != "" {
			tags[key] = value
		}
	}
	return tags
}

func verifyTags(tags map[string]string) testcase.ValidationResult {
	for _, name := range requiredTags {
		if _, ok := tags[name]; !ok {
			return testcase.Failf("resource is missing management tag %q", name)
		}
	}
	if tags["ManagedBy"] != managedByValue {
		return testcase.Failf("ManagedBy tag is %q, expected %q", tags["ManagedBy"], managedByValue)
	}
	return testcase.Pass("")
}
