// Package validate implements the checks fixture tables attach to tool
// calls: textual response assertions and live AWS resource verification.
package validate

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/awslabs/dataprocessing-mcp-harness/internal/extract"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/testcase"
)

// ContainsText asserts that the tool response's text content contains
// Expected. When the text is itself a JSON envelope, the embedded
// content[0].text is checked instead, along with the optional count fields.
type ContainsText struct {
	Expected    string
	Count       *int
	BucketCount *int
}

// Validate implements testcase.Validator.
func (v ContainsText) Validate(_ context.Context, _ map[string]any, response map[string]any, _ map[string]map[string]any) testcase.ValidationResult {
	raw, err := extract.Extract(response, "result.content[0].text")
	if err != nil {
		return testcase.Failf("response has no text content: %v", err)
	}

	text, ok := raw.(string)
	if !ok {
		return testcase.Failf("text content is %T, not a string", raw)
	}

	var envelope map[string]any
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		// Not a JSON envelope; plain error messages land here.
		if strings.Contains(text, v.Expected) {
			return testcase.Pass("response text contains expected string")
		}
		return testcase.Failf("expected %q in response text %q", v.Expected, text)
	}

	// Only the embedded content text counts; a match elsewhere in the
	// envelope (keys, other fields) is not a match.
	target := ""
	if inner, err := extract.Extract(envelope, "content[0].text"); err == nil {
		if s, ok := inner.(string); ok {
			target = s
		}
	}

	if !strings.Contains(target, v.Expected) {
		return testcase.Failf("expected %q in response text %q", v.Expected, target)
	}

	if res := checkCount(envelope, "count", v.Count); !res.Success {
		return res
	}
	if res := checkCount(envelope, "bucket_count", v.BucketCount); !res.Success {
		return res
	}

	return testcase.Pass("response text contains expected string")
}

func checkCount(envelope map[string]any, field string, want *int) testcase.ValidationResult {
	if want == nil {
		return testcase.Pass("")
	}

	raw, ok := envelope[field]
	if !ok {
		return testcase.Failf("response is missing %q", field)
	}

	got, ok := raw.(float64)
	if !ok || got != float64(*want) {
		return testcase.Failf("%s: expected %d, got %v", field, *want, raw)
	}

	return testcase.Pass("")
}
