package stdout

import (
	"strings"
	"testing"
	"time"

	"github.com/awslabs/dataprocessing-mcp-harness/internal/results"
)

func TestFormat(t *testing.T) {
	summary := results.NewSummary(1)
	summary.Add(results.GroupResult{
		Name: "glue_jobs",
		Cases: []results.CaseResult{
			{Name: "create_job", Tool: "manage_aws_glue_jobs", Status: results.StatusPassed, Duration: 1200 * time.Millisecond},
			{Name: "delete_job", Tool: "manage_aws_glue_jobs", Status: results.StatusFailed, Duration: 300 * time.Millisecond, Messages: []string{"resource still exists after get_job"}},
			{Name: "get_job", Tool: "manage_aws_glue_jobs", Status: results.StatusSkipped},
		},
		Duration: 1500 * time.Millisecond,
	})
	summary.SetTotalDuration(2 * time.Second)

	var sb strings.Builder
	if err := NewWithWriter(&sb).Format(summary); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	out := sb.String()
	for _, want := range []string{
		"glue_jobs:",
		"create_job: Passed (1200 ms)",
		"delete_job: Failed (300 ms)",
		"resource still exists after get_job",
		"get_job: Skipped",
		"Executed cases:  3",
		"Passed cases:    1 (33.3%)",
		"Failed cases:    1 (33.3%)",
		"Skipped cases:   1",
		"Duration:        2000 ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatEmptySummary(t *testing.T) {
	var sb strings.Builder
	if err := NewWithWriter(&sb).Format(results.NewSummary(0)); err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if !strings.Contains(sb.String(), "Executed groups: 0") {
		t.Errorf("unexpected output:\n%s", sb.String())
	}
}
