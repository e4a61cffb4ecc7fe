package results

import (
	"errors"
	"testing"
)

func TestSummaryTallies(t *testing.T) {
	s := NewSummary(2)

	s.Add(GroupResult{
		Name: "glue_jobs",
		Cases: []CaseResult{
			{Name: "a", Status: StatusPassed},
			{Name: "b", Status: StatusFailed},
			{Name: "c", Status: StatusSkipped},
		},
	})
	s.Add(GroupResult{
		Name: "athena_workgroups",
		Cases: []CaseResult{
			{Name: "d", Status: StatusPassed},
		},
	})

	if s.ExecutedCases != 4 || s.PassedCases != 2 || s.FailedCases != 1 || s.SkippedCases != 1 {
		t.Errorf("tallies = %+v", s)
	}
	if s.FailedGroups != 1 {
		t.Errorf("FailedGroups = %d, want 1", s.FailedGroups)
	}
	if got := s.SuccessPercentage(); got != 50 {
		t.Errorf("SuccessPercentage() = %v, want 50", got)
	}
	if !s.Failed() {
		t.Error("Failed() = false, want true")
	}
}

func TestGroupPassed(t *testing.T) {
	g := GroupResult{
		Cases: []CaseResult{
			{Status: StatusPassed},
			{Status: StatusSkipped},
		},
	}
	if !g.Passed() {
		t.Error("Passed() = false for passed and skipped cases, want true")
	}

	g.CleanupErrors = []error{errors.New("boom")}
	if g.Passed() {
		t.Error("Passed() = true despite cleanup error, want false")
	}
}

func TestEmptySummaryPercentages(t *testing.T) {
	s := NewSummary(0)
	if s.SuccessPercentage() != 0 || s.FailurePercentage() != 0 {
		t.Error("empty summary percentages should be 0")
	}
	if s.Failed() {
		t.Error("empty summary should not be failed")
	}
}
