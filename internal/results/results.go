// Package results accumulates per-case and per-group outcomes into the run
// summary the formatters render.
package results

import (
	"time"
)

// Status is a case's final outcome.
type Status string

const (
	StatusPassed  Status = "Passed"
	StatusFailed  Status = "Failed"
	StatusSkipped Status = "Skipped"
)

// CaseResult records one case's outcome.
type CaseResult struct {
	Name     string
	Tool     string
	Status   Status
	Duration time.Duration
	Messages []string
}

// GroupResult records the outcomes of one fixture group.
type GroupResult struct {
	Name          string
	Cases         []CaseResult
	Duration      time.Duration
	CleanupErrors []error
}

// Passed reports whether every case in the group passed.
func (g GroupResult) Passed() bool {
	for _, c := range g.Cases {
		if c.Status == StatusFailed {
			return false
		}
	}
	return len(g.CleanupErrors) == 0
}

// Summary aggregates group results across a run.
type Summary struct {
	Groups        []GroupResult
	ExecutedCases int
	PassedCases   int
	FailedCases   int
	SkippedCases  int
	FailedGroups  int
	TotalDuration time.Duration
}

// NewSummary creates an empty summary sized for the expected group count.
func NewSummary(expectedGroups int) *Summary {
	return &Summary{
		Groups: make([]GroupResult, 0, expectedGroups),
	}
}

// Add appends a group result and updates the tallies.
func (s *Summary) Add(group GroupResult) {
	s.Groups = append(s.Groups, group)

	for _, c := range group.Cases {
		s.ExecutedCases++
		switch c.Status {
		case StatusPassed:
			s.PassedCases++
		case StatusFailed:
			s.FailedCases++
		case StatusSkipped:
			s.SkippedCases++
		}
	}

	if !group.Passed() {
		s.FailedGroups++
	}
}

// SetTotalDuration records the wall-clock duration of the whole run.
func (s *Summary) SetTotalDuration(duration time.Duration) {
	s.TotalDuration = duration
}

// SuccessPercentage is the share of executed cases that passed.
func (s *Summary) SuccessPercentage() float64 {
	if s.ExecutedCases == 0 {
		return 0
	}
	return (float64(s.PassedCases) / float64(s.ExecutedCases)) * 100
}

// FailurePercentage is the share of executed cases that failed.
func (s *Summary) FailurePercentage() float64 {
	if s.ExecutedCases == 0 {
		return 0
	}
	return (float64(s.FailedCases) / float64(s.ExecutedCases)) * 100
}

// Failed reports whether any case or cleanup failed.
func (s *Summary) Failed() bool {
	return s.FailedCases > 0 || s.FailedGroups > 0
}
