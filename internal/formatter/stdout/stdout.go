// Package stdout renders run summaries as plain text.
package stdout

import (
	"fmt"
	"io"
	"os"

	"github.com/awslabs/dataprocessing-mcp-harness/internal/formatter"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/results"
)

const divider = "--------------------------------------------------------------------------------"

// Formatter implements stdout-based output formatting.
type Formatter struct {
	writer io.Writer
}

// New creates a formatter that writes to stdout.
func New() formatter.Formatter {
	return &Formatter{
		writer: os.Stdout,
	}
}

// NewWithWriter creates a formatter with a custom writer, useful for tests.
func NewWithWriter(writer io.Writer) formatter.Formatter {
	return &Formatter{
		writer: writer,
	}
}

// Format renders per-case lines, group totals, and the run summary.
func (f *Formatter) Format(s *results.Summary) error {
	for _, group := range s.Groups {
		if _, err := fmt.Fprintf(f.writer, "%s:\n", group.Name); err != nil {
			return err
		}

		for _, c := range group.Cases {
			line := fmt.Sprintf("  %s: %s (%d ms)", c.Name, c.Status, c.Duration.Milliseconds())
			if _, err := fmt.Fprintln(f.writer, line); err != nil {
				return err
			}
			if c.Status == results.StatusFailed {
				for _, msg := range c.Messages {
					if _, err := fmt.Fprintf(f.writer, "    %s\n", msg); err != nil {
						return err
					}
				}
			}
		}

		for _, err := range group.CleanupErrors {
			if _, werr := fmt.Fprintf(f.writer, "  cleanup failed: %v\n", err); werr != nil {
				return werr
			}
		}
	}

	if _, err := fmt.Fprintln(f.writer, divider); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(f.writer, "Executed groups: %d\n", len(s.Groups)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Executed cases:  %d\n", s.ExecutedCases); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Passed cases:    %d (%.1f%%)\n", s.PassedCases, s.SuccessPercentage()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Failed cases:    %d (%.1f%%)\n", s.FailedCases, s.FailurePercentage()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Skipped cases:   %d\n", s.SkippedCases); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Duration:        %d ms\n", s.TotalDuration.Milliseconds()); err != nil {
		return err
	}

	return nil
}
