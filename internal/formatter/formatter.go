package formatter

import (
	"github.com/awslabs/dataprocessing-mcp-harness/internal/results"
)

// Formatter renders a run summary. Implementations are responsible for
// determining the output device (stdout, file, etc.).
type Formatter interface {
	Format(summary *results.Summary) error
}
