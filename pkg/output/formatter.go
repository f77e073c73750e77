package output

import (
	"io"

	"github.com/sdejongh/packcheck/pkg/models"
)

// Formatter defines the interface for scan output formatting
// Implementations include human-readable, JSON and progress-bar formatters
type Formatter interface {
	// Start initializes the formatter for a new scan over totalPairs
	// candidate pairs
	Start(writer io.Writer, totalPairs int) error

	// Pair reports the outcome of one archive-directory comparison
	Pair(result *models.ComparisonResult) error

	// Complete finalizes output and displays the scan summary
	Complete(report *models.ScanReport) error

	// Error reports an error during the scan
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
