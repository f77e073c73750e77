package output

import (
	"io"

	"github.com/cheggaaa/pb/v3"

	"github.com/sdejongh/packcheck/pkg/models"
)

// ProgressFormatter shows a progress bar while pairs are compared and
// defers to the human formatter for the final summary
type ProgressFormatter struct {
	bar   *pb.ProgressBar
	human *HumanFormatter
}

// NewProgressFormatter creates a progress bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{human: NewHumanFormatter()}
}

// Start initializes the progress bar over the candidate pairs
func (f *ProgressFormatter) Start(writer io.Writer, totalPairs int) error {
	// The human formatter only emits the summary once the bar finishes
	f.human.writer = writer
	f.human.totalPairs = totalPairs

	f.bar = pb.New(totalPairs)
	if writer != nil {
		f.bar.SetWriter(writer)
	}
	f.bar.Start()
	return nil
}

// Pair advances the bar by one compared pair
func (f *ProgressFormatter) Pair(result *models.ComparisonResult) error {
	if f.bar != nil {
		f.bar.Increment()
	}
	return nil
}

// Complete stops the bar and prints the summary
func (f *ProgressFormatter) Complete(report *models.ScanReport) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	return f.human.Complete(report)
}

// Error reports an error below the bar
func (f *ProgressFormatter) Error(err error) error {
	return f.human.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
