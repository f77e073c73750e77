package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/sdejongh/packcheck/pkg/models"
)

// HumanFormatter formats scan output in human-readable form
type HumanFormatter struct {
	writer     io.Writer
	totalPairs int
	seenPairs  int
	startTime  time.Time
}

var (
	identicalTag = color.New(color.FgGreen).Sprint("IDENTICAL")
	differentTag = color.New(color.FgYellow).Sprint("DIFFERENT")
)

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, totalPairs int) error {
	f.writer = writer
	f.totalPairs = totalPairs
	f.startTime = time.Now()

	if writer != nil {
		fmt.Fprintf(writer, "Comparing %d archive-directory pair(s)\n", totalPairs)
	}
	return nil
}

// Pair reports one comparison outcome
func (f *HumanFormatter) Pair(result *models.ComparisonResult) error {
	if f.writer == nil {
		return nil
	}
	f.seenPairs++

	tag := differentTag
	if result.Identical {
		tag = identicalTag
	}
	fmt.Fprintf(f.writer, "[%d/%d] %s %s <-> %s\n",
		f.seenPairs, f.totalPairs, tag, result.ArchivePath, result.DirectoryPath)

	for _, diff := range result.Differences {
		fmt.Fprintf(f.writer, "        %s\n", diff)
	}
	return nil
}

// Complete finalizes output and displays the summary
func (f *HumanFormatter) Complete(report *models.ScanReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	summary := models.Summarize(report.Results)

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Scan completed in %s\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Summary:\n")
	fmt.Fprintf(f.writer, "  Pairs found:     %d\n", report.Stats.PairsFound)
	fmt.Fprintf(f.writer, "  Pairs compared:  %d\n", report.Stats.PairsCompared)
	fmt.Fprintf(f.writer, "  Identical:       %d (%.1f%%)\n", summary.Identical, summary.IdenticalPercentage)
	fmt.Fprintf(f.writer, "  Different:       %d\n", summary.Different)

	if report.Stats.DirsDeleted > 0 || report.DryRun {
		verb := "deleted"
		if report.DryRun {
			verb = "would delete"
		}
		fmt.Fprintf(f.writer, "  Directories %s: %d (%s reclaimed)\n",
			verb, report.Stats.DirsDeleted, formatBytes(report.Stats.BytesReclaimed))
	}

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Status: %s\n", report.Status)

	if len(report.Errors) > 0 {
		fmt.Fprintf(f.writer, "\nErrors:\n")
		for _, err := range report.Errors {
			fmt.Fprintf(f.writer, "  %s: %s\n", err.Path, err.Message)
		}
	}

	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
