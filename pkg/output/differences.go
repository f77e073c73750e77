package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sdejongh/packcheck/pkg/models"
)

// WriteDifferencesReport writes a per-pair differences report to a file.
// Format can be "human" or "json". Nothing is written when every pair was
// identical.
func WriteDifferencesReport(report *models.ScanReport, path string, format string) error {
	var different []*models.ComparisonResult
	for _, r := range report.Results {
		if !r.Identical {
			different = append(different, r)
		}
	}
	if len(different) == 0 {
		// No differences - don't create empty file
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create differences file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		return writeDifferencesJSON(report, different, file)
	default: // "human"
		return writeDifferencesHuman(report, different, file)
	}
}

// writeDifferencesHuman writes differences in human-readable format
func writeDifferencesHuman(report *models.ScanReport, different []*models.ComparisonResult, w io.Writer) error {
	fmt.Fprintf(w, "Differences Report\n")
	fmt.Fprintf(w, "==================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Target: %s\n", report.TargetPath)
	fmt.Fprintf(w, "Dry Run: %v\n\n", report.DryRun)
	fmt.Fprintf(w, "Pairs with differences: %d\n\n", len(different))

	for _, r := range different {
		header := fmt.Sprintf("%s <-> %s (%d differences)",
			r.ArchivePath, r.DirectoryPath, len(r.Differences))
		fmt.Fprintf(w, "%s\n", header)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(header)))

		for _, diff := range r.Differences {
			fmt.Fprintf(w, "  %s\n", diff)
		}
		fmt.Fprintf(w, "\n")
	}

	return nil
}

// writeDifferencesJSON writes differences in JSON format
func writeDifferencesJSON(report *models.ScanReport, different []*models.ComparisonResult, w io.Writer) error {
	output := struct {
		Generated  string           `json:"generated"`
		TargetPath string           `json:"target_path"`
		DryRun     bool             `json:"dry_run"`
		TotalCount int              `json:"total_count"`
		Pairs      []JSONComparison `json:"pairs"`
	}{
		Generated:  time.Now().Format(time.RFC3339),
		TargetPath: report.TargetPath,
		DryRun:     report.DryRun,
		TotalCount: len(different),
	}

	for _, r := range different {
		output.Pairs = append(output.Pairs, JSONComparison{
			ArchivePath:   r.ArchivePath,
			DirectoryPath: r.DirectoryPath,
			Identical:     r.Identical,
			Differences:   r.Differences,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
