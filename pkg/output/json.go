package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/packcheck/pkg/models"
)

// JSONFormatter formats scan output as a single JSON document for
// automation and scripting
type JSONFormatter struct {
	writer io.Writer
}

// JSONReport is the top-level JSON output document
type JSONReport struct {
	Generated   string           `json:"generated"`
	OperationID string           `json:"operation_id"`
	TargetPath  string           `json:"target_path"`
	DryRun      bool             `json:"dry_run"`
	DurationMs  int64            `json:"duration_ms"`
	Status      string           `json:"status"`
	Summary     JSONSummary      `json:"summary"`
	Results     []JSONComparison `json:"results"`
	Errors      []JSONError      `json:"errors,omitempty"`
}

// JSONSummary mirrors models.Summary plus cleanup counters
type JSONSummary struct {
	PairsFound          int     `json:"pairs_found"`
	PairsCompared       int     `json:"pairs_compared"`
	Identical           int     `json:"identical"`
	Different           int     `json:"different"`
	IdenticalPercentage float64 `json:"identical_percentage"`
	DirsDeleted         int     `json:"dirs_deleted"`
	BytesReclaimed      int64   `json:"bytes_reclaimed"`
}

// JSONComparison represents one archive-directory comparison
type JSONComparison struct {
	ArchivePath   string   `json:"archive_path"`
	DirectoryPath string   `json:"directory_path"`
	Identical     bool     `json:"identical"`
	Differences   []string `json:"differences,omitempty"`
}

// JSONError represents a scan error
type JSONError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter; JSON output is emitted only at Complete
func (f *JSONFormatter) Start(writer io.Writer, totalPairs int) error {
	f.writer = writer
	return nil
}

// Pair collects nothing per pair; results are taken from the final report
func (f *JSONFormatter) Pair(result *models.ComparisonResult) error {
	return nil
}

// Complete emits the full report as indented JSON
func (f *JSONFormatter) Complete(report *models.ScanReport) error {
	if f.writer == nil {
		return nil
	}

	summary := models.Summarize(report.Results)

	doc := JSONReport{
		Generated:   time.Now().Format(time.RFC3339),
		OperationID: report.OperationID,
		TargetPath:  report.TargetPath,
		DryRun:      report.DryRun,
		DurationMs:  report.Duration.Milliseconds(),
		Status:      string(report.Status),
		Summary: JSONSummary{
			PairsFound:          report.Stats.PairsFound,
			PairsCompared:       report.Stats.PairsCompared,
			Identical:           summary.Identical,
			Different:           summary.Different,
			IdenticalPercentage: summary.IdenticalPercentage,
			DirsDeleted:         report.Stats.DirsDeleted,
			BytesReclaimed:      report.Stats.BytesReclaimed,
		},
	}

	for _, r := range report.Results {
		doc.Results = append(doc.Results, JSONComparison{
			ArchivePath:   r.ArchivePath,
			DirectoryPath: r.DirectoryPath,
			Identical:     r.Identical,
			Differences:   r.Differences,
		})
	}
	for _, e := range report.Errors {
		doc.Errors = append(doc.Errors, JSONError{Path: e.Path, Message: e.Message})
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// Error reports nothing per error; errors surface in the final report
func (f *JSONFormatter) Error(err error) error {
	return nil
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
