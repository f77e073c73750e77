package models

import (
	"time"
)

// ScanReport represents the results of one scan operation over a target tree.
type ScanReport struct {
	// Operation details
	OperationID string
	TargetPath  string
	DryRun      bool

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Per-pair comparison results, in discovery order
	Results []*ComparisonResult

	// Errors encountered
	Errors []ScanError

	// Overall status
	Status ScanStatus
}

// Statistics holds scan operation metrics
type Statistics struct {
	// Candidate pairs discovered in the target tree
	PairsFound int

	// Pairs actually compared
	PairsCompared int

	// Comparison outcomes
	PairsIdentical int
	PairsDifferent int
	PairsErrored   int

	// Cleanup results (zero unless deletion was requested)
	DirsDeleted    int
	BytesReclaimed int64
}

// ScanStatus represents the overall result
type ScanStatus string

const (
	// StatusSuccess indicates the scan completed with no errors
	StatusSuccess ScanStatus = "success"
	// StatusPartial indicates some pairs failed to compare or delete
	StatusPartial ScanStatus = "partial"
	// StatusFailed indicates the scan itself failed
	StatusFailed ScanStatus = "failed"
)

// ScanError represents an error during a scan
type ScanError struct {
	Path      string
	Message   string
	Timestamp time.Time
}

// ExitCode returns the appropriate exit code for the scan status
func (s ScanStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	case StatusFailed:
		return 2
	default:
		return 2
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
