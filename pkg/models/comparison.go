package models

// ComparisonResult represents the outcome of comparing one archive with its
// candidate unpacked directory. It is created once per comparison and never
// mutated afterward.
type ComparisonResult struct {
	// ArchivePath is the archive side of the comparison
	ArchivePath string

	// DirectoryPath is the directory side of the comparison
	DirectoryPath string

	// Identical is true iff Differences is empty
	Identical bool

	// ArchiveFiles are the normalized archive entities actually compared,
	// retained for diagnostics
	ArchiveFiles []FileEntity

	// DirectoryFiles are the normalized directory entities actually compared
	DirectoryFiles []FileEntity

	// Differences holds human-readable diagnostics, lexicographically sorted
	// within each category so repeated runs produce identical output
	Differences []string
}

// String returns a one-line description of the comparison outcome.
func (r *ComparisonResult) String() string {
	status := "DIFFERENT"
	if r.Identical {
		status = "IDENTICAL"
	}
	return "Comparison: " + r.ArchivePath + " vs " + r.DirectoryPath + " [" + status + "]"
}

// Summary aggregates a batch of comparison results.
type Summary struct {
	Total               int
	Identical           int
	Different           int
	IdenticalPercentage float64
}

// Summarize computes aggregate statistics over a set of comparison results.
// The percentage is 0 when there are no results.
func Summarize(results []*ComparisonResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Identical {
			s.Identical++
		}
	}
	s.Different = s.Total - s.Identical
	if s.Total > 0 {
		s.IdenticalPercentage = float64(s.Identical) / float64(s.Total) * 100
	}
	return s
}
