// Package compare implements the archive-directory structural comparator:
// it decides, from member listings alone, whether a directory tree is a
// redundant unpacked copy of the archive next to it. Equality is structural
// (normalized names and sizes); member content is never hashed or read, a
// deliberate trade-off to avoid decompressing every archive on every run.
package compare

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/sdejongh/packcheck/pkg/archive"
	"github.com/sdejongh/packcheck/pkg/dirtree"
	"github.com/sdejongh/packcheck/pkg/logging"
	"github.com/sdejongh/packcheck/pkg/models"
	"github.com/sdejongh/packcheck/pkg/normalize"
)

// CandidatePair is an archive file and its same-stem sibling directory,
// produced by FindCandidates and consumed immediately by Compare.
type CandidatePair struct {
	ArchivePath   string
	DirectoryPath string
}

// Comparator compares archives against candidate unpacked directories.
// Compare performs no writes and holds no mutable state across calls, so
// distinct pairs may be compared concurrently by the caller.
type Comparator struct {
	registry *archive.Registry
	analyzer *dirtree.Analyzer
	logger   logging.Logger
}

// NewComparator creates a comparator using the default format registry
// (ZIP, RAR, 7Z).
func NewComparator(includeHidden bool, logger logging.Logger) *Comparator {
	return NewComparatorWithRegistry(archive.DefaultRegistry(), includeHidden, logger)
}

// NewComparatorWithRegistry creates a comparator with an explicit format
// registry. This is the only way to extend the supported formats.
func NewComparatorWithRegistry(registry *archive.Registry, includeHidden bool, logger logging.Logger) *Comparator {
	logger = logging.OrNull(logger)
	return &Comparator{
		registry: registry,
		analyzer: dirtree.NewAnalyzer(includeHidden, logger),
		logger:   logger,
	}
}

// FindCandidates walks targetDir once and yields a pair for every
// recognized archive file with an existing same-stem sibling directory.
// Archive contents are not inspected here. Discovery is best-effort: walk
// errors are logged and remaining subtrees are still scanned.
func (c *Comparator) FindCandidates(ctx context.Context, targetDir string) []CandidatePair {
	var pairs []CandidatePair

	err := filepath.WalkDir(targetDir, func(p string, d fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			c.logger.Warn(ctx, "error scanning directory, skipping", logging.Fields{
				"path": p, "error": walkErr.Error(),
			})
			return nil
		}
		if d.IsDir() || !c.registry.Supports(d.Name()) {
			return nil
		}

		expectedDir := filepath.Join(filepath.Dir(p), normalize.ArchiveStem(p))
		info, err := os.Stat(expectedDir)
		if err != nil || !info.IsDir() {
			return nil
		}

		pairs = append(pairs, CandidatePair{ArchivePath: p, DirectoryPath: expectedDir})
		return nil
	})
	if err != nil {
		c.logger.Error(ctx, "directory scan aborted", err, logging.Fields{"target": targetDir})
	}

	c.logger.Info(ctx, "candidate scan complete", logging.Fields{
		"target": targetDir, "pairs": len(pairs),
	})
	return pairs
}

// Compare determines whether the directory is a structural duplicate of the
// archive. It never returns an error: every failure mode degrades into a
// non-identical result carrying a diagnostic, so a bad pair can never abort
// a batch and the deletion policy never acts on ambiguous input.
func (c *Comparator) Compare(ctx context.Context, archivePath, directoryPath string) *models.ComparisonResult {
	result := &models.ComparisonResult{
		ArchivePath:   archivePath,
		DirectoryPath: directoryPath,
	}

	reader, ok := c.registry.Resolve(filepath.Base(archivePath))
	if !ok {
		result.Differences = []string{
			fmt.Sprintf("Unsupported archive format: %s", filepath.Ext(archivePath)),
		}
		return result
	}

	members, err := reader.List(ctx, archivePath)
	if err != nil {
		// Corrupt or unreadable archives degrade to an empty listing;
		// everything on disk then surfaces as "Extra in directory".
		c.logger.Error(ctx, "failed to read archive members", err, logging.Fields{
			"archive": archivePath, "format": reader.Name(),
		})
		members = nil
	}
	members = normalize.StripArchivePrefix(members, archivePath)

	entries, err := c.analyzer.List(ctx, directoryPath)
	if err != nil {
		c.logger.Error(ctx, "failed to analyze directory", err, logging.Fields{
			"directory": directoryPath,
		})
		result.Differences = []string{fmt.Sprintf("Comparison failed: %v", err)}
		return result
	}
	entries = normalize.Names(entries)

	// Archives written without explicit directory records must compare
	// equal to archives that carry them, so when the archive side has none
	// the directory-side pseudo-entries are dropped too.
	if !normalize.HasDirectoryEntries(members) {
		entries = normalize.WithoutDirectoryEntries(entries)
	}

	result.ArchiveFiles = members
	result.DirectoryFiles = entries
	result.Differences = diffStructures(members, entries)
	result.Identical = len(result.Differences) == 0

	return result
}

// diffStructures joins both sides on normalized name and reports missing,
// extra and size-mismatch entries, each category sorted lexicographically
// for deterministic output.
func diffStructures(archiveFiles, directoryFiles []models.FileEntity) []string {
	archiveByName := entityMap(archiveFiles)
	directoryByName := entityMap(directoryFiles)

	var missing, extra, mismatched []string

	for name := range archiveByName {
		if _, ok := directoryByName[name]; !ok {
			missing = append(missing, fmt.Sprintf("Missing in directory: %s", name))
		}
	}
	for name := range directoryByName {
		if _, ok := archiveByName[name]; !ok {
			extra = append(extra, fmt.Sprintf("Extra in directory: %s", name))
		}
	}
	for name, archiveEntity := range archiveByName {
		directoryEntity, ok := directoryByName[name]
		if !ok {
			continue
		}
		if archiveEntity.Size != directoryEntity.Size {
			mismatched = append(mismatched, fmt.Sprintf(
				"Size mismatch for %s: archive=%d, directory=%d",
				name, archiveEntity.Size, directoryEntity.Size))
		}
	}

	sort.Strings(missing)
	sort.Strings(extra)
	sort.Strings(mismatched)

	differences := make([]string, 0, len(missing)+len(extra)+len(mismatched))
	differences = append(differences, missing...)
	differences = append(differences, extra...)
	differences = append(differences, mismatched...)
	return differences
}

func entityMap(entities []models.FileEntity) map[string]models.FileEntity {
	m := make(map[string]models.FileEntity, len(entities))
	for _, e := range entities {
		m[e.Name] = e
	}
	return m
}
