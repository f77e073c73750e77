package clean

import (
	"context"
	"fmt"
	"os"

	"github.com/sdejongh/packcheck/pkg/logging"
	"github.com/sdejongh/packcheck/pkg/models"
)

// Outcome describes what the cleaner did with one comparison result
type Outcome struct {
	Deleted        bool
	BytesReclaimed int64
}

// Cleaner removes unpacked directories that are confirmed identical to
// their archive, subject to the configured strategy and dry-run flag.
type Cleaner struct {
	strategy Strategy
	dryRun   bool
	logger   logging.Logger
}

// NewCleaner creates a cleaner with the given strategy
func NewCleaner(strategy Strategy, dryRun bool, logger logging.Logger) *Cleaner {
	return &Cleaner{
		strategy: strategy,
		dryRun:   dryRun,
		logger:   logging.OrNull(logger),
	}
}

// Clean applies the deletion policy to one comparison result. Non-identical
// pairs are always refused, whatever the strategy says.
func (c *Cleaner) Clean(ctx context.Context, result *models.ComparisonResult) (Outcome, error) {
	if !result.Identical {
		return Outcome{}, fmt.Errorf("refusing to delete %s: not identical to %s",
			result.DirectoryPath, result.ArchivePath)
	}

	if !c.strategy.ShouldDelete(result) {
		c.logger.Info(ctx, "deletion skipped by strategy", logging.Fields{
			"directory": result.DirectoryPath, "strategy": c.strategy.Name(),
		})
		return Outcome{}, nil
	}

	reclaimed := directoryBytes(result)

	if c.dryRun {
		c.logger.Info(ctx, "dry run, would delete directory", logging.Fields{
			"directory": result.DirectoryPath, "bytes": reclaimed,
		})
		return Outcome{Deleted: true, BytesReclaimed: reclaimed}, nil
	}

	if err := os.RemoveAll(result.DirectoryPath); err != nil {
		return Outcome{}, fmt.Errorf("failed to delete directory %s: %w", result.DirectoryPath, err)
	}

	c.logger.Info(ctx, "deleted unpacked directory", logging.Fields{
		"directory": result.DirectoryPath, "archive": result.ArchivePath, "bytes": reclaimed,
	})
	return Outcome{Deleted: true, BytesReclaimed: reclaimed}, nil
}

// directoryBytes sums the sizes of the directory-side entities retained in
// the result, avoiding a second walk
func directoryBytes(result *models.ComparisonResult) int64 {
	var total int64
	for _, e := range result.DirectoryFiles {
		total += e.Size
	}
	return total
}
