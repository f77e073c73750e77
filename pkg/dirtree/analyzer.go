// Package dirtree extracts member-style listings from real directory trees
// so they can be diffed against archive listings.
package dirtree

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sdejongh/packcheck/pkg/logging"
	"github.com/sdejongh/packcheck/pkg/models"
)

// Analyzer walks a directory tree and yields one FileEntity per regular file
// and one zero-size pseudo-entity (trailing "/") per subdirectory, empty
// ones included. Names are relative to the scanned root, slash-separated.
type Analyzer struct {
	includeHidden bool
	logger        logging.Logger
}

// NewAnalyzer creates a directory analyzer. When includeHidden is false any
// path segment starting with "." is pruned from traversal, subtree and all.
func NewAnalyzer(includeHidden bool, logger logging.Logger) *Analyzer {
	return &Analyzer{
		includeHidden: includeHidden,
		logger:        logging.OrNull(logger),
	}
}

// List returns the entities under root. Errors accessing individual entries
// are logged and the entry skipped; an inaccessible root is fatal for the
// whole walk.
func (a *Analyzer) List(ctx context.Context, root string) ([]models.FileEntity, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	var entities []models.FileEntity

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if p == root {
				return walkErr
			}
			a.logger.Warn(ctx, "could not access entry, skipping", logging.Fields{
				"path": p, "error": walkErr.Error(),
			})
			return nil
		}

		if p == root {
			return nil
		}

		if !a.includeHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			entities = append(entities, models.FileEntity{
				ContainingPath: filepath.Dir(p),
				Name:           rel + "/",
				Size:           0,
				IsDir:          true,
			})
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			a.logger.Warn(ctx, "could not stat file, skipping", logging.Fields{
				"path": p, "error": err.Error(),
			})
			return nil
		}

		entities = append(entities, models.FileEntity{
			ContainingPath: filepath.Dir(p),
			Name:           rel,
			Size:           fi.Size(),
			ModTime:        fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", root, err)
	}

	return entities, nil
}
