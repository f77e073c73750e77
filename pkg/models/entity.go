package models

import (
	"strings"
	"time"
)

// FileEntity represents one file, directory, or archive member in a
// structural comparison.
type FileEntity struct {
	// ContainingPath is the owning directory for on-disk entities, or the
	// archive path for archive members
	ContainingPath string

	// Name is the path relative to the comparison root, slash-separated.
	// Directory entries carry a trailing "/". For archive members this is
	// the raw member name as stored by the codec.
	Name string

	// Size in bytes; directory pseudo-entries are always 0
	Size int64

	// ModTime is the last modification time, informational only; it never
	// participates in equality
	ModTime time.Time

	// IsDir indicates a directory or directory pseudo-entry
	IsDir bool
}

// IsDirEntry reports whether the entity name denotes a directory entry.
// Archive codecs mark directories with a trailing slash rather than a flag,
// so the name is the authoritative signal.
func (e FileEntity) IsDirEntry() bool {
	return e.IsDir || strings.HasSuffix(e.Name, "/")
}
