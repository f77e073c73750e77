// Package normalize canonicalizes member names before structural
// comparison: Unicode NFC form and archive top-level prefix alignment.
// Every function is pure.
package normalize

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/sdejongh/packcheck/pkg/models"
)

// NFC returns the Unicode Normalization Form C of s, so a precomposed
// codepoint and its base-plus-combining-mark spelling compare equal.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// Names returns a copy of entities with every name NFC-normalized.
func Names(entities []models.FileEntity) []models.FileEntity {
	out := make([]models.FileEntity, len(entities))
	for i, e := range entities {
		e.Name = NFC(e.Name)
		out[i] = e
	}
	return out
}

// ArchiveStem returns the archive filename without its directory and final
// extension ("photos.zip" -> "photos"). A dot-named file like ".zip" is all
// stem and no extension; stripping it would leave an empty stem and pair
// the archive with its own parent directory.
func ArchiveStem(archivePath string) string {
	base := filepath.Base(archivePath)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// StripArchivePrefix aligns archive member names with directory-side
// relative names. Archives created by compressing a folder store every
// member under a leading "<stem>/" prefix; that prefix is stripped and the
// root directory entry itself discarded. Members that do not carry the
// prefix are left untouched, so an archive whose stem matches no top-level
// entry keeps its names verbatim (a known limitation of the stem
// heuristic). All returned names are NFC-normalized.
func StripArchivePrefix(members []models.FileEntity, archivePath string) []models.FileEntity {
	prefix := NFC(ArchiveStem(archivePath)) + "/"

	out := make([]models.FileEntity, 0, len(members))
	for _, m := range members {
		name := NFC(m.Name)
		if name == prefix {
			continue
		}
		m.Name = strings.TrimPrefix(name, prefix)
		out = append(out, m)
	}
	return out
}

// HasDirectoryEntries reports whether any entity denotes a directory.
// Archives created without explicit directory records have none, even when
// their members live in subdirectories.
func HasDirectoryEntries(entities []models.FileEntity) bool {
	for _, e := range entities {
		if e.IsDirEntry() {
			return true
		}
	}
	return false
}

// WithoutDirectoryEntries filters out directory pseudo-entries, used on the
// directory side when the archive stores no directory records so both sides
// compare over files alone.
func WithoutDirectoryEntries(entities []models.FileEntity) []models.FileEntity {
	out := make([]models.FileEntity, 0, len(entities))
	for _, e := range entities {
		if e.IsDirEntry() {
			continue
		}
		out = append(out, e)
	}
	return out
}
