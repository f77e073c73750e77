package archive

import (
	"context"
	"os"
	"strings"

	"github.com/mholt/archives"

	"github.com/sdejongh/packcheck/pkg/models"
)

// ErrorKind categorizes reader failures
type ErrorKind string

const (
	// KindCorrupt indicates the container itself could not be decoded
	KindCorrupt ErrorKind = "corrupt"
	// KindIO indicates the archive file could not be read from disk
	KindIO ErrorKind = "io"
	// KindUnsupported indicates no reader recognizes the file extension
	KindUnsupported ErrorKind = "unsupported"
)

// ReadError is the typed error returned by readers. Failures never cross the
// core boundary as unchecked panics; callers branch on Kind.
type ReadError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	msg := "failed to read archive " + e.Path + " (" + string(e.Kind) + ")"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Reader lists the members of a compressed archive. Implementations extract
// metadata only (name, size, timestamp), never member content.
type Reader interface {
	// List returns one entity per archive member. Member path separators are
	// normalized to "/" and directory members carry a trailing "/".
	List(ctx context.Context, path string) ([]models.FileEntity, error)

	// Name returns the format name
	Name() string
}

// Entry binds a file extension to a reader factory
type Entry struct {
	// Extension is matched case-insensitively against the end of the
	// filename, including the dot (e.g. ".zip")
	Extension string

	// Factory creates the reader for this format
	Factory func() Reader
}

// Registry is an ordered, immutable-after-construction dispatch table.
// Entries are tried in sequence and the first matching extension wins; no
// reader sniffs content, the extension is the sole signal.
type Registry struct {
	entries []Entry
}

// NewRegistry creates a registry from an explicit ordered entry list.
// Additional formats are supported only through this constructor; there is
// no mutable global state.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: make([]Entry, len(entries))}
	copy(r.entries, entries)
	return r
}

// DefaultRegistry returns the registry for the supported container formats:
// ZIP, RAR and 7Z.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Entry{Extension: ".zip", Factory: func() Reader { return NewZipReader() }},
		Entry{Extension: ".rar", Factory: func() Reader { return NewRarReader() }},
		Entry{Extension: ".7z", Factory: func() Reader { return NewSevenZipReader() }},
	)
}

// Resolve returns a reader for the given archive filename, or false when no
// entry matches its extension.
func (r *Registry) Resolve(name string) (Reader, bool) {
	lower := strings.ToLower(name)
	for _, e := range r.entries {
		if strings.HasSuffix(lower, e.Extension) {
			return e.Factory(), true
		}
	}
	return nil, false
}

// Supports reports whether the filename carries a recognized archive
// extension.
func (r *Registry) Supports(name string) bool {
	_, ok := r.Resolve(name)
	return ok
}

// listMembers opens the archive and collects member metadata through the
// given extractor. Content is never decompressed; only headers are walked.
func listMembers(ctx context.Context, path string, ex archives.Extractor) ([]models.FileEntity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Kind: KindIO, Path: path, Err: err}
	}
	defer f.Close()

	var entities []models.FileEntity
	err = ex.Extract(ctx, f, func(ctx context.Context, info archives.FileInfo) error {
		name := strings.ReplaceAll(info.NameInArchive, "\\", "/")
		if info.IsDir() && !strings.HasSuffix(name, "/") {
			name += "/"
		}
		size := info.Size()
		if info.IsDir() {
			size = 0
		}
		entities = append(entities, models.FileEntity{
			ContainingPath: path,
			Name:           name,
			Size:           size,
			ModTime:        info.ModTime(),
			IsDir:          info.IsDir(),
		})
		return nil
	})
	if err != nil {
		return nil, &ReadError{Kind: KindCorrupt, Path: path, Err: err}
	}

	return entities, nil
}
