package archive

import (
	"context"

	"github.com/mholt/archives"

	"github.com/sdejongh/packcheck/pkg/models"
)

// SevenZipReader lists members of 7Z archives
type SevenZipReader struct {
	format archives.SevenZip
}

// NewSevenZipReader creates a 7Z member reader
func NewSevenZipReader() *SevenZipReader {
	return &SevenZipReader{}
}

// List returns the member entities of the 7Z archive at path
func (r *SevenZipReader) List(ctx context.Context, path string) ([]models.FileEntity, error) {
	return listMembers(ctx, path, r.format)
}

// Name returns the format name
func (r *SevenZipReader) Name() string {
	return "7z"
}
