package archive

import (
	"context"

	"github.com/mholt/archives"

	"github.com/sdejongh/packcheck/pkg/models"
)

// ZipReader lists members of ZIP archives
type ZipReader struct {
	format archives.Zip
}

// NewZipReader creates a ZIP member reader
func NewZipReader() *ZipReader {
	return &ZipReader{}
}

// List returns the member entities of the ZIP archive at path
func (r *ZipReader) List(ctx context.Context, path string) ([]models.FileEntity, error) {
	return listMembers(ctx, path, r.format)
}

// Name returns the format name
func (r *ZipReader) Name() string {
	return "zip"
}
