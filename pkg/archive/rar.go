package archive

import (
	"context"

	"github.com/mholt/archives"

	"github.com/sdejongh/packcheck/pkg/models"
)

// RarReader lists members of RAR archives
type RarReader struct {
	format archives.Rar
}

// NewRarReader creates a RAR member reader
func NewRarReader() *RarReader {
	return &RarReader{}
}

// List returns the member entities of the RAR archive at path
func (r *RarReader) List(ctx context.Context, path string) ([]models.FileEntity, error) {
	return listMembers(ctx, path, r.format)
}

// Name returns the format name
func (r *RarReader) Name() string {
	return "rar"
}
