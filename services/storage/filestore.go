package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

var ErrFileNotFound = errors.New("file not found in store")

// FileStore abstracts where uploaded bytes live. The Storage model only keeps
// metadata; handlers go through a FileStore for the bytes themselves.
type FileStore interface {
	// Save stores the file under the given name and returns its public URL.
	Save(ctx context.Context, filename string, data io.Reader, contentType string) (string, error)
	// Open returns a reader over the stored file.
	Open(ctx context.Context, filename string) (io.ReadCloser, error)
	// Remove deletes the stored file. Removing a missing file is not an error.
	Remove(ctx context.Context, filename string) error
}

// GenerateFilename produces a unique stored name keeping the original extension
func GenerateFilename(originalName string) string {
	return uuid.New().String() + filepath.Ext(originalName)
}
