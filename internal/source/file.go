package source

import (
	"context"
	"os"
)

// FileSource reads the document from a local path.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the given local path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.path)
}

func (s *FileSource) String() string { return s.path }
