package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alfredjeanlab/badges/internal/source"
)

// Destination is where an export is written.
type Destination interface {
	// Write stores the complete JSONL payload.
	Write(ctx context.Context, data []byte) error
	String() string
}

// OpenDestination returns the destination for ref: "s3://bucket/key" uploads
// to object storage, "-" writes to stdout, anything else is a local path.
func OpenDestination(ctx context.Context, ref, region, endpoint string) (Destination, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return nil, fmt.Errorf("export destination is empty")
	case ref == "-":
		return &WriterDestination{w: os.Stdout, name: "stdout"}, nil
	case strings.HasPrefix(ref, "s3://"):
		bucket, key, err := source.ParseS3Ref(ref)
		if err != nil {
			return nil, err
		}
		return NewS3Destination(ctx, bucket, key, region, endpoint)
	default:
		return &FileDestination{path: strings.TrimPrefix(ref, "file://")}, nil
	}
}

// FileDestination writes the export to a local file. The file is replaced
// atomically so readers never see a partial export.
type FileDestination struct {
	path string
}

func NewFileDestination(path string) *FileDestination {
	return &FileDestination{path: path}
}

func (d *FileDestination) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(d.path), "."+filepath.Base(d.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("rename export: %w", err)
	}
	return nil
}

func (d *FileDestination) String() string { return d.path }

// WriterDestination writes the export to an io.Writer such as stdout.
type WriterDestination struct {
	w    io.Writer
	name string
}

func NewWriterDestination(w io.Writer, name string) *WriterDestination {
	return &WriterDestination{w: w, name: name}
}

func (d *WriterDestination) Write(_ context.Context, data []byte) error {
	_, err := d.w.Write(data)
	return err
}

func (d *WriterDestination) String() string { return d.name }
