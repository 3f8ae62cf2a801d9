// Package source fetches the raw badge document and decodes it into an
// ordered badge collection.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alfredjeanlab/badges/internal/model"
)

// LegacyURL is the raw-file location early deployments read badges from.
// The local badges.json is authoritative; this is only a fallback.
const LegacyURL = "https://raw.githubusercontent.com/Joeri-Abbo/python-credly-scraper/master/data/badges.json"

// DefaultPath is the authoritative local data file.
const DefaultPath = "badges.json"

// Source is one place a badge document can be read from.
type Source interface {
	// Fetch returns the raw document bytes.
	Fetch(ctx context.Context) ([]byte, error)
	// String describes the source for logs and status output.
	String() string
}

// Options configures the transports used by Open.
type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration // per-fetch timeout for remote sources (0 = none)
	S3Region   string
	S3Endpoint string
	Logger     *slog.Logger
}

// Open returns the Source for ref. "s3://bucket/key" reads from object
// storage, http(s) URLs are fetched remotely, and anything else (including
// "file://" URLs) is a local path.
func Open(ctx context.Context, ref string, opts Options) (Source, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return nil, errors.New("source reference is empty")
	case strings.HasPrefix(ref, "s3://"):
		bucket, key, err := ParseS3Ref(ref)
		if err != nil {
			return nil, err
		}
		return NewS3Source(ctx, bucket, key, opts.S3Region, opts.S3Endpoint)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return NewHTTPSource(ref, opts.HTTPClient, opts.Timeout), nil
	default:
		return NewFileSource(strings.TrimPrefix(ref, "file://")), nil
	}
}

// ParseS3Ref splits "s3://bucket/key" into its parts.
func ParseS3Ref(ref string) (bucket, key string, err error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(ref, "s3://"), "/")
	if !strings.HasPrefix(ref, "s3://") || !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 reference %q (expected s3://bucket/key)", ref)
	}
	return bucket, key, nil
}

// Load fetches the document from src and decodes it.
func Load(ctx context.Context, src Source) ([]*model.Badge, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src, err)
	}
	badges, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return badges, nil
}
