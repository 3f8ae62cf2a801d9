package main

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/badges/internal/source"
)

// openCatalogSource opens ref and, when fallback is set, wraps it so the
// fallback is fetched once if ref cannot be.
func openCatalogSource(ctx context.Context, ref, fallback string, opts source.Options) (source.Source, error) {
	primary, err := source.Open(ctx, ref, opts)
	if err != nil {
		return nil, fmt.Errorf("opening source %q: %w", ref, err)
	}
	if fallback == "" || fallback == ref {
		return primary, nil
	}
	secondary, err := source.Open(ctx, fallback, opts)
	if err != nil {
		return nil, fmt.Errorf("opening fallback source %q: %w", fallback, err)
	}
	return source.Fallback(primary, secondary, opts.Logger), nil
}
