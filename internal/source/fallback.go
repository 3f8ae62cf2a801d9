package source

import (
	"context"
	"errors"
	"log/slog"
)

// FallbackSource reads from a primary source and, only if that fails, from
// a secondary one. Each source is tried once.
type FallbackSource struct {
	primary   Source
	secondary Source
	logger    *slog.Logger
}

// Fallback chains two sources. A nil secondary returns primary unchanged.
func Fallback(primary, secondary Source, logger *slog.Logger) Source {
	if secondary == nil {
		return primary
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackSource{primary: primary, secondary: secondary, logger: logger}
}

func (s *FallbackSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := s.primary.Fetch(ctx)
	if err == nil {
		return data, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	s.logger.Warn("primary badge source failed, using fallback",
		"primary", s.primary.String(), "fallback", s.secondary.String(), "err", err)

	data, ferr := s.secondary.Fetch(ctx)
	if ferr != nil {
		return nil, errors.Join(err, ferr)
	}
	return data, nil
}

func (s *FallbackSource) String() string {
	return s.primary.String() + " (fallback " + s.secondary.String() + ")"
}
