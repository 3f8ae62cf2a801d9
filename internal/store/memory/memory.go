// Package memory implements store.Store over an in-memory collection that
// is loaded once from a source.Source.
package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alfredjeanlab/badges/internal/model"
	"github.com/alfredjeanlab/badges/internal/source"
	"github.com/alfredjeanlab/badges/internal/store"
)

// Store is an immutable-after-load badge collection.
type Store struct {
	src    source.Source
	logger *slog.Logger

	mu      sync.RWMutex
	state   model.CatalogState
	badges  []*model.Badge
	byID    map[string]*model.Badge
	options model.Options
}

var _ store.Store = (*Store)(nil)

// New returns a pending store that will read from src.
func New(src source.Source, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		src:     src,
		logger:  logger,
		state:   model.CatalogState{Status: model.CatalogPending, Source: src.String()},
		byID:    map[string]*model.Badge{},
		options: model.DeriveOptions(nil),
	}
}

// Load fetches and decodes the collection. It may run only once; later calls
// return store.ErrAlreadyLoaded. On failure the collection stays empty and
// the error is recorded in the state.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Status != model.CatalogPending {
		s.mu.Unlock()
		return store.ErrAlreadyLoaded
	}
	s.state.Status = model.CatalogLoading
	s.mu.Unlock()

	start := time.Now()
	badges, err := source.Load(ctx, s.src)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state.Status = model.CatalogFailed
		s.state.Error = err.Error()
		s.logger.Error("badge catalog load failed", "source", s.src.String(), "err", err)
		return err
	}

	byID := make(map[string]*model.Badge, len(badges))
	dupes := 0
	for _, b := range badges {
		if _, ok := byID[b.ID]; ok {
			dupes++
			continue
		}
		byID[b.ID] = b
	}
	if dupes > 0 {
		s.logger.Warn("badge catalog has duplicate ids", "source", s.src.String(), "duplicates", dupes)
	}

	now := time.Now().UTC()
	s.badges = badges
	s.byID = byID
	s.options = model.DeriveOptions(badges)
	s.state.Status = model.CatalogReady
	s.state.Count = len(badges)
	s.state.LoadedAt = &now

	s.logger.Info("badge catalog loaded",
		"source", s.src.String(),
		"badges", len(badges),
		"categories", len(s.options.Categories),
		"costs", len(s.options.Costs),
		"levels", len(s.options.Levels),
		"duration", time.Since(start),
	)
	return nil
}

// State returns a snapshot of the load state.
func (s *Store) State() model.CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.LoadedAt != nil {
		t := *st.LoadedAt
		st.LoadedAt = &t
	}
	return st
}

// ListBadges returns the badges matching filter and the collection size.
func (s *Store) ListBadges(ctx context.Context, filter model.BadgeFilter) ([]*model.Badge, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.FilterBadges(s.badges, filter), len(s.badges), nil
}

// GetBadge returns the first badge with the given ID.
func (s *Store) GetBadge(ctx context.Context, id string) (*model.Badge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return b, nil
}

// Options returns the derived filter options.
func (s *Store) Options(ctx context.Context) (model.Options, error) {
	if err := ctx.Err(); err != nil {
		return model.Options{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options, nil
}

// Close is a no-op; the collection lives only in memory.
func (s *Store) Close() error { return nil }
