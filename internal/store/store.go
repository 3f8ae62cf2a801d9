package store

import (
	"context"
	"errors"

	"github.com/alfredjeanlab/badges/internal/model"
)

var (
	// ErrNotFound is returned when no badge has the requested ID.
	ErrNotFound = errors.New("badge not found")
	// ErrAlreadyLoaded is returned when Load is called more than once.
	ErrAlreadyLoaded = errors.New("catalog already loaded")
)

// Store holds the working badge collection.
type Store interface {
	// Load performs the one-shot fetch of the collection. While it runs the
	// state is loading; afterwards it is ready or failed.
	Load(ctx context.Context) error
	State() model.CatalogState

	// Queries. Before a successful load they behave as an empty collection.
	ListBadges(ctx context.Context, filter model.BadgeFilter) ([]*model.Badge, int, error) // returns matches, collection size, error
	GetBadge(ctx context.Context, id string) (*model.Badge, error)
	Options(ctx context.Context) (model.Options, error)

	// Lifecycle
	Close() error
}
