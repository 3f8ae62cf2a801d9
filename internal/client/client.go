// Package client provides a transport-agnostic interface for the badge
// catalog service and an HTTP/JSON implementation of it.
package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/alfredjeanlab/badges/internal/model"
)

// BadgesClient is the interface the CLI commands use to talk to a badges
// server. It is implemented by HTTPClient.
type BadgesClient interface {
	// Catalog queries
	ListBadges(ctx context.Context, filter model.BadgeFilter) (*ListBadgesResponse, error)
	GetBadge(ctx context.Context, id string) (*model.Badge, error)
	Options(ctx context.Context) (*model.Options, error)

	// Lifecycle of the server's catalog
	Status(ctx context.Context) (*model.CatalogState, error)
	Health(ctx context.Context) (*HealthResponse, error)

	Close() error
}

// ListBadgesResponse is the response from ListBadges.
type ListBadgesResponse struct {
	Badges []*model.Badge     `json:"badges"`
	Count  int                `json:"count"`
	Total  int                `json:"total"`
	State  model.CatalogState `json:"state"`
	Filter model.BadgeFilter  `json:"filter"`
}

// HealthResponse is the response from Health.
type HealthResponse struct {
	Status  string              `json:"status"`
	Catalog model.CatalogStatus `json:"catalog"`
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
