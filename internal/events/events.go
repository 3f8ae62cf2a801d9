package events

import (
	"context"
	"time"
)

// Catalog lifecycle topics. Subscribers may use "badges.catalog.>" for all of them.
const (
	TopicCatalogLoading = "badges.catalog.loading"
	TopicCatalogLoaded  = "badges.catalog.loaded"
	TopicCatalogFailed  = "badges.catalog.failed"

	TopicCatalogAll = "badges.catalog.>"
)

// Event types

type CatalogLoading struct {
	Source    string    `json:"source"`
	StartedAt time.Time `json:"started_at"`
}

type CatalogLoaded struct {
	Source     string    `json:"source"`
	Count      int       `json:"count"`
	Categories int       `json:"categories"`
	Costs      int       `json:"costs"`
	Levels     int       `json:"levels"`
	LoadedAt   time.Time `json:"loaded_at"`
}

type CatalogFailed struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
