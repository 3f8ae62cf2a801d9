package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/alfredjeanlab/badges/internal/events"
	"github.com/alfredjeanlab/badges/internal/model"
	"github.com/alfredjeanlab/badges/internal/store"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthService is the gRPC health service name that tracks catalog
// readiness. The overall ("") status follows it.
const HealthService = "badges.v1.Catalog"

// Options configures a BadgesServer.
type Options struct {
	// LazyImages renders badge images with loading="lazy".
	LazyImages bool
	Logger     *slog.Logger
}

// BadgesServer serves the badge catalog over HTTP and reports readiness over
// gRPC health.
type BadgesServer struct {
	store      store.Store
	publisher  events.Publisher
	sseHub     *sseHub
	health     *health.Server
	logger     *slog.Logger
	lazyImages bool

	loadStarted atomic.Bool
}

// NewBadgesServer returns a BadgesServer backed by the given store and publisher.
func NewBadgesServer(s store.Store, p events.Publisher, opts Options) *BadgesServer {
	if p == nil {
		p = events.NoopPublisher{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(HealthService, healthpb.HealthCheckResponse_NOT_SERVING)
	return &BadgesServer{
		store:      s,
		publisher:  p,
		sseHub:     newSSEHub(),
		health:     hs,
		logger:     logger,
		lazyImages: opts.LazyImages,
	}
}

// LoadCatalog performs the single load of the catalog and announces each
// lifecycle step. It returns the load error, if any; the failure is also
// recorded in the store state so readers see it.
func (s *BadgesServer) LoadCatalog(ctx context.Context) error {
	// Only the first caller announces and runs the load.
	if !s.loadStarted.CompareAndSwap(false, true) {
		return store.ErrAlreadyLoaded
	}
	st := s.store.State()
	if st.Status != model.CatalogPending {
		return store.ErrAlreadyLoaded
	}
	source := st.Source
	s.publish(ctx, events.TopicCatalogLoading, events.CatalogLoading{
		Source:    source,
		StartedAt: time.Now().UTC(),
	})

	err := s.store.Load(ctx)
	if errors.Is(err, store.ErrAlreadyLoaded) {
		return err
	}

	// Announce the outcome even when ctx was what ended the load.
	pubCtx := context.WithoutCancel(ctx)
	st = s.store.State()
	if err != nil {
		s.setServing(false)
		s.publish(pubCtx, events.TopicCatalogFailed, events.CatalogFailed{
			Source: source,
			Error:  st.Error,
		})
		return err
	}

	evt := events.CatalogLoaded{Source: source, Count: st.Count}
	if st.LoadedAt != nil {
		evt.LoadedAt = *st.LoadedAt
	}
	if opts, err := s.store.Options(pubCtx); err == nil {
		evt.Categories = len(opts.Categories)
		evt.Costs = len(opts.Costs)
		evt.Levels = len(opts.Levels)
	}
	s.setServing(true)
	s.publish(pubCtx, events.TopicCatalogLoaded, evt)
	return nil
}

// Shutdown marks every health service NOT_SERVING so probes fail while the
// listeners drain.
func (s *BadgesServer) Shutdown() {
	s.health.Shutdown()
}

func (s *BadgesServer) setServing(ok bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(HealthService, status)
}

// publish sends an event to NATS and to SSE clients. Both are best-effort;
// failures are logged and never fail the load.
func (s *BadgesServer) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("failed to marshal event for SSE broadcast", "topic", topic, "error", err)
		return
	}
	s.sseHub.broadcast(topic, payload)
}
