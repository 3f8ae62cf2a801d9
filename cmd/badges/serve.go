package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alfredjeanlab/badges/internal/config"
	"github.com/alfredjeanlab/badges/internal/events"
	"github.com/alfredjeanlab/badges/internal/server"
	"github.com/alfredjeanlab/badges/internal/source"
	"github.com/alfredjeanlab/badges/internal/store"
	"github.com/alfredjeanlab/badges/internal/store/memory"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Load the catalog and serve the page, API and health checks",
	GroupID: "system",
	Args:    cobra.NoArgs,
	// The server does not talk to another server.
	PersistentPreRunE: skipClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := installLogger(os.Stderr)

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

// installLogger builds the server's text logger on w and makes it the
// process default, so package-level slog calls (gRPC interceptors, NATS
// handlers) share its output.
func installLogger(w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, nil))
	slog.SetDefault(logger)
	return logger
}

// serve runs until ctx is canceled or a listener fails. The catalog is
// loaded in the background so the page can report progress meanwhile.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	src, err := openCatalogSource(ctx, cfg.Source, cfg.FallbackSource, source.Options{
		Timeout:    cfg.FetchTimeout,
		S3Region:   cfg.S3Region,
		S3Endpoint: cfg.S3Endpoint,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	catalog := memory.New(src, logger)
	defer catalog.Close()

	var publisher events.Publisher
	if cfg.NATSURL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			return err
		}
		publisher = pub
		logger.Info("events enabled", "nats_url", cfg.NATSURL)
	} else {
		publisher = events.NoopPublisher{}
		logger.Info("events disabled (BADGES_NATS_URL not set)")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
	}()

	badgesServer := server.NewBadgesServer(catalog, publisher, server.Options{
		LazyImages: cfg.LazyImages,
		Logger:     logger,
	})
	if cfg.AuthToken == "" {
		logger.Warn("API authentication disabled (BADGES_AUTH_TOKEN not set)")
	}

	httpLis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Handler:           badgesServer.NewHTTPHandler(cfg.AuthToken),
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end with ctx instead of holding Shutdown open.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	var (
		grpcServer *grpc.Server
		grpcLis    net.Listener
	)
	if cfg.GRPCEnabled() {
		grpcLis, err = net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			httpLis.Close()
			return err
		}
		grpcServer = server.NewGRPCServer(badgesServer)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", httpLis.Addr().String())
		if err := httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if grpcServer != nil {
		g.Go(func() error {
			logger.Info("gRPC server listening", "addr", grpcLis.Addr().String())
			return grpcServer.Serve(grpcLis)
		})
	}

	g.Go(func() error {
		// A failed load is a servable state, not a reason to exit.
		if err := badgesServer.LoadCatalog(gctx); err != nil && !errors.Is(err, store.ErrAlreadyLoaded) {
			logger.Warn("serving without a catalog", "source", src.String(), "err", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		badgesServer.Shutdown()
		if grpcServer != nil {
			grpcServer.GracefulStop()
			logger.Info("gRPC server stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	logger.Info("badges server started",
		"source", src.String(),
		"http_addr", cfg.HTTPAddr,
		"grpc_addr", cfg.GRPCAddr,
	)

	err = g.Wait()
	logger.Info("shutdown complete")
	return err
}
