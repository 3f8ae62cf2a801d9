package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alfredjeanlab/badges/internal/client"
	"github.com/alfredjeanlab/badges/internal/events"
	"github.com/alfredjeanlab/badges/internal/model"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Wait until the server's catalog has loaded or failed",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		natsURL, _ := cmd.Flags().GetString("nats-url")
		if interval <= 0 {
			return fmt.Errorf("--interval must be positive")
		}
		if natsURL == "" {
			natsURL = os.Getenv("BADGES_NATS_URL")
		}
		if natsURL == "" {
			natsURL = activeRemote().NATSURL
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		var (
			st  *model.CatalogState
			err error
		)
		if natsURL != "" {
			st, err = watchNATS(ctx, natsURL, interval)
		} else {
			st, err = watchPoll(ctx, badgesClient, interval, cmd.ErrOrStderr())
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("catalog did not settle within %s", timeout)
		}
		if err != nil {
			return err
		}

		if err := render(cmd.OutOrStdout(), outputFormat, st, func(w io.Writer) error {
			return printStatusTable(w, st)
		}); err != nil {
			return err
		}
		if st.Status == model.CatalogFailed {
			return fmt.Errorf("catalog failed to load: %s", st.Error)
		}
		return nil
	},
}

// watchNATS waits for catalog lifecycle events and confirms each one
// against the server's status endpoint.
func watchNATS(ctx context.Context, natsURL string, resync time.Duration) (*model.CatalogState, error) {
	reconnectCh := make(chan struct{}, 1)
	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			slog.Warn("nats disconnected", "err", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			slog.Info("nats reconnected")
			select {
			case reconnectCh <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	defer sub.Close()
	return watchEvents(ctx, badgesClient, sub, reconnectCh, resync)
}

// watchEvents subscribes before the first status check so a transition
// between the two cannot be missed. The status is re-read on every event,
// after a reconnect, and every resync interval as a safety net.
func watchEvents(ctx context.Context, c client.BadgesClient, sub events.Subscriber, reconnect <-chan struct{}, resync time.Duration) (*model.CatalogState, error) {
	ch, cancel, err := sub.Subscribe(events.TopicCatalogAll)
	if err != nil {
		return nil, err
	}
	defer cancel()

	ticker := time.NewTicker(resync)
	defer ticker.Stop()

	for {
		st, err := c.Status(ctx)
		if err != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err == nil && st.Status.Settled() {
			return st, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case _, ok := <-ch:
			if !ok {
				return nil, errors.New("event subscription closed")
			}
		case <-reconnect:
		case <-ticker.C:
		}
	}
}

// watchPoll re-reads the status every interval until the load settles.
// Transient errors (for example a server that is still starting) are
// reported once and retried.
func watchPoll(ctx context.Context, c client.BadgesClient, interval time.Duration, progress io.Writer) (*model.CatalogState, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr string
	for {
		st, err := c.Status(ctx)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			if err.Error() != lastErr {
				fmt.Fprintf(progress, "waiting for server: %v\n", err)
				lastErr = err.Error()
			}
		case st.Status.Settled():
			return st, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func init() {
	watchCmd.Flags().Duration("interval", 2*time.Second, "status poll interval (also the resync interval with NATS)")
	watchCmd.Flags().Duration("timeout", 0, "give up after this long (0 = wait forever)")
	watchCmd.Flags().String("nats-url", "", "NATS URL for catalog events (default BADGES_NATS_URL or the active remote's)")
}
