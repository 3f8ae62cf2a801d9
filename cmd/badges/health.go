package main

import (
	"context"
	"fmt"
	"time"

	"github.com/alfredjeanlab/badges/internal/client"
	"github.com/alfredjeanlab/badges/internal/server"
	"github.com/spf13/cobra"
)

// healthResult is the JSON/YAML shape of the health command.
type healthResult struct {
	Transport string `json:"transport"`
	Status    string `json:"status"`
	Catalog   string `json:"catalog,omitempty"`
}

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check the health of a badges server",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res := healthResult{Transport: transport}
		healthy := false
		switch transport {
		case "http":
			h, err := badgesClient.Health(ctx)
			if err != nil {
				return fmt.Errorf("checking health: %w", err)
			}
			res.Status, res.Catalog = h.Status, h.Catalog.String()
			healthy = h.Status == "ok"
		case "grpc":
			status, err := client.CheckGRPCHealth(ctx, grpcAddr, server.HealthService)
			if err != nil {
				return fmt.Errorf("checking health: %w", err)
			}
			res.Status = status
			healthy = status == "SERVING"
		default:
			return fmt.Errorf("unknown transport %q (must be http or grpc)", transport)
		}

		if outputFormat != formatTable {
			if err := render(cmd.OutOrStdout(), outputFormat, res, nil); err != nil {
				return err
			}
		} else if res.Catalog != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Health: %s (catalog %s)\n", res.Status, res.Catalog)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Health: %s\n", res.Status)
		}

		if !healthy {
			return fmt.Errorf("unhealthy: %s", res.Status)
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().String("transport", "http", "check over http or grpc")
	healthCmd.Flags().Duration("timeout", 5*time.Second, "give up after this long")
}
