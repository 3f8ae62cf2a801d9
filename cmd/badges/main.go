package main

import (
	"fmt"
	"os"

	"github.com/alfredjeanlab/badges/internal/client"
	"github.com/alfredjeanlab/badges/internal/ui"
	"github.com/spf13/cobra"
)

var (
	httpURL      string
	grpcAddr     string
	authToken    string
	outputFormat string
	jsonOutput   bool

	badgesClient client.BadgesClient
)

func defaultHTTPURL() string {
	if s := os.Getenv("BADGES_HTTP_URL"); s != "" {
		return s
	}
	if u := activeRemote().URL; u != "" {
		return u
	}
	return "http://localhost:8080"
}

func defaultGRPCAddr() string {
	if s := os.Getenv("BADGES_GRPC_ADDR"); s != "" {
		return s
	}
	return "localhost:9090"
}

func defaultToken() string {
	if s := os.Getenv("BADGES_AUTH_TOKEN"); s != "" {
		return s
	}
	return activeRemote().Token
}

// skipClient is used as PersistentPreRunE by commands that never talk to
// a running server.
func skipClient(cmd *cobra.Command, args []string) error {
	ui.Configure()
	return resolveOutput()
}

var rootCmd = &cobra.Command{
	Use:          "badges <command>",
	Short:        "Browse and serve a catalog of certification badges",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.Configure()
		if err := resolveOutput(); err != nil {
			return err
		}
		badgesClient = client.NewHTTPClient(httpURL, authToken)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if badgesClient != nil {
			badgesClient.Close()
		}
	},
}

// resolveOutput folds --json into --output and rejects unknown formats.
func resolveOutput() error {
	if jsonOutput {
		outputFormat = formatJSON
	}
	switch outputFormat {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (must be table, json or yaml)", outputFormat)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&httpURL, "http-url", defaultHTTPURL(), "badges server URL")
	rootCmd.PersistentFlags().StringVar(&grpcAddr, "grpc-addr", defaultGRPCAddr(), "gRPC health address")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", defaultToken(), "bearer token for the API")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatTable, "output format (table, json or yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON (same as --output json)")

	rootCmd.AddGroup(
		&cobra.Group{ID: "catalog", Title: "Catalog:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Catalog
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(exportCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
