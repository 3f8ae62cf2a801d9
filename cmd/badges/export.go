package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alfredjeanlab/badges/internal/export"
	"github.com/alfredjeanlab/badges/internal/source"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the (filtered) catalog as JSONL",
	Long: `Read a catalog document directly (no server needed), apply the filters,
and write a header line followed by one record per badge.

The destination is a file path, "-" for stdout, or s3://bucket/key.

Without --source the document comes from $BADGES_SOURCE, then the active
remote's source, then ` + source.DefaultPath + `. --fallback resolves the same way.`,
	GroupID:           "catalog",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, fallback := exportSources(cmd)
		out, _ := cmd.Flags().GetString("out")
		region, _ := cmd.Flags().GetString("s3-region")
		endpoint, _ := cmd.Flags().GetString("s3-endpoint")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

		src, err := openCatalogSource(ctx, ref, fallback, source.Options{
			Timeout:    timeout,
			S3Region:   region,
			S3Endpoint: endpoint,
			Logger:     logger,
		})
		if err != nil {
			return err
		}

		var dest export.Destination
		if out == "-" {
			dest = export.NewWriterDestination(cmd.OutOrStdout(), "stdout")
		} else if dest, err = export.OpenDestination(ctx, out, region, endpoint); err != nil {
			return err
		}

		filter := filterFromFlags(cmd)
		hdr, err := export.Run(ctx, src, filter, dest)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if out != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d of %d badges to %s (%s)\n",
				hdr.BadgeCount, hdr.Total, dest, hdr.ID)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("source", "", "catalog document (path, http(s):// or s3://)")
	exportCmd.Flags().String("fallback", "", "document to read if --source cannot be fetched")
	exportCmd.Flags().String("out", "-", `destination (path, s3://bucket/key, or "-" for stdout)`)
	exportCmd.Flags().StringP("search", "s", "", "case-insensitive substring of the badge name")
	addFilterFlags(exportCmd)
	exportCmd.Flags().String("s3-region", envOr("BADGES_S3_REGION", "us-east-1"), "S3 region")
	exportCmd.Flags().String("s3-endpoint", os.Getenv("BADGES_S3_ENDPOINT"), "custom S3 endpoint (MinIO)")
	exportCmd.Flags().Duration("timeout", 30*time.Second, "fetch timeout for remote sources")
}

// exportSources resolves the primary and fallback documents: flag, then
// environment, then the active remote. Only the primary has a built-in
// default.
func exportSources(cmd *cobra.Command) (ref, fallback string) {
	ref, _ = cmd.Flags().GetString("source")
	fallback, _ = cmd.Flags().GetString("fallback")
	profile := activeRemote()
	ref = lo.CoalesceOrEmpty(ref, os.Getenv("BADGES_SOURCE"), profile.Source, source.DefaultPath)
	fallback = lo.CoalesceOrEmpty(fallback, os.Getenv("BADGES_FALLBACK_SOURCE"), profile.Fallback)
	return ref, fallback
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
