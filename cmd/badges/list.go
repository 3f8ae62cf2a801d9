package main

import (
	"context"
	"fmt"
	"io"

	"github.com/alfredjeanlab/badges/internal/model"
	"github.com/spf13/cobra"
)

// addFilterFlags registers the category, cost and level filters on cmd.
// Dimensions left empty take the active remote's default filter.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("category", "c", "", "filter by category (exact match)")
	cmd.Flags().String("cost", "", "filter by cost (exact match)")
	cmd.Flags().StringP("level", "l", "", "filter by level (exact match)")
	cmd.Flags().Bool("no-defaults", false, "ignore the active remote's default filter")
}

func filterFromFlags(cmd *cobra.Command) model.BadgeFilter {
	var f model.BadgeFilter
	f.Category, _ = cmd.Flags().GetString("category")
	f.Cost, _ = cmd.Flags().GetString("cost")
	f.Level, _ = cmd.Flags().GetString("level")
	if cmd.Flags().Lookup("search") != nil {
		f.Search, _ = cmd.Flags().GetString("search")
	}
	if skip, _ := cmd.Flags().GetBool("no-defaults"); !skip {
		f = activeRemote().Filter.Apply(f)
	}
	return f
}

// listBadges queries the server and renders the result. A failed catalog
// is reported as an error after the notice is printed.
func listBadges(cmd *cobra.Command, filter model.BadgeFilter) error {
	resp, err := badgesClient.ListBadges(context.Background(), filter)
	if err != nil {
		return fmt.Errorf("listing badges: %w", err)
	}
	out := cmd.OutOrStdout()
	err = render(out, outputFormat, resp, func(w io.Writer) error {
		return printBadgeListTable(w, resp)
	})
	if err != nil {
		return err
	}
	if resp.State.Status == model.CatalogFailed {
		return fmt.Errorf("catalog failed to load: %s", resp.State.Error)
	}
	return nil
}

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List badges, optionally filtered",
	GroupID: "catalog",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listBadges(cmd, filterFromFlags(cmd))
	},
}

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Short:   "Search badges by name (case-insensitive)",
	GroupID: "catalog",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := filterFromFlags(cmd)
		filter.Search = args[0]
		return listBadges(cmd, filter)
	},
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "case-insensitive substring of the badge name")
	addFilterFlags(listCmd)
	addFilterFlags(searchCmd)
}
