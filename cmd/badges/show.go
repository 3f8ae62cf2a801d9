package main

import (
	"context"
	"fmt"
	"io"

	"github.com/alfredjeanlab/badges/internal/client"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show one badge",
	GroupID: "catalog",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := badgesClient.GetBadge(context.Background(), args[0])
		if client.IsNotFound(err) {
			return fmt.Errorf("badge %q not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("getting badge %s: %w", args[0], err)
		}
		return render(cmd.OutOrStdout(), outputFormat, b, func(w io.Writer) error {
			return printBadgeTable(w, b)
		})
	},
}
