package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:     "options",
	Short:   "Show the category, cost and level filter values",
	GroupID: "catalog",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := badgesClient.Options(context.Background())
		if err != nil {
			return fmt.Errorf("getting filter options: %w", err)
		}
		return render(cmd.OutOrStdout(), outputFormat, opts, func(w io.Writer) error {
			return printOptionsTable(w, opts)
		})
	},
}
