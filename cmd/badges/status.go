package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show the load state of the server's catalog",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := badgesClient.Status(context.Background())
		if err != nil {
			return fmt.Errorf("getting status: %w", err)
		}
		return render(cmd.OutOrStdout(), outputFormat, st, func(w io.Writer) error {
			return printStatusTable(w, st)
		})
	},
}
