package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Manage catalog profiles",
	Long: `A profile names a badges server and the catalog defaults used with it:
the document export reads and the filter list, search and export apply
when a dimension is not given on the command line.`,
	GroupID: "system",
	// Profiles live in a local file; no server is contacted.
	PersistentPreRunE: skipClient,
}

var remoteAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add or replace a profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		r := Remote{URL: args[1]}
		flags := cmd.Flags()
		for flag, dst := range map[string]*string{
			"token":       &r.Token,
			"nats":        &r.NATSURL,
			"description": &r.Description,
			"source":      &r.Source,
			"fallback":    &r.Fallback,
			"category":    &r.Filter.Category,
			"cost":        &r.Filter.Cost,
			"level":       &r.Filter.Level,
		} {
			*dst, _ = flags.GetString(flag)
		}

		err := updateRemotes(func(cfg *RemotesConfig) error {
			cfg.Remotes[name] = r
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "profile %q saved (%s)\n", name, r.URL)
		return nil
	},
}

var remoteRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		err := updateRemotes(func(cfg *RemotesConfig) error {
			if _, ok := cfg.Remotes[name]; !ok {
				return fmt.Errorf("profile %q not found", name)
			}
			delete(cfg.Remotes, name)
			if cfg.Active == name {
				cfg.Active = ""
			}
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "profile %q removed\n", name)
		return nil
	},
}

var remoteUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a profile active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		err := updateRemotes(func(cfg *RemotesConfig) error {
			if _, ok := cfg.Remotes[name]; !ok {
				return fmt.Errorf("profile %q not found", name)
			}
			cfg.Active = name
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "active profile is now %q\n", name)
		return nil
	},
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(cfg.Remotes) == 0 {
			fmt.Fprintln(out, "no profiles configured")
			return nil
		}
		names := lo.Keys(cfg.Remotes)
		slices.Sort(names)

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  NAME\tURL\tTOKEN\tSOURCE\tFILTER")
		for _, name := range names {
			r := cfg.Remotes[name]
			fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\n",
				lo.Ternary(name == cfg.Active, "* ", "  "),
				name, r.URL, shortToken(r.Token), r.Source, r.Filter)
		}
		return w.Flush()
	},
}

var remoteShowCmd = &cobra.Command{
	Use:   "show [<name>]",
	Short: "Show a profile (defaults to the active one)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		name := cfg.Active
		if len(args) == 1 {
			name = args[0]
		}
		if name == "" {
			return fmt.Errorf("no active profile; name one or run 'badges remote use <name>'")
		}
		r, ok := cfg.Remotes[name]
		if !ok {
			return fmt.Errorf("profile %q not found", name)
		}
		return printRemote(cmd.OutOrStdout(), name, name == cfg.Active, r)
	},
}

// printRemote writes one "key: value" line per field that is set.
func printRemote(out io.Writer, name string, active bool, r Remote) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "name:\t%s%s\n", name, lo.Ternary(active, " (active)", ""))
	for _, field := range [][2]string{
		{"url", r.URL},
		{"token", maskToken(r.Token)},
		{"nats_url", r.NATSURL},
		{"description", r.Description},
		{"source", r.Source},
		{"fallback", r.Fallback},
		{"filter", r.Filter.String()},
	} {
		if field[1] != "" {
			fmt.Fprintf(w, "%s:\t%s\n", field[0], field[1])
		}
	}
	return w.Flush()
}

const tokenPrefix = 8

// shortToken keeps the first few characters for the list view.
func shortToken(tok string) string {
	if len(tok) <= tokenPrefix {
		return tok
	}
	return tok[:tokenPrefix] + "..."
}

// maskToken keeps the prefix and stars out the rest, preserving length.
func maskToken(tok string) string {
	if len(tok) <= tokenPrefix {
		return tok
	}
	return tok[:tokenPrefix] + strings.Repeat("*", len(tok)-tokenPrefix)
}

func init() {
	f := remoteAddCmd.Flags()
	f.String("token", "", "bearer token for the API")
	f.String("nats", "", "NATS URL for catalog events")
	f.String("description", "", "free-form note")
	f.String("source", "", "catalog document export reads (path, http(s):// or s3://)")
	f.String("fallback", "", "document export reads if the source cannot be fetched")
	f.String("category", "", "default category filter")
	f.String("cost", "", "default cost filter")
	f.String("level", "", "default level filter")

	remoteCmd.AddCommand(remoteAddCmd, remoteRemoveCmd, remoteUseCmd, remoteListCmd, remoteShowCmd)
}
