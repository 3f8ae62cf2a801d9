package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alfredjeanlab/badges/internal/client"
	"github.com/alfredjeanlab/badges/internal/model"
	"github.com/alfredjeanlab/badges/internal/ui"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// render writes v in the selected output format, calling table for the
// human-readable form.
func render(w io.Writer, format string, v any, table func(io.Writer) error) error {
	switch format {
	case formatJSON:
		return printJSON(w, v)
	case formatYAML:
		return printYAML(w, v)
	default:
		return table(w)
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printYAML goes through the JSON encoding so field names and the cost
// representation match the API, then re-emits the tree in block style.
func printYAML(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("converting to YAML: %w", err)
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func printBadgeTable(w io.Writer, b *model.Badge) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", b.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", b.Name)
	fmt.Fprintf(tw, "Level:\t%s\n", b.Level)
	fmt.Fprintf(tw, "Category:\t%s\n", b.TypeCategory)
	if b.Cost.Valid() {
		fmt.Fprintf(tw, "Cost:\t%s\n", b.Cost)
	}
	if issuer := b.IssuerName(); issuer != "" {
		fmt.Fprintf(tw, "Issuer:\t%s\n", issuer)
	}
	if b.TimeToEarn != nil && *b.TimeToEarn != "" {
		fmt.Fprintf(tw, "Time to earn:\t%s\n", *b.TimeToEarn)
	}
	if u := b.EarnURL(); u != "" {
		fmt.Fprintf(tw, "Earn:\t%s\n", u)
	}
	if u := b.ImageURL(); u != "" {
		fmt.Fprintf(tw, "Image:\t%s\n", u)
	}
	if len(b.Skills) > 0 {
		names := make([]string, 0, len(b.Skills))
		for _, s := range b.Skills {
			if s != nil && s.Name != "" {
				names = append(names, s.Name)
			}
		}
		fmt.Fprintf(tw, "Skills:\t%s\n", strings.Join(names, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if b.Description != "" {
		fmt.Fprintf(w, "\n%s\n", b.Description)
	}
	return nil
}

func printBadgeListTable(w io.Writer, resp *client.ListBadgesResponse) error {
	if resp.State.Status != model.CatalogReady {
		return printCatalogNotice(w, resp.State)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLEVEL\tCATEGORY\tCOST\tNAME")
	for _, b := range resp.Badges {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			b.ID,
			b.Level,
			b.TypeCategory,
			b.Cost,
			truncate(b.Name, 50),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(resp.Badges) == 0 {
		fmt.Fprintln(w, ui.RenderMuted("No badges match."))
	}
	_, err := fmt.Fprintf(w, "\n%d of %d badges\n", resp.Count, resp.Total)
	return err
}

// printCatalogNotice explains why a listing is empty instead of printing a
// bare header.
func printCatalogNotice(w io.Writer, st model.CatalogState) error {
	var err error
	switch st.Status {
	case model.CatalogFailed:
		_, err = fmt.Fprintf(w, "%s %s\n", ui.RenderError("Failed to load badges:"), st.Error)
	default:
		_, err = fmt.Fprintf(w, "Loading badges... (%s)\n", ui.RenderStatus(st.Status))
	}
	return err
}

func printOptionsTable(w io.Writer, opts *model.Options) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(label string, values []string) {
		v := strings.Join(values, ", ")
		if v == "" {
			v = ui.RenderMuted("(none)")
		}
		fmt.Fprintf(tw, "%s\t%s\n", ui.RenderAccent(label), v)
	}
	row("Categories:", opts.Categories)
	row("Costs:", opts.Costs)
	row("Levels:", opts.Levels)
	return tw.Flush()
}

func printStatusTable(w io.Writer, st *model.CatalogState) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Status:\t%s\n", ui.RenderStatus(st.Status))
	if st.Source != "" {
		fmt.Fprintf(tw, "Source:\t%s\n", st.Source)
	}
	fmt.Fprintf(tw, "Badges:\t%d\n", st.Count)
	if st.LoadedAt != nil {
		fmt.Fprintf(tw, "Loaded at:\t%s\n", st.LoadedAt.Format("2006-01-02 15:04:05"))
	}
	if st.Error != "" {
		fmt.Fprintf(tw, "Error:\t%s\n", ui.RenderError(st.Error))
	}
	return tw.Flush()
}
