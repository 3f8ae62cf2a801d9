package main

import (
	"strings"
	"testing"
)

func TestColorizeHelpOutput(t *testing.T) {
	in := `Browse and serve a catalog of certification badges

Usage:
  badges [command]

Catalog:
  list        List badges, optionally filtered

Flags:
      --category string   filter by category (exact match)
  -o, --output string     output format (table, json or yaml) (default "table")
`
	out := colorizeHelpOutput(in)

	for _, want := range []string{
		"\x1b[38;5;74mCatalog:\x1b[0m",
		"\x1b[38;5;74mFlags:\x1b[0m",
		"  \x1b[38;5;250mlist\x1b[0m  ",
		"--category \x1b[38;5;245mstring\x1b[0m",
		"\x1b[38;5;245m(default \"table\")\x1b[0m",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("colorized help missing %q:\n%q", want, out)
		}
	}
	if !strings.Contains(out, "Browse and serve a catalog of certification badges") {
		t.Error("description line should be left alone")
	}
}
