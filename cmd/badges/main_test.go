package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/alfredjeanlab/badges/internal/client"
	"github.com/alfredjeanlab/badges/internal/server"
	"github.com/alfredjeanlab/badges/internal/store/memory"
	"github.com/spf13/cobra"
)

const testCatalog = `{
	"ace":  {"id": "b1", "name": "Cloud Ace", "level": "Beginner", "type_category": "Cloud", "cost": null,
	         "issuer": {"entities": [{"primary": true, "entity": {"name": "Acme Cloud"}}]}},
	"arch": {"id": "b2", "name": "Cloud Architect", "level": "Expert", "type_category": "Cloud", "cost": "50",
	         "earn_this_badge_url": "https://example.com/earn/b2", "description": "Designs cloud systems."},
	"data": {"id": "b3", "name": "Data Engineer", "level": "Expert", "type_category": "Data", "cost": 100}
}`

// testSource serves canned data; Fetch waits for gate when it is set.
type testSource struct {
	data []byte
	err  error
	gate chan struct{}
}

func (s *testSource) Fetch(ctx context.Context) ([]byte, error) {
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.data, s.err
}

func (s *testSource) String() string { return "test.json" }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startServer runs the real HTTP stack over src and points the package
// client at it. The catalog is not loaded.
func startServer(t *testing.T, src *testSource) *server.BadgesServer {
	t.Helper()
	bs := server.NewBadgesServer(memory.New(src, quietLogger()), nil, server.Options{Logger: quietLogger()})
	srv := httptest.NewServer(bs.NewHTTPHandler(""))
	t.Cleanup(srv.Close)

	prevClient, prevFormat := badgesClient, outputFormat
	badgesClient = client.NewHTTPClient(srv.URL, "")
	outputFormat = formatTable
	t.Cleanup(func() { badgesClient, outputFormat = prevClient, prevFormat })
	return bs
}

// startLoadedServer is startServer with the catalog loaded.
func startLoadedServer(t *testing.T) *server.BadgesServer {
	t.Helper()
	bs := startServer(t, &testSource{data: []byte(testCatalog)})
	if err := bs.LoadCatalog(context.Background()); err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	return bs
}

// runCmd calls cmd.RunE with args and captures stdout.
func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	t.Cleanup(func() { cmd.SetOut(nil); cmd.SetErr(nil) })
	err := cmd.RunE(cmd, args)
	return out.String(), err
}

// setFlag sets a flag for the duration of the test.
func setFlag(t *testing.T, cmd *cobra.Command, name, value string) {
	t.Helper()
	f := cmd.Flags().Lookup(name)
	if f == nil {
		t.Fatalf("no flag %q on %s", name, cmd.Name())
	}
	prev := f.Value.String()
	if err := f.Value.Set(value); err != nil {
		t.Fatalf("set --%s: %v", name, err)
	}
	t.Cleanup(func() { _ = f.Value.Set(prev) })
}

func TestResolveOutput(t *testing.T) {
	prevFormat, prevJSON := outputFormat, jsonOutput
	t.Cleanup(func() { outputFormat, jsonOutput = prevFormat, prevJSON })

	for _, tc := range []struct {
		format  string
		json    bool
		want    string
		wantErr bool
	}{
		{formatTable, false, formatTable, false},
		{formatYAML, false, formatYAML, false},
		{formatYAML, true, formatJSON, false},
		{"xml", false, "", true},
	} {
		outputFormat, jsonOutput = tc.format, tc.json
		err := resolveOutput()
		if (err != nil) != tc.wantErr {
			t.Errorf("resolveOutput(%q, json=%v) error = %v", tc.format, tc.json, err)
			continue
		}
		if !tc.wantErr && outputFormat != tc.want {
			t.Errorf("resolveOutput(%q, json=%v) = %q, want %q", tc.format, tc.json, outputFormat, tc.want)
		}
	}
}

func TestCommandGroups(t *testing.T) {
	groups := map[string]string{}
	for _, c := range rootCmd.Commands() {
		groups[c.Name()] = c.GroupID
	}
	for name, want := range map[string]string{
		"list": "catalog", "search": "catalog", "show": "catalog", "options": "catalog", "export": "catalog",
		"serve": "system", "status": "system", "watch": "system", "health": "system", "remote": "system",
	} {
		if got, ok := groups[name]; !ok || got != want {
			t.Errorf("command %q group = %q (registered %v), want %q", name, got, ok, want)
		}
	}
}
