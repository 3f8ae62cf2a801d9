package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/alfredjeanlab/badges/internal/client"
)

func TestListCmd_Table(t *testing.T) {
	startLoadedServer(t)
	setFlag(t, listCmd, "level", "Expert")

	out, err := runCmd(t, listCmd)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	for _, want := range []string{"ID", "b2", "Cloud Architect", "b3", "Data Engineer", "2 of 3 badges"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Cloud Ace") {
		t.Errorf("output contains filtered-out badge:\n%s", out)
	}
}

func TestListCmd_NoMatches(t *testing.T) {
	startLoadedServer(t)
	setFlag(t, listCmd, "cost", "9999")

	out, err := runCmd(t, listCmd)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "No badges match.") || !strings.Contains(out, "0 of 3 badges") {
		t.Errorf("output = %q", out)
	}
}

func TestSearchCmd_JSON(t *testing.T) {
	startLoadedServer(t)
	outputFormat = formatJSON
	setFlag(t, searchCmd, "category", "Cloud")

	out, err := runCmd(t, searchCmd, "ARCH")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}
	var resp client.ListBadgesResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if resp.Count != 1 || resp.Badges[0].ID != "b2" || resp.Filter.Search != "ARCH" {
		t.Errorf("response = %+v", resp)
	}
}

func TestListCmd_BeforeLoad(t *testing.T) {
	startServer(t, &testSource{data: []byte(testCatalog)})

	out, err := runCmd(t, listCmd)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "Loading badges") || strings.Contains(out, "ID") {
		t.Errorf("output = %q, want loading notice", out)
	}
}

func TestListCmd_FailedCatalog(t *testing.T) {
	bs := startServer(t, &testSource{data: []byte(`<html>`)})
	_ = bs.LoadCatalog(t.Context())

	out, err := runCmd(t, listCmd)
	if err == nil || !strings.Contains(err.Error(), "catalog failed to load") {
		t.Errorf("list error = %v, want catalog failure", err)
	}
	if !strings.Contains(out, "Failed to load badges:") {
		t.Errorf("output = %q, want failure notice", out)
	}
}

func TestShowCmd(t *testing.T) {
	startLoadedServer(t)

	out, err := runCmd(t, showCmd, "b2")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	for _, want := range []string{"Cloud Architect", "Expert", "50", "https://example.com/earn/b2", "Designs cloud systems."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = runCmd(t, showCmd, "b1")
	if err != nil {
		t.Fatalf("show error = %v", err)
	}
	if !strings.Contains(out, "Acme Cloud") || strings.Contains(out, "Cost:") {
		t.Errorf("show b1 = %q, want issuer and no cost", out)
	}
}

func TestShowCmd_NotFound(t *testing.T) {
	startLoadedServer(t)
	if _, err := runCmd(t, showCmd, "nope"); err == nil || !strings.Contains(err.Error(), `badge "nope" not found`) {
		t.Errorf("show error = %v", err)
	}
}

func TestOptionsCmd(t *testing.T) {
	startLoadedServer(t)
	outputFormat = formatYAML

	out, err := runCmd(t, optionsCmd)
	if err != nil {
		t.Fatalf("options error = %v", err)
	}
	for _, want := range []string{"categories:", "- Cloud", "- Data", "levels:", "- Beginner"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusCmd(t *testing.T) {
	startLoadedServer(t)

	out, err := runCmd(t, statusCmd)
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	for _, want := range []string{"ready", "test.json", "3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHealthCmd(t *testing.T) {
	startLoadedServer(t)

	out, err := runCmd(t, healthCmd)
	if err != nil {
		t.Fatalf("health error = %v", err)
	}
	if !strings.Contains(out, "Health: ok (catalog ready)") {
		t.Errorf("output = %q", out)
	}
}

func TestHealthCmd_UnknownTransport(t *testing.T) {
	startLoadedServer(t)
	setFlag(t, healthCmd, "transport", "smtp")
	if _, err := runCmd(t, healthCmd); err == nil {
		t.Error("health with unknown transport expected error")
	}
}
