package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alfredjeanlab/badges/internal/model"
	"github.com/google/go-cmp/cmp"
)

// withActiveRemote replaces the active profile for the duration of the test.
func withActiveRemote(t *testing.T, r Remote) {
	t.Helper()
	prev := activeRemote
	activeRemote = func() Remote { return r }
	t.Cleanup(func() { activeRemote = prev })
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	in := RemotesConfig{
		Active: "prod",
		Remotes: map[string]Remote{
			"prod": {
				URL: "https://badges.example.com", Token: "tok_abc", NATSURL: "nats://prod:4222", Description: "production",
				Source: "s3://catalogs/badges.json", Fallback: "/var/lib/badges/badges.json",
				Filter: ProfileFilter{Category: "Cloud", Level: "Expert"},
			},
			"local": {URL: "http://localhost:8080"},
		},
	}
	if err := saveRemotesConfig(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := loadRemotesConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Active != "prod" {
		t.Errorf("Active = %q, want %q", got.Active, "prod")
	}
	if diff := cmp.Diff(in.Remotes, got.Remotes); diff != "" {
		t.Errorf("remotes mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveRemotesConfig_OmitsEmptyFilter(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := saveRemotesConfig(RemotesConfig{Remotes: map[string]Remote{"local": {URL: "http://localhost:8080"}}})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	path, _ := remoteConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "filter") || strings.Contains(string(data), "source") {
		t.Errorf("unset catalog defaults written to file:\n%s", data)
	}
}

func TestLoadRemotesConfig_NoFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := loadRemotesConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Active != "" || len(cfg.Remotes) != 0 || cfg.Remotes == nil {
		t.Errorf("expected empty config, got %+v", cfg)
	}
	if _, err := os.Stat(filepath.Join(home, ".local")); !os.IsNotExist(err) {
		t.Errorf("loading must not create the state directory (stat err = %v)", err)
	}
}

func TestSaveRemotesConfig_Permissions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := saveRemotesConfig(RemotesConfig{Remotes: map[string]Remote{}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	path, _ := remoteConfigPath()
	check := func(p string, want os.FileMode) {
		t.Helper()
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if got := info.Mode().Perm(); got != want {
			t.Errorf("%s permissions = %04o, want %04o", p, got, want)
		}
	}
	check(path, 0o600)
	check(filepath.Dir(path), 0o700)
}

func TestRemoteLifecycle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	mustRun := func(cmd string, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("%s: %v", cmd, err)
		}
	}

	_, err := runCmd(t, remoteAddCmd, "local", "http://localhost:8080")
	mustRun("add", err)
	_, err = runCmd(t, remoteAddCmd, "local", "http://localhost:8080") // upsert
	mustRun("add again", err)
	_, err = runCmd(t, remoteAddCmd, "staging", "https://staging.example.com")
	mustRun("add staging", err)
	_, err = runCmd(t, remoteUseCmd, "local")
	mustRun("use", err)

	cfg, _ := loadRemotesConfig()
	if cfg.Active != "local" || len(cfg.Remotes) != 2 {
		t.Fatalf("config = %+v", cfg)
	}

	out, err := runCmd(t, remoteListCmd)
	mustRun("list", err)
	if !strings.Contains(out, "* local") {
		t.Errorf("list missing active marker; got:\n%s", out)
	}
	if strings.Index(out, "local") > strings.Index(out, "staging") {
		t.Errorf("list not sorted by name; got:\n%s", out)
	}

	out, err = runCmd(t, remoteShowCmd)
	mustRun("show", err)
	if !strings.Contains(out, "http://localhost:8080") || !strings.Contains(out, "(active)") {
		t.Errorf("show missing expected content; got:\n%s", out)
	}

	out, err = runCmd(t, remoteShowCmd, "staging")
	mustRun("show staging", err)
	if !strings.Contains(out, "staging.example.com") || strings.Contains(out, "(active)") {
		t.Errorf("show by name; got:\n%s", out)
	}

	_, err = runCmd(t, remoteRemoveCmd, "local")
	mustRun("remove", err)
	cfg, _ = loadRemotesConfig()
	if _, ok := cfg.Remotes["local"]; ok {
		t.Error("remote 'local' should be gone")
	}
	if cfg.Active != "" {
		t.Errorf("Active should be cleared, got %q", cfg.Active)
	}
}

func TestRemoteTokenMasking(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	setFlag(t, remoteAddCmd, "token", "tok_verylongsecret")

	if _, err := runCmd(t, remoteAddCmd, "prod", "https://badges.example.com"); err != nil {
		t.Fatal(err)
	}
	if _, err := runCmd(t, remoteUseCmd, "prod"); err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, remoteListCmd)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "tok_verylongsecret") || !strings.Contains(out, "tok_very...") {
		t.Errorf("list token not truncated; got:\n%s", out)
	}

	out, err = runCmd(t, remoteShowCmd)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "tok_verylongsecret") || !strings.Contains(out, "tok_very**********") {
		t.Errorf("show token not masked; got:\n%s", out)
	}
}

func TestRemoteErrorCases(t *testing.T) {
	for _, tc := range []struct {
		name string
		run  func(t *testing.T) error
	}{
		{"use unknown", func(t *testing.T) error { _, err := runCmd(t, remoteUseCmd, "ghost"); return err }},
		{"remove unknown", func(t *testing.T) error { _, err := runCmd(t, remoteRemoveCmd, "ghost"); return err }},
		{"show no active", func(t *testing.T) error { _, err := runCmd(t, remoteShowCmd); return err }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			if err := tc.run(t); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestRemoteAdd_CatalogDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	setFlag(t, remoteAddCmd, "source", "https://example.com/badges.json")
	setFlag(t, remoteAddCmd, "fallback", "/srv/badges.json")
	setFlag(t, remoteAddCmd, "category", "Cloud")
	setFlag(t, remoteAddCmd, "level", "Expert")

	if _, err := runCmd(t, remoteAddCmd, "cloud", "https://badges.example.com"); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadRemotesConfig()
	if err != nil {
		t.Fatal(err)
	}
	want := Remote{
		URL:      "https://badges.example.com",
		Source:   "https://example.com/badges.json",
		Fallback: "/srv/badges.json",
		Filter:   ProfileFilter{Category: "Cloud", Level: "Expert"},
	}
	if diff := cmp.Diff(want, cfg.Remotes["cloud"]); diff != "" {
		t.Errorf("saved profile mismatch (-want +got):\n%s", diff)
	}

	out, err := runCmd(t, remoteShowCmd, "cloud")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"https://example.com/badges.json", "/srv/badges.json", "category=Cloud level=Expert"} {
		if !strings.Contains(out, s) {
			t.Errorf("show missing %q; got:\n%s", s, out)
		}
	}
	if strings.Contains(out, "token:") {
		t.Errorf("show printed an unset token; got:\n%s", out)
	}

	out, err = runCmd(t, remoteListCmd)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "category=Cloud level=Expert") {
		t.Errorf("list missing filter column; got:\n%s", out)
	}
}

func TestProfileFilter_Apply(t *testing.T) {
	profile := ProfileFilter{Category: "Cloud", Cost: "0", Level: "Expert"}
	for _, tc := range []struct {
		name string
		in   model.BadgeFilter
		want model.BadgeFilter
	}{
		{
			name: "fills empty dimensions",
			in:   model.BadgeFilter{Search: "arch"},
			want: model.BadgeFilter{Search: "arch", Category: "Cloud", Cost: "0", Level: "Expert"},
		},
		{
			name: "command line wins",
			in:   model.BadgeFilter{Category: "Data", Level: "Beginner"},
			want: model.BadgeFilter{Category: "Data", Cost: "0", Level: "Beginner"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := profile.Apply(tc.in); got != tc.want {
				t.Errorf("Apply() = %+v, want %+v", got, tc.want)
			}
		})
	}

	if got := (ProfileFilter{}).Apply(model.BadgeFilter{Level: "Expert"}); got != (model.BadgeFilter{Level: "Expert"}) {
		t.Errorf("empty profile changed the filter: %+v", got)
	}
}

func TestFilterFromFlags_ProfileDefaults(t *testing.T) {
	withActiveRemote(t, Remote{Filter: ProfileFilter{Category: "Cloud", Level: "Expert"}})

	if got, want := filterFromFlags(searchCmd), (model.BadgeFilter{Category: "Cloud", Level: "Expert"}); got != want {
		t.Errorf("defaults: got %+v, want %+v", got, want)
	}

	setFlag(t, searchCmd, "level", "Beginner")
	if got, want := filterFromFlags(searchCmd), (model.BadgeFilter{Category: "Cloud", Level: "Beginner"}); got != want {
		t.Errorf("flag override: got %+v, want %+v", got, want)
	}

	setFlag(t, searchCmd, "no-defaults", "true")
	if got, want := filterFromFlags(searchCmd), (model.BadgeFilter{Level: "Beginner"}); got != want {
		t.Errorf("--no-defaults: got %+v, want %+v", got, want)
	}
}

func TestListCmd_ProfileFilter(t *testing.T) {
	startLoadedServer(t)
	withActiveRemote(t, Remote{Filter: ProfileFilter{Category: "Data"}})

	out, err := runCmd(t, listCmd)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Data Engineer") || strings.Contains(out, "Cloud Ace") {
		t.Errorf("profile category not applied; got:\n%s", out)
	}

	setFlag(t, listCmd, "category", "Cloud")
	out, err = runCmd(t, listCmd)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cloud Ace") || strings.Contains(out, "Data Engineer") {
		t.Errorf("--category did not override the profile; got:\n%s", out)
	}
}

func TestExportSources(t *testing.T) {
	profile := Remote{Source: "s3://bucket/profile.json", Fallback: "/srv/profile.json"}
	for _, tc := range []struct {
		name         string
		profile      Remote
		env          map[string]string
		flags        map[string]string
		wantRef      string
		wantFallback string
	}{
		{name: "built-in default", wantRef: "badges.json"},
		{name: "profile", profile: profile, wantRef: "s3://bucket/profile.json", wantFallback: "/srv/profile.json"},
		{
			name:         "environment beats profile",
			profile:      profile,
			env:          map[string]string{"BADGES_SOURCE": "/env.json", "BADGES_FALLBACK_SOURCE": "/env-fallback.json"},
			wantRef:      "/env.json",
			wantFallback: "/env-fallback.json",
		},
		{
			name:         "flag beats environment",
			profile:      profile,
			env:          map[string]string{"BADGES_SOURCE": "/env.json"},
			flags:        map[string]string{"source": "/flag.json"},
			wantRef:      "/flag.json",
			wantFallback: "/srv/profile.json",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			withActiveRemote(t, tc.profile)
			t.Setenv("BADGES_SOURCE", "")
			t.Setenv("BADGES_FALLBACK_SOURCE", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			for k, v := range tc.flags {
				setFlag(t, exportCmd, k, v)
			}
			ref, fallback := exportSources(exportCmd)
			if ref != tc.wantRef || fallback != tc.wantFallback {
				t.Errorf("exportSources() = (%q, %q), want (%q, %q)", ref, fallback, tc.wantRef, tc.wantFallback)
			}
		})
	}
}
