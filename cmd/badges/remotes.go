package main

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/alfredjeanlab/badges/internal/model"
)

// RemotesConfig is the on-disk list of catalog profiles.
type RemotesConfig struct {
	Active  string            `toml:"active"`
	Remotes map[string]Remote `toml:"remotes"`
}

// Remote is a named catalog profile: where its server lives and, for
// commands that read the catalog themselves, which document it serves and
// which filters apply by default.
type Remote struct {
	URL         string `toml:"url"`
	Token       string `toml:"token,omitempty"`
	NATSURL     string `toml:"nats_url,omitempty"`
	Description string `toml:"description,omitempty"`

	Source   string        `toml:"source,omitempty"`
	Fallback string        `toml:"fallback,omitempty"`
	Filter   ProfileFilter `toml:"filter,omitempty"`
}

// ProfileFilter holds default selections for list, search and export.
// The name search is never defaulted.
type ProfileFilter struct {
	Category string `toml:"category,omitempty"`
	Cost     string `toml:"cost,omitempty"`
	Level    string `toml:"level,omitempty"`
}

// IsEmpty reports whether the profile sets no default selection.
func (f ProfileFilter) IsEmpty() bool {
	return f.Category == "" && f.Cost == "" && f.Level == ""
}

// String renders the selections as "category=Cloud level=Expert".
func (f ProfileFilter) String() string {
	var parts []string
	for _, kv := range [][2]string{{"category", f.Category}, {"cost", f.Cost}, {"level", f.Level}} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+"="+kv[1])
		}
	}
	return strings.Join(parts, " ")
}

// Apply fills every dimension of f left empty on the command line.
func (f ProfileFilter) Apply(to model.BadgeFilter) model.BadgeFilter {
	if to.Category == "" {
		to.Category = f.Category
	}
	if to.Cost == "" {
		to.Cost = f.Cost
	}
	if to.Level == "" {
		to.Level = f.Level
	}
	return to
}

// remoteConfigPath is ~/.local/state/badges/remotes.toml. The directory is
// created on save, never on load.
func remoteConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "badges", "remotes.toml"), nil
}

func loadRemotesConfig() (RemotesConfig, error) {
	cfg := RemotesConfig{Remotes: map[string]Remote{}}
	path, err := remoteConfigPath()
	if err != nil {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return RemotesConfig{}, err
	}
	if cfg.Remotes == nil {
		cfg.Remotes = map[string]Remote{}
	}
	return cfg, nil
}

func saveRemotesConfig(cfg RemotesConfig) error {
	path, err := remoteConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// updateRemotes loads the file, lets fn change it, and saves the result.
func updateRemotes(fn func(*RemotesConfig) error) error {
	cfg, err := loadRemotesConfig()
	if err != nil {
		return err
	}
	if err := fn(&cfg); err != nil {
		return err
	}
	return saveRemotesConfig(cfg)
}

// activeRemote is read once per process; a missing or unreadable file
// yields the zero profile.
var activeRemote = sync.OnceValue(func() Remote {
	cfg, err := loadRemotesConfig()
	if err != nil || cfg.Active == "" {
		return Remote{}
	}
	return cfg.Remotes[cfg.Active]
})
