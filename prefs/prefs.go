// Package prefs loads and stores the user preferences: the preferred
// language pair, the API credentials, and the selection-paste switch.
//
// Preferences live in a single YAML file under the XDG config
// directory:
//
//	$XDG_CONFIG_HOME/parrot/config.yaml  (default: ~/.config/parrot/)
//
// The file carries the API credentials, so it is written with 0600
// permissions. Credentials may also be supplied via the environment
// (PARROT_APP_ID / PARROT_APP_KEY), which takes precedence over the
// file.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kunpehx/parrot/language"
)

const (
	configDirName = "parrot"
	fileName      = "config.yaml"

	envAppID  = "PARROT_APP_ID"
	envAppKey = "PARROT_APP_KEY"
)

// ErrLanguageConflict is the fatal configuration state of identical
// preferred languages. It must short-circuit to an error view before
// any request logic runs.
var ErrLanguageConflict = errors.New("first and second preferred language must be different")

// ErrMissingCredentials means no API credentials were found in the
// config file or the environment.
var ErrMissingCredentials = errors.New("missing API credentials (app id / app key)")

// Preferences is the per-session configuration, loaded once at start.
type Preferences struct {
	// Lang1 is the primary preferred ("home") language id.
	Lang1 string `yaml:"lang1"`
	// Lang2 is the secondary preferred language id.
	Lang2 string `yaml:"lang2"`
	// AppID is the public application id.
	AppID string `yaml:"app_id"`
	// AppKey is the application secret used for request signing.
	AppKey string `yaml:"app_key"`
	// SelectionPaste enables auto-searching the selected text on start.
	SelectionPaste bool `yaml:"selection_paste"`
}

// Default returns the preferences used when no config file exists.
func Default() Preferences {
	return Preferences{Lang1: "en", Lang2: "zh"}
}

// configDir resolves the XDG config directory for parrot.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", configDirName), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the preferences file, falling back to defaults when it
// does not exist, and applies environment credential overrides.
func Load() (Preferences, error) {
	p := Default()

	path, err := Path()
	if err != nil {
		return p, err
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file yet: defaults plus whatever the environment holds.
	case err != nil:
		return p, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return p, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if v := os.Getenv(envAppID); v != "" {
		p.AppID = v
	}
	if v := os.Getenv(envAppKey); v != "" {
		p.AppKey = v
	}
	return p, nil
}

// Save writes the preferences file with owner-only permissions.
func (p Preferences) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the preferences before any session logic runs.
func (p Preferences) Validate() error {
	if p.Lang1 == p.Lang2 {
		return ErrLanguageConflict
	}
	for _, id := range []string{p.Lang1, p.Lang2} {
		if language.Lookup(id).IsEmpty() {
			return fmt.Errorf("unknown language id %q", id)
		}
	}
	if p.AppID == "" || p.AppKey == "" {
		return ErrMissingCredentials
	}
	return nil
}
