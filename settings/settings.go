// Package settings loads user-level preferences from
// ~/.config/grove-hooks/settings.toml. These are machine-local defaults
// (parallelism, color, theme) that do not belong in a repository's
// .hooks.yml and are never required to exist.
package settings

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds per-user defaults applied when the corresponding flag or
// config key is absent.
type Settings struct {
	Jobs  int    `toml:"jobs,omitempty"`
	Color *bool  `toml:"color,omitempty"`
	Theme string `toml:"theme,omitempty"`
}

// DefaultPath returns the expected location of the settings file.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "grove-hooks", "settings.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "grove-hooks", "settings.toml"), nil
}

// Load reads the user settings file. A missing file is not an error; the
// zero Settings value is returned instead.
func Load() (*Settings, error) {
	path, err := DefaultPath()
	if err != nil {
		return &Settings{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads settings from an explicit path.
func LoadFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, err
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes settings to the default location, creating parent
// directories as needed.
func Save(s *Settings) error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ColorEnabled reports whether colored output is enabled, defaulting to
// true when unset.
func (s *Settings) ColorEnabled() bool {
	if s == nil || s.Color == nil {
		return true
	}
	return *s.Color
}
