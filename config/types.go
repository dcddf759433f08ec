package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// CIConfig holds out-of-band maintenance settings. It is parsed and surfaced
// by `validate` and `list` but has no effect on dispatch.
type CIConfig struct {
	AutoupdateSchedule string `yaml:"autoupdate_schedule,omitempty" jsonschema:"description=How often the hosted CI service refreshes pinned revisions (e.g. 'weekly')"`
}

// HookConfig defines one invocable check inside a repository source.
type HookConfig struct {
	ID                     string   `yaml:"id" jsonschema:"required,description=Identifier of the hook within its repository source" jsonschema_extras:"x-priority=1,x-important=true"`
	Name                   string   `yaml:"name,omitempty" jsonschema:"description=Display name (defaults to the id)"`
	Files                  string   `yaml:"files,omitempty" jsonschema:"description=Override file filter regular expression; defaults to the top-level filter"`
	Exclude                string   `yaml:"exclude,omitempty" jsonschema:"description=Regular expression removing paths from the hook's match set"`
	Args                   []string `yaml:"args,omitempty" jsonschema:"description=Arguments passed to the tool before the matched paths"`
	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty" jsonschema:"description=Extra packages installed alongside the tool"`
	AlwaysRun              bool     `yaml:"always_run,omitempty" jsonschema:"description=Invoke the hook even when no paths match"`
}

// RepoConfig identifies an external hook source by URL and pinned revision,
// with its ordered hooks.
type RepoConfig struct {
	Repo  string       `yaml:"repo" jsonschema:"required,description=URL of the repository providing the hooks" jsonschema_extras:"x-priority=1,x-important=true"`
	Rev   string       `yaml:"rev" jsonschema:"required,description=Pinned revision (tag or commit) of the repository" jsonschema_extras:"x-priority=2,x-important=true"`
	Hooks []HookConfig `yaml:"hooks" jsonschema:"description=Ordered hooks provided by this repository"`
}

// Config is the root of a parsed hook configuration document. It is immutable
// after Load; dispatch never mutates it.
type Config struct {
	CI          CIConfig               `yaml:"ci,omitempty" jsonschema:"description=CI maintenance policy"`
	Files       string                 `yaml:"files,omitempty" jsonschema:"description=Top-level file filter applied to every hook without an override"`
	Exclude     string                 `yaml:"exclude,omitempty" jsonschema:"description=Top-level exclusion filter applied to every hook"`
	IgnoreGlobs []string               `yaml:"ignore_globs,omitempty" jsonschema:"description=Gitignore-style patterns removed during file discovery before any hook filter runs"`
	Repos       []RepoConfig           `yaml:"repos" jsonschema:"required,description=Ordered repository sources"`
	Extensions  map[string]interface{} `yaml:"extensions,omitempty" jsonschema:"-"`

	// path the document was loaded from, for error messages
	path string
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	for ri := range c.Repos {
		for hi := range c.Repos[ri].Hooks {
			hook := &c.Repos[ri].Hooks[hi]
			if hook.Name == "" {
				hook.Name = hook.ID
			}
		}
	}
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded document into the provided target struct. The target must be a
// pointer. This gives tooling layered on the runner (logging, editors) a
// type-safe view of their own sections.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// Absent keys are not an error; the target stays zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
