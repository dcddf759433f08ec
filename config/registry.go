package config

import (
	"github.com/grovetools/hooks/errors"
)

// Hook is a compiled hook definition with its resolved effective filter.
type Hook struct {
	ID                     string
	Name                   string
	Args                   []string
	AdditionalDependencies []string
	AlwaysRun              bool

	// Source identity, carried for reporting
	RepoURL string
	Rev     string

	filter      *Filter // hook override if present, else top-level, else match-all
	exclude     *Filter // hook-level exclusion
	rootExclude *Filter // top-level exclusion, always applied
}

// Matches reports whether a changed path is relevant to the hook.
func (h *Hook) Matches(path string) bool {
	if !h.filter.Match(path) {
		return false
	}
	if h.rootExclude.Excludes(path) || h.exclude.Excludes(path) {
		return false
	}
	return true
}

// Select returns the subset of paths matching the hook, preserving order.
func (h *Hook) Select(paths []string) []string {
	var matched []string
	for _, p := range paths {
		if h.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}

// FilterPattern returns the source pattern of the effective filter, or ""
// when the hook matches every path.
func (h *Hook) FilterPattern() string {
	return h.filter.String()
}

// Source is a compiled repository source with its ordered hooks.
type Source struct {
	URL   string
	Rev   string
	Hooks []*Hook
}

// Registry is the immutable, compiled form of a configuration document.
// Hooks dispatch in the order they appear here.
type Registry struct {
	CI          CIConfig
	IgnoreGlobs []string
	Sources     []Source

	ordered []*Hook
}

// Compile resolves every hook's effective filter and returns the registry.
// The config must already have passed Validate; compile errors here indicate
// a bug, not user input.
func (c *Config) Compile() (*Registry, error) {
	rootFilter, err := CompileFilter(c.Files)
	if err != nil {
		return nil, errors.FilterCompile("top-level 'files'", c.Files, err)
	}
	rootExclude, err := CompileFilter(c.Exclude)
	if err != nil {
		return nil, errors.FilterCompile("top-level 'exclude'", c.Exclude, err)
	}

	reg := &Registry{
		CI:          c.CI,
		IgnoreGlobs: c.IgnoreGlobs,
	}

	for _, repo := range c.Repos {
		source := Source{URL: repo.Repo, Rev: repo.Rev}

		for _, hc := range repo.Hooks {
			effective := rootFilter
			if hc.Files != "" {
				effective, err = CompileFilter(hc.Files)
				if err != nil {
					return nil, errors.FilterCompile("hook '"+hc.ID+"'", hc.Files, err)
				}
			}

			exclude, err := CompileFilter(hc.Exclude)
			if err != nil {
				return nil, errors.FilterCompile("hook '"+hc.ID+"' ('exclude')", hc.Exclude, err)
			}

			hook := &Hook{
				ID:                     hc.ID,
				Name:                   hc.Name,
				Args:                   hc.Args,
				AdditionalDependencies: hc.AdditionalDependencies,
				AlwaysRun:              hc.AlwaysRun,
				RepoURL:                repo.Repo,
				Rev:                    repo.Rev,
				filter:                 effective,
				exclude:                exclude,
				rootExclude:            rootExclude,
			}

			source.Hooks = append(source.Hooks, hook)
			reg.ordered = append(reg.ordered, hook)
		}

		reg.Sources = append(reg.Sources, source)
	}

	return reg, nil
}

// Hooks returns every hook in declaration order.
func (r *Registry) Hooks() []*Hook {
	return r.ordered
}

// Lookup returns the hooks with the given id, in declaration order. Ids are
// unique within a source but may repeat across sources.
func (r *Registry) Lookup(id string) []*Hook {
	var found []*Hook
	for _, h := range r.ordered {
		if h.ID == id {
			found = append(found, h)
		}
	}
	return found
}
