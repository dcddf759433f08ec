package config

import (
	"fmt"

	"github.com/grovetools/hooks/errors"
)

// Validate checks structural invariants of the document: required fields,
// filter compilability, and id uniqueness within each repository source.
// Filters that fail to compile fail here, at load time, never at dispatch.
func (c *Config) Validate() error {
	if _, err := CompileFilter(c.Files); err != nil {
		return errors.FilterCompile("top-level 'files'", c.Files, err)
	}
	if _, err := CompileFilter(c.Exclude); err != nil {
		return errors.FilterCompile("top-level 'exclude'", c.Exclude, err)
	}

	if len(c.Repos) == 0 {
		return errors.SchemaValidation("repos", "document")
	}

	for ri, repo := range c.Repos {
		location := fmt.Sprintf("repos[%d]", ri)

		if repo.Repo == "" {
			return errors.SchemaValidation("repo", location)
		}
		if repo.Rev == "" {
			return errors.SchemaValidation("rev", fmt.Sprintf("%s (%s)", location, repo.Repo))
		}

		seen := make(map[string]bool, len(repo.Hooks))
		for hi, hook := range repo.Hooks {
			hookLocation := fmt.Sprintf("%s.hooks[%d]", location, hi)

			if hook.ID == "" {
				return errors.SchemaValidation("id", hookLocation)
			}
			if seen[hook.ID] {
				return errors.New(errors.ErrCodeSchemaValidation,
					fmt.Sprintf("duplicate hook id '%s' in %s", hook.ID, repo.Repo)).
					WithDetail("hook", hook.ID).
					WithDetail("repo", repo.Repo)
			}
			seen[hook.ID] = true

			if _, err := CompileFilter(hook.Files); err != nil {
				return errors.FilterCompile(fmt.Sprintf("hook '%s'", hook.ID), hook.Files, err)
			}
			if _, err := CompileFilter(hook.Exclude); err != nil {
				return errors.FilterCompile(fmt.Sprintf("hook '%s' ('exclude')", hook.ID), hook.Exclude, err)
			}
		}
	}

	return nil
}
