package git

import (
	"strings"

	"github.com/grovetools/hooks/errors"
	"github.com/moby/patternmatcher"
)

// StagedFiles returns the paths staged for commit, relative to the work tree
// root, in git's output order with duplicates removed. Deleted paths are
// omitted; a hook cannot usefully receive a file that no longer exists.
func StagedFiles(dir string) ([]string, error) {
	out, err := runGit(dir, "diff", "--cached", "--name-only", "--diff-filter=ACMRTUXB", "-z")
	if err != nil {
		return nil, err
	}
	return splitNul(out), nil
}

// TrackedFiles returns every path tracked in the work tree, for --all-files
// runs.
func TrackedFiles(dir string) ([]string, error) {
	out, err := runGit(dir, "ls-files", "-z")
	if err != nil {
		return nil, err
	}
	return splitNul(out), nil
}

// splitNul splits NUL-terminated git output, deduplicating while preserving
// first-seen order.
func splitNul(out string) []string {
	var paths []string
	seen := make(map[string]bool)
	for _, p := range strings.Split(out, "\x00") {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths
}

// Dedupe removes duplicate paths while preserving insertion order. Dispatch
// relies on this for its ordering guarantee over user-supplied path lists.
func Dedupe(paths []string) []string {
	var result []string
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		result = append(result, p)
	}
	return result
}

// FilterIgnored removes paths matching any of the gitignore-style glob
// patterns. This runs during discovery only; the regex filters in the
// registry remain the dispatch semantics.
func FilterIgnored(paths []string, globs []string) ([]string, error) {
	if len(globs) == 0 {
		return paths, nil
	}

	pm, err := patternmatcher.New(globs)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid ignore_globs pattern").
			WithDetail("globs", globs)
	}

	var kept []string
	for _, p := range paths {
		ignored, err := pm.MatchesOrParentMatches(p)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "ignore pattern match failed").
				WithDetail("path", p)
		}
		if !ignored {
			kept = append(kept, p)
		}
	}
	return kept, nil
}
