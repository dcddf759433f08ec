package config

import (
	"time"

	"github.com/dlclark/regexp2"
)

// filterMatchTimeout guards against catastrophic backtracking in
// user-supplied patterns. regexp2 is backtracking-based, unlike the
// stdlib engine, so a bound is required.
const filterMatchTimeout = 5 * time.Second

// Filter is a compiled file filter. The document format follows Python
// regular-expression semantics, including lookarounds, which the stdlib
// RE2 engine rejects; regexp2 covers them.
type Filter struct {
	pattern string
	re      *regexp2.Regexp
}

// CompileFilter compiles a filter pattern. An empty pattern yields a filter
// that matches every path.
func CompileFilter(pattern string) (*Filter, error) {
	if pattern == "" {
		return &Filter{}, nil
	}

	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = filterMatchTimeout

	return &Filter{pattern: pattern, re: re}, nil
}

// Match reports whether the path matches the filter. Matching is an
// unanchored search over the full relative path, not a prefix match.
func (f *Filter) Match(path string) bool {
	if f == nil || f.re == nil {
		return true
	}

	ok, err := f.re.MatchString(path)
	if err != nil {
		// A timed-out match is treated as no match; the pattern already
		// compiled, so this only happens on pathological inputs.
		return false
	}
	return ok
}

// Excludes reports whether the path is rejected when the filter is used as
// an exclusion pattern. An empty exclusion rejects nothing.
func (f *Filter) Excludes(path string) bool {
	if f.IsMatchAll() {
		return false
	}
	return f.Match(path)
}

// IsMatchAll reports whether the filter admits every path.
func (f *Filter) IsMatchAll() bool {
	return f == nil || f.re == nil
}

// String returns the source pattern, or "" for a match-all filter.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.pattern
}
