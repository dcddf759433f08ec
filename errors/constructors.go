package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *HookError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("hook configuration not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *HookError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// SchemaValidation creates a schema validation error for a missing or malformed field
func SchemaValidation(field, location string) *HookError {
	return New(ErrCodeSchemaValidation, fmt.Sprintf("missing required field '%s' in %s", field, location)).
		WithDetail("field", field).
		WithDetail("location", location)
}

// FilterCompile creates an error for a filter pattern that failed to compile.
// The owner identifies the entry the pattern belongs to ("top-level" or a hook id).
func FilterCompile(owner, pattern string, err error) *HookError {
	return Wrap(err, ErrCodeFilterCompile, fmt.Sprintf("invalid file filter for %s: %q", owner, pattern)).
		WithDetail("owner", owner).
		WithDetail("pattern", pattern)
}

// ToolNotFound creates an error for a hook whose executable is unavailable
func ToolNotFound(hookID, tool string) *HookError {
	return New(ErrCodeToolNotFound, fmt.Sprintf("executable '%s' for hook '%s' not found in PATH", tool, hookID)).
		WithDetail("hook", hookID).
		WithDetail("tool", tool)
}

// HookFailed creates an error for a hook whose tool exited nonzero
func HookFailed(hookID string, err error) *HookError {
	hookErr := Wrap(err, ErrCodeHookFailed, fmt.Sprintf("hook '%s' failed", hookID)).
		WithDetail("hook", hookID)

	if exitErr, ok := err.(*exec.ExitError); ok {
		hookErr = hookErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return hookErr
}

// HookUnknown creates an error for a hook id that is not in the registry
func HookUnknown(hookID string) *HookError {
	return New(ErrCodeHookUnknown, fmt.Sprintf("hook '%s' not found in configuration", hookID)).
		WithDetail("hook", hookID)
}

// NotARepository creates an error for a directory outside any git work tree
func NotARepository(path string) *HookError {
	return New(ErrCodeNotARepository, fmt.Sprintf("not a git repository: %s", path)).
		WithDetail("path", path)
}
