package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/hooks/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ No hook configuration found. Run 'grove-hooks init' to create a .hooks.yml.\n")
		return err

	case errors.ErrCodeFilterCompile:
		if hookErr, ok := err.(*errors.HookError); ok {
			fmt.Fprintf(os.Stderr, "❌ Filter %v for %v is not a valid regular expression\n",
				hookErr.Details["pattern"], hookErr.Details["owner"])
		}
		return err

	case errors.ErrCodeSchemaValidation:
		fmt.Fprintf(os.Stderr, "❌ Configuration is invalid: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'grove-hooks validate' for details.\n")
		return err

	case errors.ErrCodeToolNotFound:
		if hookErr, ok := err.(*errors.HookError); ok {
			fmt.Fprintf(os.Stderr, "❌ Executable '%v' for hook '%v' is not installed\n",
				hookErr.Details["tool"], hookErr.Details["hook"])
		}
		return err

	case errors.ErrCodeGitNotInstalled:
		fmt.Fprintf(os.Stderr, "❌ git is required but was not found in PATH.\n")
		return err

	case errors.ErrCodeNotARepository:
		fmt.Fprintf(os.Stderr, "❌ Not inside a git repository. Pass --files to run on explicit paths.\n")
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if hookErr, ok := err.(*errors.HookError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", hookErr.ToJSON())
			}
		}
		return err
	}
}
