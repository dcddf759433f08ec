package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	hookerrors "github.com/grovetools/hooks/errors"
	"github.com/grovetools/hooks/git"
	"github.com/grovetools/hooks/tui/theme"
)

// hookMarker identifies a pre-commit script written by install so that
// uninstall never removes a hook it does not own.
const hookMarker = "# installed by grove-hooks"

const hookScript = `#!/bin/sh
` + hookMarker + `
exec grove-hooks run "$@"
`

// NewInstallCmd creates the `install` command.
func NewInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the git pre-commit hook for this repository",
		Long: `Writes a pre-commit script into the repository's hooks directory that
invokes 'grove-hooks run' against the staged files on every commit.

An existing pre-commit hook from another tool is never overwritten
unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			path, err := preCommitPath()
			if err != nil {
				return err
			}

			existing, err := os.ReadFile(path)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				// nothing installed yet
			case err != nil:
				return err
			case !force && !strings.Contains(string(existing), hookMarker):
				return hookerrors.New(hookerrors.ErrCodeInvalidInput,
					fmt.Sprintf("a pre-commit hook already exists at %s", path)).
					WithDetail("suggestion", "re-run with --force to replace it")
			}

			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(hookScript), 0o755); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s pre-commit hook installed at %s\n",
				theme.DefaultTheme.Success.Render("✓"), path)
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Replace an existing pre-commit hook")
	return cmd
}

// NewUninstallCmd creates the `uninstall` command.
func NewUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the git pre-commit hook installed by install",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := preCommitPath()
			if err != nil {
				return err
			}

			existing, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintln(cmd.OutOrStdout(), "no pre-commit hook installed")
				return nil
			}
			if err != nil {
				return err
			}
			if !strings.Contains(string(existing), hookMarker) {
				return hookerrors.New(hookerrors.ErrCodeInvalidInput,
					fmt.Sprintf("the pre-commit hook at %s was not installed by grove-hooks", path))
			}

			if err := os.Remove(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s pre-commit hook removed\n",
				theme.DefaultTheme.Success.Render("✓"))
			return nil
		},
	}
}

func preCommitPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	hooksDir, err := git.HooksDir(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Join(hooksDir, "pre-commit"), nil
}
