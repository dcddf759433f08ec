package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	hookerrors "github.com/grovetools/hooks/errors"
	"github.com/grovetools/hooks/git"
	"github.com/grovetools/hooks/tui/theme"
)

const starterConfig = `# Hook configuration for this repository.
# Run 'grove-hooks validate' after editing.
files: '\.py$'

repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black

  - repo: https://github.com/pycqa/isort
    rev: 5.12.0
    hooks:
      - id: isort
`

// NewInitCmd creates the `init` command.
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter .hooks.yml in the repository root",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := git.RepoRoot(".")
			if err != nil {
				// init is also useful outside a repository
				root, err = os.Getwd()
				if err != nil {
					return err
				}
			}

			path := filepath.Join(root, ".hooks.yml")
			if _, err := os.Stat(path); err == nil {
				return hookerrors.New(hookerrors.ErrCodeInvalidInput,
					fmt.Sprintf("%s already exists", path))
			}

			if err := os.WriteFile(path, []byte(starterConfig), 0644); err != nil {
				return err
			}

			t := theme.DefaultTheme
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", t.Success.Render("✓"), path)
			fmt.Fprintln(cmd.OutOrStdout(), t.Muted.Render("Edit it for your repository, then run 'grove-hooks install'."))
			return nil
		},
	}
}
